// Package metrics defines and registers all custom Prometheus metrics for
// the FleetWatch service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry through promauto on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fleetwatch"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "superseded" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts logouts.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logouts.",
	},
)

// ActiveAuthSessions tracks device sessions held in memory.
var ActiveAuthSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "auth_sessions_active",
		Help:      "Number of device auth sessions held by the provider.",
	},
)

// GuardDecisionsTotal counts route guard outcomes.
// Labels:
//   - route: the guarded path (e.g. "/supervisor-dashboard")
//   - decision: "loading", "redirect_login", "redirect_role" or "render"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by route and outcome.",
	},
	[]string{"route", "decision"},
)

// ── Telemetry metrics ─────────────────────────────────────────────────────────

// SamplerTicksTotal counts snapshots produced by widget samplers.
// Label:
//   - widget: "health", "connection" or "alerts"
var SamplerTicksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sampler_ticks_total",
		Help:      "Total number of snapshots produced by widget samplers.",
	},
	[]string{"widget"},
)

// ActiveSamplers tracks mounted widgets, one sampler each.
var ActiveSamplers = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "samplers_active",
		Help:      "Number of running widget samplers.",
	},
	[]string{"widget"},
)

// AlertPriority reports the latest alert count of the highest priority level.
// Label:
//   - level: "critical", "warning", "info" or "none"
var AlertPriority = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "alert_priority_count",
		Help:      "Count behind the most recent alert priority signal.",
	},
	[]string{"level"},
)

// SnapshotQueueDepth tracks records waiting in each dispatcher worker channel.
var SnapshotQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_queue_depth",
		Help:      "Current number of snapshots pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// SnapshotsDroppedTotal counts snapshots discarded because the queue was full.
var SnapshotsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshots_dropped_total",
		Help:      "Total number of snapshots dropped before persistence.",
	},
	[]string{"widget"},
)

// NotificationsTotal counts emergency notifications.
// Label:
//   - result: "sent" or "duplicate"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of emergency notifications, by result.",
	},
	[]string{"result"},
)
