package telemetry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

// Snapshot is a sampler output with its payload type erased, ready to be
// streamed or recorded.
type Snapshot struct {
	Widget string         `json:"widget"`
	Data   any            `json:"data"`
	Fields map[string]any `json:"-"`
	At     time.Time      `json:"at"`
}

// Widget is a running feed as seen by transports.
type Widget interface {
	Name() string
	Start(ctx context.Context)
	Stop()
	Running() bool
	Listen(fn func(Snapshot)) (unsubscribe func())
}

type widget[T any] struct {
	*Sampler[T]
	snapshot func(T) Snapshot
}

func (w *widget[T]) Listen(fn func(Snapshot)) func() {
	return w.Subscribe(func(v T) { fn(w.snapshot(v)) })
}

// Intervals configures the tick period of each widget.
type Intervals struct {
	Health     time.Duration
	Connection time.Duration
	Alerts     time.Duration
}

// DefaultIntervals mirrors the refresh rates of the dashboards.
var DefaultIntervals = Intervals{
	Health:     2 * time.Second,
	Connection: 15 * time.Second,
	Alerts:     30 * time.Second,
}

// Factory builds widgets by name. Every widget gets its own random source.
type Factory struct {
	intervals Intervals
	newRand   func() *rand.Rand
}

// NewFactory returns a factory using intervals; zero fields fall back to
// DefaultIntervals.
func NewFactory(intervals Intervals) *Factory {
	if intervals.Health <= 0 {
		intervals.Health = DefaultIntervals.Health
	}
	if intervals.Connection <= 0 {
		intervals.Connection = DefaultIntervals.Connection
	}
	if intervals.Alerts <= 0 {
		intervals.Alerts = DefaultIntervals.Alerts
	}
	return &Factory{
		intervals: intervals,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

// New returns a stopped widget.
func (f *Factory) New(name string) (Widget, error) {
	rng := f.newRand()
	switch name {
	case domain.WidgetHealth:
		m := NewHealthModel(rng)
		return &widget[domain.HealthSnapshot]{
			Sampler:  NewSampler(name, f.intervals.Health, m.Next),
			snapshot: healthSnapshot,
		}, nil
	case domain.WidgetConnection:
		m := NewConnectionModel(rng)
		return &widget[domain.ConnectionSnapshot]{
			Sampler:  NewSampler(name, f.intervals.Connection, m.Next),
			snapshot: connectionSnapshot,
		}, nil
	case domain.WidgetAlerts:
		m := NewAlertModel(rng)
		return &widget[domain.AlertSnapshot]{
			Sampler:  NewSampler(name, f.intervals.Alerts, m.Next),
			snapshot: alertSnapshot,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownWidget, name)
}

// Sample draws a single snapshot without starting a timer.
func (f *Factory) Sample(name string) (Snapshot, error) {
	rng := f.newRand()
	switch name {
	case domain.WidgetHealth:
		return healthSnapshot(NewHealthModel(rng).Next()), nil
	case domain.WidgetConnection:
		return connectionSnapshot(NewConnectionModel(rng).Next()), nil
	case domain.WidgetAlerts:
		return alertSnapshot(NewAlertModel(rng).Next()), nil
	}
	return Snapshot{}, fmt.Errorf("%w: %q", domain.ErrUnknownWidget, name)
}

func healthSnapshot(h domain.HealthSnapshot) Snapshot {
	return Snapshot{
		Widget: domain.WidgetHealth,
		Data:   h,
		Fields: map[string]any{
			"heart_rate":      h.HeartRate,
			"blood_oxygen":    h.BloodOxygen,
			"temperature":     h.Temperature,
			"step_count":      h.StepCount,
			"active_calories": h.ActiveCalories,
			"status":          string(h.Status),
		},
		At: h.LastUpdate,
	}
}

func connectionSnapshot(c domain.ConnectionSnapshot) Snapshot {
	return Snapshot{
		Widget: domain.WidgetConnection,
		Data:   c,
		Fields: map[string]any{
			"overall":           string(c.Overall),
			"devices_connected": c.Devices.Connected,
			"devices_total":     c.Devices.Total,
			"latency_ms":        c.LatencyMs,
		},
		At: c.LastUpdate,
	}
}

func alertSnapshot(a domain.AlertSnapshot) Snapshot {
	return Snapshot{
		Widget: domain.WidgetAlerts,
		Data:   a,
		Fields: map[string]any{
			"critical": a.Counts.Critical,
			"warning":  a.Counts.Warning,
			"info":     a.Counts.Info,
			"priority": string(a.Priority.Level),
		},
		At: a.LastUpdate,
	}
}
