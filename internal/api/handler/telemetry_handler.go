package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/guardian-ae/fleetwatch/internal/api/metrics"
	"github.com/guardian-ae/fleetwatch/internal/api/middleware"
	"github.com/guardian-ae/fleetwatch/internal/core/domain"
	"github.com/guardian-ae/fleetwatch/internal/core/ports"
	"github.com/guardian-ae/fleetwatch/internal/telemetry"
)

const (
	maxHistoryLimit = 100
	streamBuffer    = 8
	writeWait       = 5 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = pongWait * 9 / 10
)

// SnapshotSink takes sampler output for persistence. Enqueue must not block.
type SnapshotSink interface {
	Enqueue(rec ports.SnapshotRecord) bool
}

type TelemetryHandler struct {
	widgets  *telemetry.Factory
	history  ports.HealthHistory
	sink     SnapshotSink
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewTelemetryHandler wires the widget feeds. sink may be nil, in which case
// snapshots are only streamed.
func NewTelemetryHandler(widgets *telemetry.Factory, history ports.HealthHistory, sink SnapshotSink, log zerolog.Logger) *TelemetryHandler {
	return &TelemetryHandler{
		widgets: widgets,
		history: history,
		sink:    sink,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		log: log,
	}
}

// Snapshot returns a single freshly generated snapshot of a widget.
//
// @Summary      Widget snapshot
// @Tags         telemetry
// @Produce      json
// @Param        widget  path      string  true  "health, connection or alerts"
// @Success      200     {object}  telemetry.Snapshot
// @Failure      404     {object}  map[string]string
// @Router       /api/telemetry/{widget} [get]
func (h *TelemetryHandler) Snapshot(c echo.Context) error {
	snap, err := h.widgets.Sample(c.Param("widget"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

type historyResponse struct {
	Metric  string                `json:"metric"`
	Samples []domain.HealthSample `json:"samples"`
}

// History returns recent samples of a health metric, oldest first.
//
// @Summary      Health history
// @Tags         telemetry
// @Produce      json
// @Param        metric  path      string  true   "heartRate, bloodOxygen or temperature"
// @Param        limit   query     int     false  "Number of samples (default 10)"
// @Success      200     {object}  historyResponse
// @Failure      400     {object}  map[string]string
// @Router       /api/health/history/{metric} [get]
func (h *TelemetryHandler) History(c echo.Context) error {
	metric := c.Param("metric")
	switch metric {
	case domain.MetricHeartRate, domain.MetricBloodOxygen, domain.MetricTemperature:
	default:
		return domain.ErrUnknownMetric
	}

	limit := telemetry.DefaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxHistoryLimit {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(maxHistoryLimit))
		}
		limit = n
	}

	samples, err := h.history.HealthHistory(c.Request().Context(), metric, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, historyResponse{Metric: metric, Samples: samples})
}

// Stream mounts a widget for the lifetime of a WebSocket connection: the
// sampler starts on upgrade and is stopped when the client goes away.
//
// @Summary      Live widget stream
// @Tags         telemetry
// @Param        widget  path  string  true  "health, connection or alerts"
// @Success      101
// @Failure      404  {object}  map[string]string
// @Router       /ws/telemetry/{widget} [get]
func (h *TelemetryHandler) Stream(c echo.Context) error {
	w, err := h.widgets.New(c.Param("widget"))
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already answered the client.
		h.log.Debug().Err(err).Msg("websocket upgrade failed")
		return nil
	}
	defer conn.Close()

	device := middleware.DeviceID(c)
	log := h.log.With().Str("widget", w.Name()).Str("device", device).Logger()

	out := make(chan telemetry.Snapshot, streamBuffer)
	unsubscribe := w.Listen(func(s telemetry.Snapshot) {
		metrics.SamplerTicksTotal.WithLabelValues(s.Widget).Inc()
		if a, ok := s.Data.(domain.AlertSnapshot); ok {
			metrics.AlertPriority.WithLabelValues(string(a.Priority.Level)).Set(float64(a.Priority.Count))
		}
		if h.sink != nil {
			h.sink.Enqueue(ports.SnapshotRecord{
				Widget:    s.Widget,
				DeviceID:  device,
				Fields:    s.Fields,
				Timestamp: s.At,
			})
		}
		select {
		case out <- s:
		default:
			// Slow reader; the next tick supersedes this one.
		}
	})

	ctx := c.Request().Context()
	w.Start(ctx)
	metrics.ActiveSamplers.WithLabelValues(w.Name()).Inc()
	log.Debug().Msg("widget mounted")

	defer func() {
		w.Stop()
		unsubscribe()
		metrics.ActiveSamplers.WithLabelValues(w.Name()).Dec()
		log.Debug().Msg("widget unmounted")
	}()

	closed := make(chan struct{})
	go readUntilClosed(conn, closed)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-closed:
			return nil
		case s := <-out:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(s); err != nil {
				log.Debug().Err(err).Msg("websocket write failed")
				return nil
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		}
	}
}

// readUntilClosed drains client frames so control messages are processed,
// and signals when the peer is gone.
func readUntilClosed(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
