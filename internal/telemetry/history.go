package telemetry

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

const DefaultHistoryLimit = 10

// SyntheticHistory fabricates health history one minute apart when no time
// series store is configured.
type SyntheticHistory struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewSyntheticHistory() *SyntheticHistory {
	return &SyntheticHistory{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now: time.Now,
	}
}

func (h *SyntheticHistory) HealthHistory(_ context.Context, kind string, limit int) ([]domain.HealthSample, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now().UTC()
	out := make([]domain.HealthSample, limit)
	// Filled newest-last so the slice is already in chronological order.
	for i := 0; i < limit; i++ {
		ts := now.Add(-time.Duration(limit-1-i) * time.Minute)
		out[i] = h.sample(kind, ts)
	}
	return out, nil
}

func (h *SyntheticHistory) sample(kind string, ts time.Time) domain.HealthSample {
	switch kind {
	case domain.MetricHeartRate:
		return domain.HealthSample{Value: 70 + h.rng.Float64()*20, Timestamp: ts, Unit: "bpm"}
	case domain.MetricBloodOxygen:
		return domain.HealthSample{Value: 96 + h.rng.Float64()*3, Timestamp: ts, Unit: "%"}
	case domain.MetricTemperature:
		return domain.HealthSample{Value: 36.5 + h.rng.Float64()*1.2, Timestamp: ts, Unit: "°C"}
	}
	return domain.HealthSample{Value: h.rng.Float64() * 100, Timestamp: ts, Unit: "unknown"}
}
