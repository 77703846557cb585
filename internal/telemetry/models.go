package telemetry

import (
	"math/rand/v2"
	"time"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

const fleetDevices = 50

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

// HealthModel is a bounded random walk over the wearable's vitals.
type HealthModel struct {
	rng  *rand.Rand
	now  func() time.Time
	prev domain.HealthSnapshot
}

// NewHealthModel starts the walk from resting vitals.
func NewHealthModel(rng *rand.Rand) *HealthModel {
	return &HealthModel{
		rng: rng,
		now: time.Now,
		prev: domain.HealthSnapshot{
			HeartRate:   72,
			BloodOxygen: 98,
			Temperature: 36.9,
		},
	}
}

func (m *HealthModel) Next() domain.HealthSnapshot {
	s := domain.HealthSnapshot{
		HeartRate:      clamp(m.prev.HeartRate+(m.rng.Float64()-0.5)*4, domain.HeartRateMin, domain.HeartRateMax),
		BloodOxygen:    clamp(m.prev.BloodOxygen+(m.rng.Float64()-0.5)*1, domain.BloodOxygenMin, domain.BloodOxygenMax),
		Temperature:    clamp(m.prev.Temperature+(m.rng.Float64()-0.5)*0.2, domain.TemperatureMin, domain.TemperatureMax),
		StepCount:      m.prev.StepCount + m.rng.IntN(3),
		ActiveCalories: m.prev.ActiveCalories + m.rng.IntN(2),
		LastUpdate:     m.now().UTC(),
	}
	s.Status = s.Classify()
	m.prev = s
	return s
}

// connectionWeights must sum to 1.
var connectionWeights = []struct {
	state  domain.ConnectionState
	weight float64
}{
	{domain.ConnectionConnected, 0.7},
	{domain.ConnectionDegraded, 0.25},
	{domain.ConnectionDisconnected, 0.05},
}

// ConnectionModel draws the fleet link status.
type ConnectionModel struct {
	rng *rand.Rand
	now func() time.Time
}

func NewConnectionModel(rng *rand.Rand) *ConnectionModel {
	return &ConnectionModel{rng: rng, now: time.Now}
}

func (m *ConnectionModel) Next() domain.ConnectionSnapshot {
	state := domain.ConnectionConnected
	r := m.rng.Float64()
	for _, w := range connectionWeights {
		if r < w.weight {
			state = w.state
			break
		}
		r -= w.weight
	}

	var share float64
	switch state {
	case domain.ConnectionConnected:
		share = 0.9 + m.rng.Float64()*0.1
	case domain.ConnectionDegraded:
		share = 0.7 + m.rng.Float64()*0.2
	default:
		share = 0.3 + m.rng.Float64()*0.4
	}

	s := domain.ConnectionSnapshot{
		Overall:       state,
		Devices:       domain.DeviceCount{Connected: int(fleetDevices * share), Total: fleetDevices},
		DataFreshness: "delayed",
		LastUpdate:    m.now().UTC(),
	}
	if state == domain.ConnectionConnected {
		s.LatencyMs = 15 + m.rng.IntN(20)
		s.DataFreshness = "live"
	} else {
		s.LatencyMs = 50 + m.rng.IntN(200)
	}
	return s
}

// AlertModel draws per-category alert counts.
type AlertModel struct {
	rng *rand.Rand
	now func() time.Time
}

func NewAlertModel(rng *rand.Rand) *AlertModel {
	return &AlertModel{rng: rng, now: time.Now}
}

func (m *AlertModel) Next() domain.AlertSnapshot {
	counts := domain.AlertCounts{
		Critical: m.rng.IntN(3),
		Warning:  m.rng.IntN(6),
		Info:     m.rng.IntN(9),
	}
	return domain.AlertSnapshot{
		Counts:     counts,
		Total:      counts.Total(),
		Priority:   domain.PriorityOf(counts),
		LastUpdate: m.now().UTC(),
	}
}
