package domain

import "time"

// Widget names double as stream identifiers.
const (
	WidgetHealth     = "health"
	WidgetConnection = "connection"
	WidgetAlerts     = "alerts"
)

// Documented bounds of the simulated health metrics. Status classification
// relies on values staying inside them.
const (
	HeartRateMin   = 60.0
	HeartRateMax   = 120.0
	BloodOxygenMin = 95.0
	BloodOxygenMax = 100.0
	TemperatureMin = 36.0
	TemperatureMax = 38.0
)

// HealthStatus classifies a health snapshot.
type HealthStatus string

const (
	HealthGood     HealthStatus = "good"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
)

// HealthSnapshot is one reading of the wearable.
type HealthSnapshot struct {
	HeartRate      float64      `json:"heartRate"`
	BloodOxygen    float64      `json:"bloodOxygen"`
	Temperature    float64      `json:"temperature"`
	StepCount      int          `json:"stepCount"`
	ActiveCalories int          `json:"activeCalories"`
	Status         HealthStatus `json:"status"`
	LastUpdate     time.Time    `json:"lastUpdate"`
}

// Classify derives the health status from vitals.
func (h HealthSnapshot) Classify() HealthStatus {
	switch {
	case h.HeartRate > 110 || h.BloodOxygen < 94 || h.Temperature > 38.0:
		return HealthCritical
	case h.HeartRate > 100 || h.BloodOxygen < 96 || h.Temperature > 37.5:
		return HealthWarning
	}
	return HealthGood
}

// ConnectionState is the overall fleet link quality.
type ConnectionState string

const (
	ConnectionConnected    ConnectionState = "connected"
	ConnectionDegraded     ConnectionState = "degraded"
	ConnectionDisconnected ConnectionState = "disconnected"
)

// DeviceCount reports how many fleet devices are reachable.
type DeviceCount struct {
	Connected int `json:"connected"`
	Total     int `json:"total"`
}

// ConnectionSnapshot is one reading of the connection monitor.
type ConnectionSnapshot struct {
	Overall       ConnectionState `json:"overall"`
	Devices       DeviceCount     `json:"devices"`
	LatencyMs     int             `json:"latency"`
	DataFreshness string          `json:"dataFreshness"`
	LastUpdate    time.Time       `json:"lastUpdate"`
}

// OnlinePercent is the rounded share of connected devices.
func (c ConnectionSnapshot) OnlinePercent() int {
	if c.Devices.Total == 0 {
		return 0
	}
	return int(float64(c.Devices.Connected)/float64(c.Devices.Total)*100 + 0.5)
}

// AlertSnapshot is one reading of the alert counter.
type AlertSnapshot struct {
	Counts     AlertCounts `json:"counts"`
	Total      int         `json:"total"`
	Priority   Priority    `json:"priority"`
	LastUpdate time.Time   `json:"lastUpdate"`
}

// HealthSample is a single historical data point.
type HealthSample struct {
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
	Unit      string    `json:"unit"`
}

// Health metric kinds accepted by history queries.
const (
	MetricHeartRate   = "heartRate"
	MetricBloodOxygen = "bloodOxygen"
	MetricTemperature = "temperature"
)

// Notification is a best-effort alert pushed to supervisors.
type Notification struct {
	ID        string    `json:"id"`
	Tag       string    `json:"tag"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	DriverID  string    `json:"driverId"`
	CreatedAt time.Time `json:"createdAt"`
}
