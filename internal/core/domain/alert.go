package domain

// PriorityLevel is the most severe alert category present.
type PriorityLevel string

const (
	PriorityCritical PriorityLevel = "critical"
	PriorityWarning  PriorityLevel = "warning"
	PriorityInfo     PriorityLevel = "info"
	PriorityNone     PriorityLevel = "none"
)

// AlertCounts is the per-category alert vector. Missing JSON fields decode
// to zero.
type AlertCounts struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// Normalize clamps negative counts to zero.
func (a AlertCounts) Normalize() AlertCounts {
	return AlertCounts{
		Critical: max(a.Critical, 0),
		Warning:  max(a.Warning, 0),
		Info:     max(a.Info, 0),
	}
}

// Total is the sum of all categories.
func (a AlertCounts) Total() int {
	n := a.Normalize()
	return n.Critical + n.Warning + n.Info
}

// Priority is the badge signal derived from AlertCounts.
type Priority struct {
	Level PriorityLevel `json:"level"`
	Count int           `json:"count"`
}

// PriorityOf picks the first non-empty category in the order
// critical, warning, info. It is total and never fails.
func PriorityOf(counts AlertCounts) Priority {
	c := counts.Normalize()
	switch {
	case c.Critical > 0:
		return Priority{Level: PriorityCritical, Count: c.Critical}
	case c.Warning > 0:
		return Priority{Level: PriorityWarning, Count: c.Warning}
	case c.Info > 0:
		return Priority{Level: PriorityInfo, Count: c.Info}
	}
	return Priority{Level: PriorityNone, Count: 0}
}
