package ports

import (
	"context"
	"time"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

// SnapshotRecord is one sampler output queued for persistence.
type SnapshotRecord struct {
	Widget    string
	DeviceID  string
	Fields    map[string]any
	Timestamp time.Time
}

// SnapshotRecorder persists sampler output.
type SnapshotRecorder interface {
	Record(ctx context.Context, rec SnapshotRecord) error
}

// HealthHistory returns the last limit samples of a health metric, oldest first.
type HealthHistory interface {
	HealthHistory(ctx context.Context, kind string, limit int) ([]domain.HealthSample, error)
}

// Notifier publishes best-effort notifications.
type Notifier interface {
	Publish(ctx context.Context, n domain.Notification) error
}

// TagClaimer lets only the first notification with a given tag through
// within ttl.
type TagClaimer interface {
	Claim(ctx context.Context, tag string, ttl time.Duration) (bool, error)
}
