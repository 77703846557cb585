package ports

import (
	"context"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

// KeyValueStore is the device-scoped storage a session is persisted in.
// Get reports ok=false when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// KeyValueStores hands out the store of a single device.
type KeyValueStores interface {
	ForDevice(deviceID string) KeyValueStore
}

// SessionStore persists the authenticated user of one device.
type SessionStore interface {
	// Restore returns nil when there is no usable session. A corrupt record
	// is removed and reported as no session; only storage failures error.
	Restore(ctx context.Context) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	Clear(ctx context.Context) error
}
