package ports

import (
	"context"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

// CredentialValidator checks an email/password pair. This is the boundary a
// real authentication backend has to satisfy.
type CredentialValidator interface {
	Validate(ctx context.Context, email, password string) (*domain.User, error)
}

// AuthSession is the auth state of one device.
type AuthSession interface {
	State() domain.SessionState
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Logout(ctx context.Context) error
}

// AuthProvider resolves the auth session of a device, restoring any
// persisted session before returning it.
type AuthProvider interface {
	Session(ctx context.Context, deviceID string) AuthSession
}
