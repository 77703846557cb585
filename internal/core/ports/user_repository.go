package ports

import (
	"context"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

// UserRepository is the credential registry.
type UserRepository interface {
	// FindByEmail looks a record up by exact email match. Missing records
	// yield domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.CredentialRecord, error)
}
