package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
	"github.com/guardian-ae/fleetwatch/internal/core/ports"
)

// decoyHash is compared against when the email is unknown so both failure
// paths spend the same bcrypt time.
var decoyHash, _ = bcrypt.GenerateFromPassword([]byte("fleetwatch-decoy"), bcrypt.MinCost)

// CredentialValidator checks credentials against the registry after a
// simulated network delay.
type CredentialValidator struct {
	repo    ports.UserRepository
	latency time.Duration
}

// NewCredentialValidator returns a validator backed by repo. A zero latency
// resolves immediately.
func NewCredentialValidator(repo ports.UserRepository, latency time.Duration) *CredentialValidator {
	if latency < 0 {
		latency = 0
	}
	return &CredentialValidator{repo: repo, latency: latency}
}

func (v *CredentialValidator) Validate(ctx context.Context, email, password string) (*domain.User, error) {
	if err := sleepCtx(ctx, v.latency); err != nil {
		return nil, err
	}
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	rec, err := v.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(decoyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return rec.User(), nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
