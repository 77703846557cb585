package memory

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

// SeedUser is a registry entry before its password is hashed.
type SeedUser struct {
	Password string
	Record   domain.CredentialRecord
}

// DefaultSeed is the built-in account table.
var DefaultSeed = []SeedUser{
	{
		Password: "123456789",
		Record: domain.CredentialRecord{
			ID:               "DRV-001",
			Email:            "dSamir@guardian.ae",
			Name:             "Samir Al-Rashid",
			Role:             domain.RoleDriver,
			Location:         "Al Ain - Hili Technology School",
			VehicleID:        "TRK-001",
			HealthKitEnabled: true,
		},
	},
	{
		Password: "123456789",
		Record: domain.CredentialRecord{
			ID:         "SUP-001",
			Email:      "sAmna@guardian.ae",
			Name:       "Amna Al-Zahra",
			Role:       domain.RoleSupervisor,
			Location:   "Al Ain Operations Center",
			Department: "Fleet Management",
		},
	},
	{
		Password: "123456789",
		Record: domain.CredentialRecord{
			ID:         "ADM-001",
			Email:      "aKhalid@guardian.ae",
			Name:       "Khalid Al-Mansoori",
			Role:       domain.RoleAdmin,
			Location:   "Al Ain Operations Center",
			Department: "Administration",
		},
	},
}

// HashSeed bcrypt-hashes the seed passwords.
func HashSeed(seed []SeedUser, cost int) ([]domain.CredentialRecord, error) {
	out := make([]domain.CredentialRecord, 0, len(seed))
	for _, s := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password of %s: %w", s.Record.Email, err)
		}
		rec := s.Record
		rec.PasswordHash = string(hash)
		out = append(out, rec)
	}
	return out, nil
}

// UserRegistry is a read-only credential table keyed by exact email.
type UserRegistry struct {
	byEmail map[string]domain.CredentialRecord
}

// NewUserRegistry indexes records by email. Later duplicates win.
func NewUserRegistry(records []domain.CredentialRecord) *UserRegistry {
	r := &UserRegistry{byEmail: make(map[string]domain.CredentialRecord, len(records))}
	for _, rec := range records {
		r.byEmail[rec.Email] = rec
	}
	return r
}

func (r *UserRegistry) FindByEmail(_ context.Context, email string) (*domain.CredentialRecord, error) {
	rec, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &rec, nil
}
