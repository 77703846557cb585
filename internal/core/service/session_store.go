package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
	"github.com/guardian-ae/fleetwatch/internal/core/ports"
)

// SessionKey is the fixed key the authenticated user is stored under.
const SessionKey = "fleetwatch_user"

// SessionStore persists a password-free User as JSON in a KeyValueStore.
type SessionStore struct {
	kv  ports.KeyValueStore
	log zerolog.Logger
}

// NewSessionStore returns a SessionStore writing to kv.
func NewSessionStore(kv ports.KeyValueStore, log zerolog.Logger) *SessionStore {
	return &SessionStore{kv: kv, log: log}
}

func (s *SessionStore) Restore(ctx context.Context) (*domain.User, error) {
	raw, ok, err := s.kv.Get(ctx, SessionKey)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	user, err := decodeUser(raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("discarding persisted session")
		if delErr := s.kv.Delete(ctx, SessionKey); delErr != nil {
			return nil, fmt.Errorf("clear corrupt session: %w", delErr)
		}
		return nil, nil
	}
	return user, nil
}

func (s *SessionStore) Save(ctx context.Context, user *domain.User) error {
	if !user.Complete() {
		return fmt.Errorf("save session: %w", domain.ErrSessionCorrupt)
	}
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := s.kv.Set(ctx, SessionKey, string(b)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// decodeUser accepts only records that match the User shape.
func decodeUser(raw string) (*domain.User, error) {
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionCorrupt, err)
	}
	if !u.Complete() {
		return nil, fmt.Errorf("%w: missing id, email or role", domain.ErrSessionCorrupt)
	}
	return &u, nil
}
