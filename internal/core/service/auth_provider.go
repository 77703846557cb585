package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/guardian-ae/fleetwatch/internal/core/ports"
)

type providerEntry struct {
	session  *AuthSession
	lastSeen time.Time
}

// AuthProvider owns one AuthSession per device and is the single writer of
// the session stores.
type AuthProvider struct {
	stores    ports.KeyValueStores
	validator ports.CredentialValidator
	log       zerolog.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*providerEntry
}

// NewAuthProvider wires the provider to its storage and validator.
func NewAuthProvider(stores ports.KeyValueStores, validator ports.CredentialValidator, log zerolog.Logger) *AuthProvider {
	return &AuthProvider{
		stores:    stores,
		validator: validator,
		log:       log,
		now:       time.Now,
		sessions:  make(map[string]*providerEntry),
	}
}

// Session returns the initialised session of deviceID.
func (p *AuthProvider) Session(ctx context.Context, deviceID string) ports.AuthSession {
	return p.session(ctx, deviceID)
}

func (p *AuthProvider) session(ctx context.Context, deviceID string) *AuthSession {
	p.mu.Lock()
	e, ok := p.sessions[deviceID]
	if !ok {
		store := NewSessionStore(p.stores.ForDevice(deviceID), p.log.With().Str("device", deviceID).Logger())
		e = &providerEntry{session: NewAuthSession(store, p.validator, p.log.With().Str("device", deviceID).Logger())}
		p.sessions[deviceID] = e
	}
	e.lastSeen = p.now()
	p.mu.Unlock()

	e.session.Init(ctx)
	return e.session
}

// Len is the number of live sessions.
func (p *AuthProvider) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sessions)
}

// Sweep forgets sessions idle for longer than idle. Their persisted state is
// kept and restored on the device's next request. Sessions with a login in
// flight are never dropped.
func (p *AuthProvider) Sweep(idle time.Duration) int {
	cutoff := p.now().Add(-idle)

	p.mu.Lock()
	defer p.mu.Unlock()

	removed := 0
	for id, e := range p.sessions {
		if e.lastSeen.Before(cutoff) && !e.session.busy() {
			delete(p.sessions, id)
			removed++
		}
	}
	return removed
}
