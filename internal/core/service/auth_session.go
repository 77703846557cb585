package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
	"github.com/guardian-ae/fleetwatch/internal/core/ports"
)

const restoreTimeout = 5 * time.Second

// AuthSession is the auth state machine of one device:
//
//	initializing -> authenticated | unauthenticated
//	unauthenticated --login--> authenticated
//	authenticated --logout--> unauthenticated
//
// Every login and logout bumps a generation counter. A login whose
// validation finishes after the counter moved on is discarded, so a slow
// login can never resurrect a session that was logged out meanwhile.
type AuthSession struct {
	store     ports.SessionStore
	validator ports.CredentialValidator
	log       zerolog.Logger

	initMu sync.Mutex

	mu         sync.Mutex
	phase      domain.AuthPhase
	user       *domain.User
	loading    bool
	generation uint64
	// settled is set once the persisted record has been read, or once a
	// login or logout made it irrelevant.
	settled bool
}

// NewAuthSession returns a session in the initializing phase. Call Init
// before serving anything from it.
func NewAuthSession(store ports.SessionStore, validator ports.CredentialValidator, log zerolog.Logger) *AuthSession {
	return &AuthSession{
		store:     store,
		validator: validator,
		log:       log,
		phase:     domain.PhaseInitializing,
		loading:   true,
	}
}

// Init restores the persisted session. Concurrent calls wait for the one
// in progress. A storage failure leaves the session signed out but not
// settled, so the next call tries again. The restore is detached from ctx
// cancellation and bounded by restoreTimeout.
func (s *AuthSession) Init(ctx context.Context) {
	if s.isSettled() {
		return
	}

	s.initMu.Lock()
	defer s.initMu.Unlock()
	if s.isSettled() {
		return
	}

	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), restoreTimeout)
	defer cancel()
	user, err := s.store.Restore(rctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settled {
		// A login or logout ran meanwhile and owns the state now.
		return
	}
	s.loading = false
	if err != nil {
		s.log.Warn().Err(err).Msg("session restore failed, starting signed out")
		s.phase = domain.PhaseUnauthenticated
		return
	}
	s.settled = true
	if user != nil {
		s.user = user
		s.phase = domain.PhaseAuthenticated
	} else {
		s.phase = domain.PhaseUnauthenticated
	}
}

func (s *AuthSession) isSettled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settled
}

// State returns a copy of the current session state.
func (s *AuthSession) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := domain.SessionState{
		IsAuthenticated: s.phase == domain.PhaseAuthenticated,
		IsLoading:       s.loading,
		Phase:           s.phase,
	}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

// Login validates the credentials and, on success, persists and installs
// the user. isLoading is raised for the duration of the call.
func (s *AuthSession) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.loading = true
	s.settled = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.generation == gen {
			s.loading = false
		}
		s.mu.Unlock()
	}()

	user, err := s.validator.Validate(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		s.log.Debug().Str("email", email).Msg("stale login discarded")
		return nil, domain.ErrLoginSuperseded
	}
	if err != nil {
		s.signOutLocked(ctx)
		return nil, err
	}
	if err := s.store.Save(ctx, user); err != nil {
		s.signOutLocked(ctx)
		return nil, err
	}

	s.user = user
	s.phase = domain.PhaseAuthenticated
	return cloneUser(user), nil
}

// Logout drops the session immediately. Any login still in flight is
// invalidated.
func (s *AuthSession) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.settled = true
	s.user = nil
	s.phase = domain.PhaseUnauthenticated
	s.loading = false
	return s.store.Clear(ctx)
}

// busy reports whether a login is in flight.
func (s *AuthSession) busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *AuthSession) signOutLocked(ctx context.Context) {
	s.user = nil
	s.phase = domain.PhaseUnauthenticated
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear session after rejected login")
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
