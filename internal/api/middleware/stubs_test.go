package middleware

import (
	"context"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
	"github.com/guardian-ae/fleetwatch/internal/core/ports"
)

type stubSession struct {
	state domain.SessionState
}

func (s *stubSession) State() domain.SessionState { return s.state }

func (s *stubSession) Login(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubSession) Logout(context.Context) error { return nil }

type stubProvider struct {
	sessions map[string]*stubSession
	asked    []string
}

func (p *stubProvider) Session(_ context.Context, deviceID string) ports.AuthSession {
	p.asked = append(p.asked, deviceID)
	s, ok := p.sessions[deviceID]
	if !ok {
		s = &stubSession{state: domain.SessionState{Phase: domain.PhaseUnauthenticated}}
		if p.sessions == nil {
			p.sessions = make(map[string]*stubSession)
		}
		p.sessions[deviceID] = s
	}
	return s
}

func signedIn(role domain.Role) *stubSession {
	return &stubSession{state: domain.SessionState{
		User:            &domain.User{ID: "U-1", Email: "u@guardian.ae", Role: role},
		IsAuthenticated: true,
		Phase:           domain.PhaseAuthenticated,
	}}
}
