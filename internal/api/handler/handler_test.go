package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/guardian-ae/fleetwatch/internal/api/middleware"
	"github.com/guardian-ae/fleetwatch/internal/core/domain"
	"github.com/guardian-ae/fleetwatch/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubSession struct {
	state    domain.SessionState
	loginFn  func(email, password string) (*domain.User, error)
	loggedIn string
	logouts  int
}

func (s *stubSession) State() domain.SessionState { return s.state }

func (s *stubSession) Login(_ context.Context, email, password string) (*domain.User, error) {
	s.loggedIn = email
	u, err := s.loginFn(email, password)
	if err == nil {
		s.state = domain.SessionState{User: u, IsAuthenticated: true, Phase: domain.PhaseAuthenticated}
	}
	return u, err
}

func (s *stubSession) Logout(context.Context) error {
	s.logouts++
	s.state = domain.SessionState{Phase: domain.PhaseUnauthenticated}
	return nil
}

type stubProvider struct {
	session *stubSession
}

func (p stubProvider) Session(context.Context, string) ports.AuthSession { return p.session }

var (
	driver     = &domain.User{ID: "DRV-001", Email: "dSamir@guardian.ae", Name: "Samir", Role: domain.RoleDriver, Location: "Al Ain"}
	supervisor = &domain.User{ID: "SUP-001", Email: "sAmna@guardian.ae", Name: "Amna", Role: domain.RoleSupervisor}
)

func signedIn(u *domain.User) *stubSession {
	return &stubSession{state: domain.SessionState{User: u, IsAuthenticated: true, Phase: domain.PhaseAuthenticated}}
}

func anonymous() *stubSession {
	return &stubSession{state: domain.SessionState{Phase: domain.PhaseUnauthenticated}}
}

// call runs h behind the device and auth context middleware, the way the
// router mounts it.
func call(t *testing.T, session *stubSession, method, target, body string, h echo.HandlerFunc, params ...string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	chain := middleware.DeviceIdentity("test-secret")(middleware.AuthContext(stubProvider{session: session})(h))
	return rec, chain(c)
}

func httpCode(rec *httptest.ResponseRecorder, err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return rec.Code
}
