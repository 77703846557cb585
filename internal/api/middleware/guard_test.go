package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

func guarded(t *testing.T, mw echo.MiddlewareFunc, session *stubSession, target string) (*httptest.ResponseRecorder, bool, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)
	c.Set(authSessionKey, session)

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, called, err
}

func supervisorRule(t *testing.T) domain.RouteRule {
	t.Helper()
	rule, ok := domain.LookupRoute(domain.PathSupervisorDashboard)
	if !ok {
		t.Fatal("supervisor dashboard missing from route table")
	}
	return rule
}

func TestGuard_Loading(t *testing.T) {
	loading := &stubSession{state: domain.SessionState{IsLoading: true, Phase: domain.PhaseInitializing}}

	rec, called, err := guarded(t, Guard(zerolog.Nop(), supervisorRule(t)), loading, "/supervisor-dashboard")

	if err != nil || called {
		t.Fatalf("expected placeholder without calling next, err=%v called=%v", err, called)
	}
	if rec.Code != http.StatusServiceUnavailable || rec.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected 503 with Retry-After, got %d %q", rec.Code, rec.Header().Get("Retry-After"))
	}
}

func TestGuard_Anonymous_RedirectsToLoginWithFrom(t *testing.T) {
	anon := &stubSession{state: domain.SessionState{Phase: domain.PhaseUnauthenticated}}

	rec, called, _ := guarded(t, Guard(zerolog.Nop(), supervisorRule(t)), anon, "/supervisor-dashboard")

	if called {
		t.Fatal("next must not run")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?from=%2Fsupervisor-dashboard" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestGuard_Anonymous_FromKeepsQuery(t *testing.T) {
	rec, _, _ := guarded(t, Guard(zerolog.Nop(), supervisorRule(t)), &stubSession{state: domain.SessionState{Phase: domain.PhaseUnauthenticated}}, "/supervisor-dashboard?tab=alerts")

	if loc := rec.Header().Get("Location"); loc != "/login?from=%2Fsupervisor-dashboard%3Ftab%3Dalerts" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestGuard_WrongRole_RedirectsToLanding(t *testing.T) {
	rec, called, _ := guarded(t, Guard(zerolog.Nop(), supervisorRule(t)), signedIn(domain.RoleDriver), "/supervisor-dashboard")

	if called {
		t.Fatal("next must not run")
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != domain.PathSmartwatchView {
		t.Fatalf("expected redirect to smartwatch view, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGuard_UnknownRole_RedirectsToLogin(t *testing.T) {
	rec, called, _ := guarded(t, Guard(zerolog.Nop(), supervisorRule(t)), signedIn("mechanic"), "/supervisor-dashboard")

	if called {
		t.Fatal("next must not run")
	}
	if rec.Header().Get("Location") != domain.PathLogin {
		t.Fatalf("expected plain login redirect, got %q", rec.Header().Get("Location"))
	}
}

func TestGuard_AllowedRole_Renders(t *testing.T) {
	rec, called, err := guarded(t, Guard(zerolog.Nop(), supervisorRule(t)), signedIn(domain.RoleSupervisor), "/supervisor-dashboard")

	if err != nil || !called || rec.Code != http.StatusOK {
		t.Fatalf("expected render, err=%v called=%v code=%d", err, called, rec.Code)
	}
}

func TestGuard_ReevaluatesEveryRequest(t *testing.T) {
	session := signedIn(domain.RoleSupervisor)
	mw := Guard(zerolog.Nop(), supervisorRule(t))

	if _, called, _ := guarded(t, mw, session, "/supervisor-dashboard"); !called {
		t.Fatal("expected first request to render")
	}

	session.state = domain.SessionState{Phase: domain.PhaseUnauthenticated}
	rec, called, _ := guarded(t, mw, session, "/supervisor-dashboard")
	if called || rec.Code != http.StatusFound {
		t.Fatal("expected logout to take effect on the next request")
	}
}

func TestRequireRoles(t *testing.T) {
	cases := []struct {
		name    string
		session *stubSession
		code    int
	}{
		{"anonymous", &stubSession{}, http.StatusUnauthorized},
		{"wrong role", signedIn(domain.RoleSupervisor), http.StatusForbidden},
		{"allowed", signedIn(domain.RoleDriver), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _, err := guarded(t, RequireRoles("/api/x", domain.RoleDriver), tc.session, "/api/x")

			code := rec.Code
			var he *echo.HTTPError
			if errors.As(err, &he) {
				code = he.Code
			}
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
		})
	}
}

func TestRequireRoles_Loading(t *testing.T) {
	loading := &stubSession{state: domain.SessionState{IsLoading: true}}

	rec, called, _ := guarded(t, RequireRoles("/api/x"), loading, "/api/x")

	if called || rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
