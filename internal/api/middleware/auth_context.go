package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
	"github.com/guardian-ae/fleetwatch/internal/core/ports"
)

const authSessionKey = "auth_session"

// AuthContext attaches the device's auth session to the request. It must run
// after DeviceIdentity. The session is restored before next runs, so guards
// never decide on a half-initialised session.
func AuthContext(provider ports.AuthProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := DeviceID(c)
			if id == "" {
				panic(fmt.Errorf("%w: no device identity on request", domain.ErrContextMisuse))
			}
			c.Set(authSessionKey, provider.Session(c.Request().Context(), id))
			return next(c)
		}
	}
}

// Session returns the auth session attached by AuthContext. Calling it on a
// route that is not behind AuthContext is a wiring bug and panics.
func Session(c echo.Context) ports.AuthSession {
	s, ok := c.Get(authSessionKey).(ports.AuthSession)
	if !ok || s == nil {
		panic(domain.ErrContextMisuse)
	}
	return s
}
