package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// DeviceCookie carries the signed device identity.
	DeviceCookie = "fleetwatch_device"
	// DeviceTokenHeader echoes a freshly issued token for clients without cookies.
	DeviceTokenHeader = "X-Device-Token"

	deviceIDKey    = "device_id"
	deviceTokenTTL = 365 * 24 * time.Hour
)

// DeviceIdentity gives every client a stable, signed device id. The id scopes
// the persisted session the way browser storage is scoped to one browser.
// Tokens are read from the cookie first, then from a bearer header; a
// missing or invalid token is replaced by a new identity.
func DeviceIdentity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := parseDeviceToken(secret, requestToken(c.Request()))
			if !ok {
				var token string
				var err error
				id = uuid.NewString()
				token, err = signDeviceToken(secret, id, time.Now())
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "could not issue device identity")
				}
				c.SetCookie(&http.Cookie{
					Name:     DeviceCookie,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(deviceTokenTTL),
				})
				c.Response().Header().Set(DeviceTokenHeader, token)
			}

			c.Set(deviceIDKey, id)
			return next(c)
		}
	}
}

// DeviceID returns the id set by DeviceIdentity, or "".
func DeviceID(c echo.Context) string {
	id, _ := c.Get(deviceIDKey).(string)
	return id
}

func requestToken(r *http.Request) string {
	if ck, err := r.Cookie(DeviceCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

func signDeviceToken(secret, id string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(deviceTokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseDeviceToken(secret, raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}
