package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/guardian-ae/fleetwatch/internal/api/metrics"
	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

type loadingResponse struct {
	Status string `json:"status"`
}

func decide(c echo.Context, route string, roles []domain.Role) domain.Decision {
	st := Session(c).State()
	d := domain.Decide(domain.GuardInput{
		IsLoading:       st.IsLoading,
		IsAuthenticated: st.IsAuthenticated,
		Role:            st.Role(),
		AllowedRoles:    roles,
		RequestedPath:   c.Request().URL.RequestURI(),
	})
	metrics.GuardDecisionsTotal.WithLabelValues(route, string(d.Kind)).Inc()
	return d
}

func renderLoading(c echo.Context) error {
	c.Response().Header().Set("Retry-After", "1")
	return c.JSON(http.StatusServiceUnavailable, loadingResponse{Status: "loading"})
}

// Guard protects a view. It is evaluated on every request, so a change of
// session between requests is always honoured.
func Guard(log zerolog.Logger, rule domain.RouteRule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := decide(c, rule.Path, rule.AllowedRoles)
			switch d.Kind {
			case domain.DecisionLoading:
				return renderLoading(c)
			case domain.DecisionRedirectLogin:
				if d.Err != nil {
					log.Warn().Err(d.Err).Str("path", rule.Path).Msg("session role has no landing view")
				}
				loc := d.Location
				if d.From != "" {
					loc += "?from=" + url.QueryEscape(d.From)
				}
				return c.Redirect(http.StatusFound, loc)
			case domain.DecisionRedirectRole:
				return c.Redirect(http.StatusFound, d.Location)
			}
			return next(c)
		}
	}
}

// RequireRoles is the API flavour of Guard: instead of redirecting it
// answers 401 for anonymous and 403 for disallowed callers.
func RequireRoles(route string, roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch decide(c, route, roles).Kind {
			case domain.DecisionLoading:
				return renderLoading(c)
			case domain.DecisionRedirectLogin:
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			case domain.DecisionRedirectRole:
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
