package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/guardian-ae/fleetwatch/internal/api/middleware"
	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

// ViewHandler answers the routes of the route table. Views are described,
// not rendered: clients get the title, the viewer and the widget streams
// to open.
type ViewHandler struct {
	log zerolog.Logger
}

func NewViewHandler(log zerolog.Logger) *ViewHandler {
	return &ViewHandler{log: log}
}

type viewResponse struct {
	View    string       `json:"view"`
	Title   string       `json:"title"`
	User    *domain.User `json:"user,omitempty"`
	Widgets []string     `json:"widgets"`
}

// Render returns the handler of a guarded view.
func (h *ViewHandler) Render(rule domain.RouteRule) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, describe(rule, user))
	}
}

// RoleRedirect sends the signed-in user to the landing view of their role.
// It runs behind the guard, so the session is settled and authenticated.
func (h *ViewHandler) RoleRedirect(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	landing, err := domain.DefaultRouteFor(user.Role)
	if err != nil {
		h.log.Warn().Err(err).Str("user", user.ID).Msg("no landing view for role")
	}
	return c.Redirect(http.StatusFound, landing)
}

// Login describes the sign-in view. Signed-in users are sent on to their
// landing view instead.
func (h *ViewHandler) Login(c echo.Context) error {
	st := middleware.Session(c).State()
	if st.IsLoading {
		c.Response().Header().Set("Retry-After", "1")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
	}
	if st.IsAuthenticated && st.User != nil {
		if landing, err := domain.DefaultRouteFor(st.User.Role); err == nil {
			return c.Redirect(http.StatusFound, landing)
		}
	}

	rule, _ := domain.LookupRoute(domain.PathLogin)
	return c.JSON(http.StatusOK, describe(rule, nil))
}

func describe(rule domain.RouteRule, user *domain.User) viewResponse {
	widgets := rule.Widgets
	if widgets == nil {
		widgets = []string{}
	}
	return viewResponse{
		View:    rule.Path,
		Title:   rule.Title,
		User:    user,
		Widgets: widgets,
	}
}
