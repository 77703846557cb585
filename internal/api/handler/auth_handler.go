package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/guardian-ae/fleetwatch/internal/api/metrics"
	"github.com/guardian-ae/fleetwatch/internal/api/middleware"
	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

type AuthHandler struct {
	log zerolog.Logger
}

func NewAuthHandler(log zerolog.Logger) *AuthHandler {
	return &AuthHandler{log: log}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User *domain.User `json:"user"`
	// Redirect is where the client should go next: the originally
	// requested view when the role may open it, else the role's landing view.
	Redirect string `json:"redirect"`
}

type logoutResponse struct {
	Redirect string `json:"redirect"`
}

// Login signs the device in.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        from  query     string        false  "View to return to after signing in"
// @Param        body  body      loginRequest  true   "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := middleware.Session(c).Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	redirect, err := domain.DefaultRouteFor(user.Role)
	if err != nil {
		h.log.Warn().Err(err).Str("user", user.ID).Msg("signed-in user has no landing view")
	}
	if from := c.QueryParam("from"); from != "" && returnAllowed(from, user.Role) {
		redirect = from
	}

	h.log.Info().Str("user", user.ID).Str("role", string(user.Role)).Msg("user signed in")
	return c.JSON(http.StatusOK, loginResponse{User: user, Redirect: redirect})
}

// Logout signs the device out.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := middleware.Session(c).Logout(c.Request().Context()); err != nil {
		return err
	}
	metrics.LogoutsTotal.Inc()
	return c.JSON(http.StatusOK, logoutResponse{Redirect: domain.PathLogin})
}

// Session reports the auth state of the device.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.SessionState
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.Session(c).State())
}

// returnAllowed reports whether from is a local view the role may open.
// The query string is kept in the redirect but ignored for the lookup.
func returnAllowed(from string, role domain.Role) bool {
	u, err := url.Parse(from)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return false
	}
	rule, ok := domain.LookupRoute(u.Path)
	return ok && !rule.Public && !rule.RoleRedirect && rule.Allows(role)
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrLoginSuperseded):
		return "superseded"
	}
	return "error"
}
