package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guardian-ae/fleetwatch/internal/api/middleware"
	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

// currentUser returns the signed-in user of the request. Routes are guarded
// before they reach a handler, so a missing user here means the session
// changed mid-request; it is answered with 401 rather than trusted.
func currentUser(c echo.Context) (*domain.User, error) {
	st := middleware.Session(c).State()
	if !st.IsAuthenticated || st.User == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return st.User, nil
}
