package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

// errorResponse is the envelope of every API error.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler maps domain errors to status codes and renders
// {"error": "<message>"}. Unexpected errors are logged and reported as 500
// without detail.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		// The message is shown verbatim on the login form.
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrLoginSuperseded):
		return http.StatusConflict, "login superseded by a newer session change"
	case errors.Is(err, domain.ErrUnauthorizedRole):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUnknownWidget):
		return http.StatusNotFound, "unknown widget"
	case errors.Is(err, domain.ErrUnknownMetric):
		return http.StatusBadRequest, "unknown health metric"
	case errors.Is(err, domain.ErrDuplicateNotice):
		return http.StatusConflict, "emergency alert already sent"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
