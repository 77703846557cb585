package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guardian-ae/fleetwatch/internal/api/metrics"
	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

// EmergencyNotifier raises the emergency alert of a driver.
type EmergencyNotifier interface {
	Emergency(ctx context.Context, driver *domain.User) (*domain.Notification, error)
}

type NotificationHandler struct {
	notifier EmergencyNotifier
}

func NewNotificationHandler(notifier EmergencyNotifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// Emergency sends the signed-in driver's emergency alert. Repeated presses
// within the dedup window are answered with 409.
//
// @Summary      Emergency alert
// @Tags         notifications
// @Produce      json
// @Success      202  {object}  domain.Notification
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/notifications/emergency [post]
func (h *NotificationHandler) Emergency(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	n, err := h.notifier.Emergency(c.Request().Context(), user)
	if errors.Is(err, domain.ErrDuplicateNotice) {
		metrics.NotificationsTotal.WithLabelValues("duplicate").Inc()
		return err
	}
	if err != nil {
		return err
	}
	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	return c.JSON(http.StatusAccepted, n)
}
