package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

type AlertHandler struct{}

func NewAlertHandler() *AlertHandler {
	return &AlertHandler{}
}

type priorityResponse struct {
	Counts   domain.AlertCounts `json:"counts"`
	Total    int                `json:"total"`
	Priority domain.Priority    `json:"priority"`
}

// Priority reduces alert counts to the badge signal. Absent categories count
// as zero and negative counts are clamped.
//
// @Summary      Alert priority
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Param        body  body      domain.AlertCounts  true  "Alert counts"
// @Success      200   {object}  priorityResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/alerts/priority [post]
func (h *AlertHandler) Priority(c echo.Context) error {
	var counts domain.AlertCounts
	if err := c.Bind(&counts); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	counts = counts.Normalize()
	return c.JSON(http.StatusOK, priorityResponse{
		Counts:   counts,
		Total:    counts.Total(),
		Priority: domain.PriorityOf(counts),
	})
}
