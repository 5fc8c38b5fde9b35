package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bullyguard/bullyguard/internal/core/ports"
)

type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Show handles GET /analytics. The word cloud is regenerated on every call.
func (h *AnalyticsHandler) Show(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	analytics, err := h.service.Render(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "analytics", analyticsView{
		Page:      Page{Title: "Analytics", Authenticated: true},
		Analytics: analytics,
	})
}
