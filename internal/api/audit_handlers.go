package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"islandproperties-backend/internal/dashboard"
	"islandproperties-backend/internal/models"
)

// maxSecurityLogLimit caps the ?limit query parameter
const maxSecurityLogLimit = 1000

// listSecurityLogs handles GET /api/admin/security-logs
func (h *Handler) listSecurityLogs(c echo.Context) error {
	limit := models.DefaultSecurityLogLimit

	// Parse query parameters
	if raw := c.QueryParam("limit"); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil || l <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "limit must be a positive integer",
			})
		}
		limit = min(l, maxSecurityLogLimit)
	}

	logs, err := h.store.ListSecurityLogs(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, err, "", "Failed to fetch security logs")
	}
	return c.JSON(http.StatusOK, logs)
}

// dashboardStats handles GET /api/admin/dashboard/stats
func (h *Handler) dashboardStats(c echo.Context) error {
	stats, err := dashboard.Build(c.Request().Context(), h.store)
	if err != nil {
		return respondError(c, err, "", "Failed to fetch dashboard stats")
	}
	return c.JSON(http.StatusOK, stats)
}
