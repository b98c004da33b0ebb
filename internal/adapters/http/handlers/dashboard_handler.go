package handlers

import (
	"koperasi-adminhub/internal/core/services"
	"koperasi-adminhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles summary and activity endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary returns headline figures for the admin dashboard
// @Summary Get dashboard summary
// @Description Get member counts by status, pending death claims, and outstanding balances
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.dashboardService.GetSummary(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve dashboard summary")
	}
	return response.Success(c, "Dashboard summary retrieved successfully", summary)
}

// RecentActivity returns the latest audit entries across all entities
// @Summary Get recent activity
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries (default 20, max 100)"
// @Success 200 {object} response.Envelope
// @Router /dashboard/activity [get]
func (h *DashboardHandler) RecentActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	entries, err := h.dashboardService.RecentActivity(c.Context(), limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve recent activity")
	}
	return response.Success(c, "Recent activity retrieved successfully", entries)
}
