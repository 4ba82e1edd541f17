package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/dashboard-service/internal/services"
	"github.com/mentorhub/dashboard-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
	}
}

// GetStats returns the organization-wide aggregate.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	h.LogRequest(c, "Getting dashboard stats")

	stats, err := h.dashboardService.AdminStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetCoordinatorStats returns the coordinator-scoped aggregate with the
// per-mentor breakdown.
func (h *DashboardHandler) GetCoordinatorStats(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Getting coordinator dashboard", "coordinator_id", id)

	dashboard, err := h.dashboardService.CoordinatorStats(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// GetMentorStats returns the mentor-scoped aggregate with per-student
// progress reports.
func (h *DashboardHandler) GetMentorStats(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Getting mentor dashboard", "mentor_id", id)

	dashboard, err := h.dashboardService.MentorStats(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
