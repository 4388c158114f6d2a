package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskpal/taskpal-api/internal/dto"
	apierrors "github.com/taskpal/taskpal-api/internal/errors"
	"github.com/taskpal/taskpal-api/internal/middleware"
	"github.com/taskpal/taskpal-api/internal/services"
)

// DashboardHandler serves the per-user task statistics endpoint.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Stats returns the dashboard aggregation for the acting user.
func (h *DashboardHandler) Stats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	stats, err := h.dashboardService.GetStats(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardStatsResponse(stats))
}
