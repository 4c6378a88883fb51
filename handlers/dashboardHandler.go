package handlers

import (
	"DoctorPortal/middlewares"
	"DoctorPortal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	DashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{DashboardService: dashboardService}
}

// Overview returns the landing page counters and the next appointments.
func (h *DashboardHandler) Overview(c *gin.Context) {
	sess := middlewares.SessionFromContext(c)
	overview, err := h.DashboardService.Overview(c.Request.Context(), sess)
	if err != nil {
		middlewares.BackendError(c, err, "Failed to load the dashboard")
		return
	}
	c.JSON(200, overview)
}
