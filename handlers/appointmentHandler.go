package handlers

import (
	"DoctorPortal/middlewares"
	"DoctorPortal/services"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	AppointmentService *services.AppointmentService
}

func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{AppointmentService: appointmentService}
}

// List returns the doctor's appointments grouped by day. Accepts a patient
// name filter and a sort direction ("earliest" or "latest").
func (h *AppointmentHandler) List(c *gin.Context) {
	sess := middlewares.SessionFromContext(c)
	search := c.DefaultQuery("search", "")
	direction := c.DefaultQuery("sort", services.SortEarliestFirst)

	groups, total, err := h.AppointmentService.Grouped(c.Request.Context(), sess, search, direction)
	if err != nil {
		middlewares.BackendError(c, err, "Failed to load appointments")
		return
	}
	c.JSON(200, gin.H{"groups": groups, "total": total})
}

// PatientDetails resolves patient profiles for the detail panels.
func (h *AppointmentHandler) PatientDetails(c *gin.Context) {
	var request struct {
		PatientIDs []string `json:"patient_ids"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	if len(request.PatientIDs) == 0 {
		c.JSON(400, gin.H{"error": "patient_ids is required"})
		return
	}

	sess := middlewares.SessionFromContext(c)
	profiles, err := h.AppointmentService.Profiles(c.Request.Context(), sess, request.PatientIDs)
	if err != nil {
		middlewares.BackendError(c, err, "Failed to load patient details")
		return
	}
	c.JSON(200, gin.H{"patients": profiles})
}
