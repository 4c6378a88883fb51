package handlers

import (
	"errors"

	"DoctorPortal/middlewares"
	"DoctorPortal/services"
	"DoctorPortal/utils"

	"github.com/gin-gonic/gin"
)

type ShiftHandler struct {
	ShiftService *services.ShiftService
}

func NewShiftHandler(shiftService *services.ShiftService) *ShiftHandler {
	return &ShiftHandler{ShiftService: shiftService}
}

// List returns the weekly schedule with the weekdays still available.
func (h *ShiftHandler) List(c *gin.Context) {
	sess := middlewares.SessionFromContext(c)
	schedule, err := h.ShiftService.Schedule(c.Request.Context(), sess)
	if err != nil {
		middlewares.BackendError(c, err, "Failed to load shifts")
		return
	}
	c.JSON(200, schedule)
}

// Create validates the shift form and registers the shift.
func (h *ShiftHandler) Create(c *gin.Context) {
	var request struct {
		Weekday     string `json:"weekday"`
		StartTime   string `json:"start_time"`
		EndTime     string `json:"end_time"`
		DurationMin int    `json:"duration_min"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	sess := middlewares.SessionFromContext(c)
	shift, err := h.ShiftService.Create(c.Request.Context(), sess, request.Weekday, request.StartTime, request.EndTime, request.DurationMin)
	if err != nil {
		if isShiftFormError(err) {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		middlewares.BackendError(c, err, "Failed to create the shift")
		return
	}
	c.JSON(201, gin.H{"shift": shift})
}

// Delete removes a shift.
func (h *ShiftHandler) Delete(c *gin.Context) {
	sess := middlewares.SessionFromContext(c)
	if err := h.ShiftService.Delete(c.Request.Context(), sess, c.Param("shift_id")); err != nil {
		middlewares.BackendError(c, err, "Failed to delete the shift")
		return
	}
	c.JSON(200, gin.H{"message": "Shift deleted"})
}

func isShiftFormError(err error) bool {
	return errors.Is(err, utils.ErrShiftFieldsMissing) ||
		errors.Is(err, utils.ErrShiftDurationInvalid) ||
		errors.Is(err, utils.ErrShiftEndBeforeStart)
}
