package handlers

import (
	"DoctorPortal/middlewares"
	"DoctorPortal/services"

	"github.com/gin-gonic/gin"
)

type MedicineHandler struct {
	MedicineService *services.MedicineService
}

func NewMedicineHandler(medicineService *services.MedicineService) *MedicineHandler {
	return &MedicineHandler{MedicineService: medicineService}
}

// Options returns the catalog sorted for the medicine picker.
func (h *MedicineHandler) Options(c *gin.Context) {
	sess := middlewares.SessionFromContext(c)
	medicines, err := h.MedicineService.Options(c.Request.Context(), sess)
	if err != nil {
		middlewares.BackendError(c, err, "Failed to load medicines")
		return
	}
	c.JSON(200, gin.H{"medicines": medicines, "total": len(medicines)})
}
