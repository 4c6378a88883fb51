package repositories

import (
	"context"

	"DoctorPortal/backend"
	"DoctorPortal/models"
)

// ShiftRepository manages the doctor's weekly availability windows on the
// backend.
type ShiftRepository struct {
	backend *backend.Client
}

func NewShiftRepository(backend *backend.Client) *ShiftRepository {
	return &ShiftRepository{backend: backend}
}

// List returns the doctor's active shifts.
func (r *ShiftRepository) List(ctx context.Context, sess *models.Session) ([]models.DoctorShift, error) {
	return r.backend.Shifts(ctx, sess)
}

// Create registers a new shift.
func (r *ShiftRepository) Create(ctx context.Context, sess *models.Session, req models.CreateShiftRequest) (*models.DoctorShift, error) {
	return r.backend.CreateShift(ctx, sess, req)
}

// Delete removes a shift by identifier.
func (r *ShiftRepository) Delete(ctx context.Context, sess *models.Session, shiftID string) error {
	return r.backend.DeleteShift(ctx, sess, shiftID)
}
