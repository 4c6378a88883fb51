package repositories

import (
	"context"

	"DoctorPortal/backend"
	"DoctorPortal/models"
)

// AppointmentRepository reads the doctor's appointments from the backend.
// Appointments are read-only display data and are re-fetched per screen load.
type AppointmentRepository struct {
	backend *backend.Client
}

func NewAppointmentRepository(backend *backend.Client) *AppointmentRepository {
	return &AppointmentRepository{backend: backend}
}

// List returns this doctor's appointments.
func (r *AppointmentRepository) List(ctx context.Context, sess *models.Session) ([]models.Appointment, error) {
	return r.backend.Appointments(ctx, sess)
}
