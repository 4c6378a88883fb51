package services

import (
	"context"
	"sort"
	"time"

	"DoctorPortal/models"
	"DoctorPortal/repositories"
	"DoctorPortal/utils"
)

// UpcomingAppointment is one entry on the dashboard's short list.
type UpcomingAppointment struct {
	AppointmentID string `json:"appointment_id"`
	PatientName   string `json:"patient_name"`
	StartsAt      string `json:"starts_at"`
	TimeRange     string `json:"time_range"`
}

// DashboardStats are the headline counters on the landing page.
type DashboardStats struct {
	UpcomingAppointments int `json:"upcoming_appointments"`
	PendingOrders        int `json:"pending_orders"`
	ApprovedOrders       int `json:"approved_orders"`
	DistinctPatients     int `json:"distinct_patients"`
}

// DashboardOverview is the landing page payload.
type DashboardOverview struct {
	DoctorName string                `json:"doctor_name"`
	Stats      DashboardStats        `json:"stats"`
	Upcoming   []UpcomingAppointment `json:"upcoming"`
}

// DashboardService assembles the landing page from the appointment and order
// backends.
type DashboardService struct {
	appointments *repositories.AppointmentRepository
	orders       *repositories.OrderRepository
	parser       utils.DateParser
	now          func() time.Time
}

func NewDashboardService(appointments *repositories.AppointmentRepository, orders *repositories.OrderRepository, parser utils.DateParser) *DashboardService {
	return &DashboardService{
		appointments: appointments,
		orders:       orders,
		parser:       parser,
		now:          time.Now,
	}
}

// Overview fetches appointments, pending orders and order history, and
// reduces them to the dashboard counters plus the next five appointments.
func (s *DashboardService) Overview(ctx context.Context, sess *models.Session) (*DashboardOverview, error) {
	appointments, err := s.appointments.List(ctx, sess)
	if err != nil {
		return nil, err
	}
	pending, err := s.orders.Pending(ctx, sess)
	if err != nil {
		return nil, err
	}
	history, err := s.orders.History(ctx, sess)
	if err != nil {
		return nil, err
	}

	now := s.now()

	type upcomingEntry struct {
		appointment models.Appointment
		start       time.Time
		end         time.Time
		endOK       bool
	}
	var future []upcomingEntry
	for _, appointment := range appointments {
		start, ok := s.parser.Parse(appointment.StartTime)
		if !ok || start.Before(now) {
			continue
		}
		end, endOK := s.parser.Parse(appointment.EndTime)
		future = append(future, upcomingEntry{appointment: appointment, start: start, end: end, endOK: endOK})
	}
	sort.SliceStable(future, func(i, j int) bool {
		return future[i].start.Before(future[j].start)
	})

	upcoming := make([]UpcomingAppointment, 0, 5)
	for _, entry := range future {
		if len(upcoming) == 5 {
			break
		}
		upcoming = append(upcoming, UpcomingAppointment{
			AppointmentID: entry.appointment.AppointmentID,
			PatientName:   entry.appointment.PatientName(),
			StartsAt:      entry.start.Format("Mon, Jan 2 15:04"),
			TimeRange:     formatTimeRange(entry.start, true, entry.end, entry.endOK),
		})
	}

	pendingCount := 0
	for _, order := range pending {
		if order.Status == "pending" {
			pendingCount++
		}
	}
	approvedCount := 0
	for _, order := range history {
		if order.Status == "approved" {
			approvedCount++
		}
	}

	patients := make(map[string]bool)
	for _, appointment := range appointments {
		if appointment.PatientID != "" {
			patients[appointment.PatientID] = true
		}
	}
	for _, order := range pending {
		if order.PatientID != "" {
			patients[order.PatientID] = true
		}
	}
	for _, order := range history {
		if order.PatientID != "" {
			patients[order.PatientID] = true
		}
	}

	return &DashboardOverview{
		DoctorName: sess.DoctorName,
		Stats: DashboardStats{
			UpcomingAppointments: len(future),
			PendingOrders:        pendingCount,
			ApprovedOrders:       approvedCount,
			DistinctPatients:     len(patients),
		},
		Upcoming: upcoming,
	}, nil
}
