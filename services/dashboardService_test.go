package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"DoctorPortal/backend"
	"DoctorPortal/models"
	"DoctorPortal/repositories"
	"DoctorPortal/utils"
)

func TestDashboardOverview(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.Local)
	stamp := func(d time.Duration) string {
		return now.Add(d).Format("2006-01-02T15:04:05")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/appointment/v1/doctor", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Appointment{
			{AppointmentID: "a1", PatientID: "p1", PatientFirstName: "Somchai", StartTime: stamp(2 * time.Hour), EndTime: stamp(3 * time.Hour)},
			{AppointmentID: "a2", PatientID: "p2", PatientFirstName: "Malee", StartTime: stamp(time.Hour), EndTime: stamp(90 * time.Minute)},
			{AppointmentID: "a3", PatientID: "p1", PatientFirstName: "Somchai", StartTime: stamp(-2 * time.Hour), EndTime: stamp(-time.Hour)},
		})
	})
	mux.HandleFunc("/order/v1/orders/doctor", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.OrderList{Orders: []models.Order{
			{OrderID: "o1", PatientID: "p3", Status: "pending"},
		}, Total: 1})
	})
	mux.HandleFunc("/order/v1/orders/doctor/history", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.OrderList{Orders: []models.Order{
			{OrderID: "o2", PatientID: "p1", Status: "approved"},
			{OrderID: "o3", PatientID: "p4", Status: "rejected"},
		}, Total: 2})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := backend.NewClient(server.URL)
	service := NewDashboardService(
		repositories.NewAppointmentRepository(client),
		repositories.NewOrderRepository(client),
		utils.DateParser{},
	)
	service.now = func() time.Time { return now }

	overview, err := service.Overview(context.Background(), &models.Session{SessionID: "s1", DoctorName: "Dr. Somchai"})
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	if overview.DoctorName != "Dr. Somchai" {
		t.Errorf("doctor name = %q", overview.DoctorName)
	}
	if overview.Stats.UpcomingAppointments != 2 {
		t.Errorf("upcoming = %d, want 2", overview.Stats.UpcomingAppointments)
	}
	if overview.Stats.PendingOrders != 1 {
		t.Errorf("pending = %d, want 1", overview.Stats.PendingOrders)
	}
	if overview.Stats.ApprovedOrders != 1 {
		t.Errorf("approved = %d, want 1", overview.Stats.ApprovedOrders)
	}
	// p1, p2, p3, p4
	if overview.Stats.DistinctPatients != 4 {
		t.Errorf("distinct patients = %d, want 4", overview.Stats.DistinctPatients)
	}

	if len(overview.Upcoming) != 2 {
		t.Fatalf("upcoming list = %d entries, want 2", len(overview.Upcoming))
	}
	if overview.Upcoming[0].AppointmentID != "a2" {
		t.Errorf("first upcoming = %s, want the sooner a2", overview.Upcoming[0].AppointmentID)
	}
}
