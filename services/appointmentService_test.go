package services

import (
	"testing"

	"DoctorPortal/models"
	"DoctorPortal/utils"
)

func sampleAppointments() []models.Appointment {
	return []models.Appointment{
		{AppointmentID: "a1", PatientID: "p1", PatientFirstName: "Somchai", PatientLastName: "Jaidee", StartTime: "2025-03-15T14:00:00", EndTime: "2025-03-15T14:30:00"},
		{AppointmentID: "a2", PatientID: "p2", PatientFirstName: "Malee", PatientLastName: "Sukjai", StartTime: "2025-03-14T10:00:00", EndTime: "2025-03-14T10:30:00"},
		{AppointmentID: "a3", PatientID: "p3", PatientFirstName: "Anan", PatientLastName: "Thong", StartTime: "2025-03-14T08:00:00", EndTime: "2025-03-14T08:30:00"},
		{AppointmentID: "a4", PatientID: "p4", PatientFirstName: "Nok", PatientLastName: "Chai", StartTime: "garbled", EndTime: ""},
	}
}

func TestGroupAppointmentsTwoDays(t *testing.T) {
	groups := GroupAppointments(sampleAppointments(), SortEarliestFirst, utils.DateParser{})

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].DateKey != "2025-03-14" || groups[1].DateKey != "2025-03-15" {
		t.Errorf("group order = %s, %s; want 2025-03-14, 2025-03-15", groups[0].DateKey, groups[1].DateKey)
	}

	// Slots within the first day run earliest first regardless of input order.
	day := groups[0]
	if len(day.Slots) != 2 {
		t.Fatalf("got %d slots on 2025-03-14, want 2", len(day.Slots))
	}
	if day.Slots[0].Appointment.AppointmentID != "a3" || day.Slots[1].Appointment.AppointmentID != "a2" {
		t.Errorf("slot order = %s, %s; want a3, a2",
			day.Slots[0].Appointment.AppointmentID, day.Slots[1].Appointment.AppointmentID)
	}
}

func TestGroupAppointmentsLatestFirst(t *testing.T) {
	groups := GroupAppointments(sampleAppointments(), SortLatestFirst, utils.DateParser{})

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].DateKey != "2025-03-15" {
		t.Errorf("first group = %s, want 2025-03-15", groups[0].DateKey)
	}
}

func TestGroupAppointmentsDropsUnderivableDays(t *testing.T) {
	groups := GroupAppointments(sampleAppointments(), SortEarliestFirst, utils.DateParser{})

	for _, group := range groups {
		for _, slot := range group.Slots {
			if slot.Appointment.AppointmentID == "a4" {
				t.Error("appointment with underivable day was grouped")
			}
		}
	}
}

func TestGroupAppointmentsEveryAppointmentInOneGroup(t *testing.T) {
	groups := GroupAppointments(sampleAppointments(), SortEarliestFirst, utils.DateParser{})

	seen := make(map[string]int)
	for _, group := range groups {
		for _, slot := range group.Slots {
			seen[slot.Appointment.AppointmentID]++
		}
	}
	for _, id := range []string{"a1", "a2", "a3"} {
		if seen[id] != 1 {
			t.Errorf("appointment %s appears %d times, want 1", id, seen[id])
		}
	}
}

func TestFilterAppointmentsByName(t *testing.T) {
	appointments := sampleAppointments()

	matched := FilterAppointments(appointments, "malee")
	if len(matched) != 1 || matched[0].AppointmentID != "a2" {
		t.Errorf("filter by first name matched %d, want a2 only", len(matched))
	}

	matched = FilterAppointments(appointments, "  Thong ")
	if len(matched) != 1 || matched[0].AppointmentID != "a3" {
		t.Errorf("filter by last name matched %d, want a3 only", len(matched))
	}

	if got := FilterAppointments(appointments, ""); len(got) != len(appointments) {
		t.Errorf("blank filter dropped appointments: %d of %d", len(got), len(appointments))
	}
}
