package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"DoctorPortal/models"
	"DoctorPortal/repositories"
	"DoctorPortal/utils"
)

// Sort directions accepted by the appointment screen.
const (
	SortEarliestFirst = "earliest"
	SortLatestFirst   = "latest"
)

// Slot is one appointment inside a day group, with its parsed bounds.
type Slot struct {
	Appointment models.Appointment `json:"appointment"`
	TimeRange   string             `json:"time_range"`

	start time.Time
	ok    bool
}

// DayGroup is one calendar day of appointments.
type DayGroup struct {
	DateKey     string `json:"date_key"`
	DisplayDate string `json:"display_date"`
	Slots       []Slot `json:"slots"`

	date time.Time
}

// AppointmentService turns the flat backend appointment list into the
// grouped, filtered, ordered view the screen renders.
type AppointmentService struct {
	repository *repositories.AppointmentRepository
	patients   *repositories.PatientRepository
	parser     utils.DateParser
}

func NewAppointmentService(repository *repositories.AppointmentRepository, patients *repositories.PatientRepository, parser utils.DateParser) *AppointmentService {
	return &AppointmentService{repository: repository, patients: patients, parser: parser}
}

// Grouped fetches this doctor's appointments and returns day groups for the
// given name filter and sort direction, along with the filtered total.
func (s *AppointmentService) Grouped(ctx context.Context, sess *models.Session, search, direction string) ([]DayGroup, int, error) {
	appointments, err := s.repository.List(ctx, sess)
	if err != nil {
		return nil, 0, err
	}

	filtered := FilterAppointments(appointments, search)
	return GroupAppointments(filtered, direction, s.parser), len(filtered), nil
}

// Profiles resolves patient profiles for the detail panels.
func (s *AppointmentService) Profiles(ctx context.Context, sess *models.Session, patientIDs []string) ([]models.PatientProfile, error) {
	return s.patients.Profiles(ctx, sess, patientIDs)
}

// FilterAppointments keeps appointments whose concatenated patient name
// contains the term, case-insensitively. A blank term keeps everything.
func FilterAppointments(appointments []models.Appointment, search string) []models.Appointment {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return appointments
	}

	var matched []models.Appointment
	for _, appointment := range appointments {
		if strings.Contains(strings.ToLower(appointment.PatientName()), term) {
			matched = append(matched, appointment)
		}
	}
	return matched
}

// GroupAppointments partitions appointments into day groups. Every
// appointment with a derivable day key lands in exactly one group; slots
// within a group are ordered by parsed start ascending (unparseable starts
// stay where they are), and groups are ordered by representative date in the
// requested direction. Appointments whose day cannot be derived at all are
// dropped.
func GroupAppointments(appointments []models.Appointment, direction string, parser utils.DateParser) []DayGroup {
	groups := make(map[string]*DayGroup)
	var order []string

	for _, appointment := range appointments {
		start, startOK := parser.Parse(appointment.StartTime)
		end, endOK := parser.Parse(appointment.EndTime)

		dateKey, ok := parser.DayKey(appointment.StartTime)
		if !ok {
			continue
		}

		groupDate := start
		if !startOK {
			midnight, ok := parser.Parse(dateKey + "T00:00")
			if !ok {
				continue
			}
			groupDate = midnight
		}

		slot := Slot{
			Appointment: appointment,
			TimeRange:   formatTimeRange(start, startOK, end, endOK),
			start:       start,
			ok:          startOK,
		}

		if group, exists := groups[dateKey]; exists {
			group.Slots = append(group.Slots, slot)
			continue
		}
		groups[dateKey] = &DayGroup{
			DateKey:     dateKey,
			DisplayDate: groupDate.Format("Monday, Jan 2, 2006"),
			Slots:       []Slot{slot},
			date:        groupDate,
		}
		order = append(order, dateKey)
	}

	organised := make([]DayGroup, 0, len(order))
	for _, key := range order {
		group := groups[key]
		sort.SliceStable(group.Slots, func(i, j int) bool {
			if !group.Slots[i].ok || !group.Slots[j].ok {
				return false
			}
			return group.Slots[i].start.Before(group.Slots[j].start)
		})
		organised = append(organised, *group)
	}

	sort.SliceStable(organised, func(i, j int) bool {
		if direction == SortLatestFirst {
			return organised[i].date.After(organised[j].date)
		}
		return organised[i].date.Before(organised[j].date)
	})
	return organised
}

func formatTimeRange(start time.Time, startOK bool, end time.Time, endOK bool) string {
	switch {
	case startOK && endOK:
		return start.Format("03:04 PM") + " - " + end.Format("03:04 PM")
	case startOK:
		return start.Format("03:04 PM")
	}
	return "Time not available"
}
