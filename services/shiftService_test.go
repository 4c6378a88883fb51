package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"DoctorPortal/backend"
	"DoctorPortal/models"
	"DoctorPortal/repositories"
	"DoctorPortal/utils"
)

// Friday March 14 2025, 12:00 local.
var shiftReference = time.Date(2025, 3, 14, 12, 0, 0, 0, time.Local)

func TestInstantForWeekdayTime(t *testing.T) {
	cases := []struct {
		weekday string
		clock   string
		wantDay int
	}{
		{"fri", "09:00", 14}, // today resolves to today, even in the past
		{"sat", "10:30", 15},
		{"mon", "08:00", 17},
		{"thu", "23:00", 20},
	}
	for _, tc := range cases {
		t.Run(tc.weekday, func(t *testing.T) {
			instant, err := InstantForWeekdayTime(shiftReference, tc.weekday, tc.clock)
			if err != nil {
				t.Fatalf("InstantForWeekdayTime: %v", err)
			}
			if instant.Day() != tc.wantDay {
				t.Errorf("day = %d, want %d", instant.Day(), tc.wantDay)
			}
			wantClock, _ := time.Parse("15:04", tc.clock)
			if instant.Hour() != wantClock.Hour() || instant.Minute() != wantClock.Minute() {
				t.Errorf("clock = %02d:%02d, want %s", instant.Hour(), instant.Minute(), tc.clock)
			}
		})
	}
}

func TestInstantForWeekdayTimeRejectsBadInput(t *testing.T) {
	if _, err := InstantForWeekdayTime(shiftReference, "someday", "09:00"); err == nil {
		t.Error("unknown weekday accepted")
	}
	if _, err := InstantForWeekdayTime(shiftReference, "mon", "morning"); err == nil {
		t.Error("unparseable clock accepted")
	}
}

func TestDisplayClock(t *testing.T) {
	cases := []struct {
		stored string
		want   string
	}{
		{"2025-03-17T08:00:00Z", "08:00"},
		{"08:00", "08:00"},
		{"02:00Z00:00", "02:00"},
		{"???", "???"},
	}
	for _, tc := range cases {
		if got := DisplayClock(tc.stored); got != tc.want {
			t.Errorf("DisplayClock(%q) = %q, want %q", tc.stored, got, tc.want)
		}
	}
}

func TestShiftCreateEndBeforeStart(t *testing.T) {
	service := NewShiftService(repositories.NewShiftRepository(backend.NewClient("http://127.0.0.1:0")))
	service.now = func() time.Time { return shiftReference }

	sess := &models.Session{SessionID: "s1"}
	_, err := service.Create(context.Background(), sess, "mon", "17:00", "09:00", 30)
	if !errors.Is(err, utils.ErrShiftEndBeforeStart) {
		t.Errorf("got %v, want ErrShiftEndBeforeStart", err)
	}

	_, err = service.Create(context.Background(), sess, "mon", "09:00", "09:00", 30)
	if !errors.Is(err, utils.ErrShiftEndBeforeStart) {
		t.Errorf("equal times: got %v, want ErrShiftEndBeforeStart", err)
	}
}

func TestShiftCreateSendsResolvedInstants(t *testing.T) {
	var captured models.CreateShiftRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(models.DoctorShift{ShiftID: "sh1", Weekday: captured.Weekday})
	}))
	defer server.Close()

	service := NewShiftService(repositories.NewShiftRepository(backend.NewClient(server.URL)))
	service.now = func() time.Time { return shiftReference }

	shift, err := service.Create(context.Background(), &models.Session{SessionID: "s1"}, "Mon", "09:00", "17:00", 30)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if shift.ShiftID != "sh1" {
		t.Errorf("shift ID = %q, want sh1", shift.ShiftID)
	}
	if captured.Weekday != "mon" {
		t.Errorf("weekday sent = %q, want mon", captured.Weekday)
	}

	start, err := time.Parse(time.RFC3339, captured.StartTime)
	if err != nil {
		t.Fatalf("start time %q is not RFC3339: %v", captured.StartTime, err)
	}
	if start.Weekday() != time.Monday || start.Hour() != 9 {
		t.Errorf("start resolved to %v, want Monday 09:00", start)
	}
	end, err := time.Parse(time.RFC3339, captured.EndTime)
	if err != nil {
		t.Fatalf("end time %q is not RFC3339: %v", captured.EndTime, err)
	}
	if !end.After(start) {
		t.Errorf("end %v not after start %v", end, start)
	}
}

func TestScheduleOrdersAndAvailability(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.DoctorShift{
			{ShiftID: "sh2", Weekday: "wed", StartTime: "2025-03-19T13:00:00Z", EndTime: "2025-03-19T17:00:00Z", DurationMin: 30},
			{ShiftID: "sh1", Weekday: "mon", StartTime: "2025-03-17T08:00:00Z", EndTime: "2025-03-17T12:00:00Z", DurationMin: 30},
		})
	}))
	defer server.Close()

	service := NewShiftService(repositories.NewShiftRepository(backend.NewClient(server.URL)))
	schedule, err := service.Schedule(context.Background(), &models.Session{SessionID: "s1"})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if len(schedule.Shifts) != 2 {
		t.Fatalf("got %d shifts, want 2", len(schedule.Shifts))
	}
	if schedule.Shifts[0].Weekday != "mon" || schedule.Shifts[1].Weekday != "wed" {
		t.Errorf("shift order = %s, %s; want mon, wed", schedule.Shifts[0].Weekday, schedule.Shifts[1].Weekday)
	}
	if schedule.Shifts[0].StartTime != "08:00" {
		t.Errorf("display start = %q, want 08:00", schedule.Shifts[0].StartTime)
	}

	want := []string{"tue", "thu", "fri", "sat", "sun"}
	if len(schedule.AvailableWeekdays) != len(want) {
		t.Fatalf("available = %v, want %v", schedule.AvailableWeekdays, want)
	}
	for i, day := range want {
		if schedule.AvailableWeekdays[i] != day {
			t.Errorf("available[%d] = %s, want %s", i, schedule.AvailableWeekdays[i], day)
		}
	}
}
