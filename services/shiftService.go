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

// ShiftView is one availability window as the schedule screen renders it.
type ShiftView struct {
	ShiftID     string `json:"shift_id"`
	Weekday     string `json:"weekday"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	DurationMin int    `json:"duration_min"`
}

// ShiftSchedule is the full schedule response: current shifts plus the
// weekdays still open for a new one.
type ShiftSchedule struct {
	Shifts            []ShiftView `json:"shifts"`
	AvailableWeekdays []string    `json:"available_weekdays"`
}

// ShiftService manages the doctor's recurring weekly availability.
type ShiftService struct {
	repository *repositories.ShiftRepository
	now        func() time.Time
}

func NewShiftService(repository *repositories.ShiftRepository) *ShiftService {
	return &ShiftService{repository: repository, now: time.Now}
}

// Schedule lists the doctor's shifts ordered Monday through Sunday, then by
// start time within a day.
func (s *ShiftService) Schedule(ctx context.Context, sess *models.Session) (*ShiftSchedule, error) {
	shifts, err := s.repository.List(ctx, sess)
	if err != nil {
		return nil, err
	}

	views := make([]ShiftView, 0, len(shifts))
	taken := make(map[string]bool)
	for _, shift := range shifts {
		weekday := strings.ToLower(shift.Weekday)
		taken[weekday] = true
		views = append(views, ShiftView{
			ShiftID:     shift.ShiftID,
			Weekday:     weekday,
			StartTime:   DisplayClock(shift.StartTime),
			EndTime:     DisplayClock(shift.EndTime),
			DurationMin: shift.DurationMin,
		})
	}
	sort.SliceStable(views, func(i, j int) bool {
		wi, wj := weekdayIndex(views[i].Weekday), weekdayIndex(views[j].Weekday)
		if wi != wj {
			return wi < wj
		}
		return views[i].StartTime < views[j].StartTime
	})

	available := make([]string, 0, len(utils.Weekdays))
	for _, weekday := range utils.Weekdays {
		if !taken[weekday] {
			available = append(available, weekday)
		}
	}
	return &ShiftSchedule{Shifts: views, AvailableWeekdays: available}, nil
}

// Create validates the shift form and registers the shift on the backend.
// Start and end arrive as wall-clock HH:MM strings for the chosen weekday.
func (s *ShiftService) Create(ctx context.Context, sess *models.Session, weekday, startTime, endTime string, durationMin int) (*models.DoctorShift, error) {
	weekday = strings.ToLower(strings.TrimSpace(weekday))
	if err := utils.ValidateShiftForm(weekday, startTime, endTime, durationMin); err != nil {
		return nil, err
	}

	now := s.now()
	start, err := InstantForWeekdayTime(now, weekday, startTime)
	if err != nil {
		return nil, err
	}
	end, err := InstantForWeekdayTime(now, weekday, endTime)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, utils.ErrShiftEndBeforeStart
	}

	return s.repository.Create(ctx, sess, models.CreateShiftRequest{
		Weekday:     weekday,
		StartTime:   start.Format(time.RFC3339),
		EndTime:     end.Format(time.RFC3339),
		DurationMin: durationMin,
	})
}

// Delete removes a shift by identifier.
func (s *ShiftService) Delete(ctx context.Context, sess *models.Session, shiftID string) error {
	return s.repository.Delete(ctx, sess, shiftID)
}

// InstantForWeekdayTime resolves a weekday name plus wall-clock time to the
// next occurrence of that moment, counted from midnight of the reference
// day. Today's weekday resolves to today.
func InstantForWeekdayTime(reference time.Time, weekday, clock string) (time.Time, error) {
	target := weekdayIndex(weekday)
	if target < 0 {
		return time.Time{}, utils.ErrShiftFieldsMissing
	}
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, utils.ErrShiftFieldsMissing
	}

	midnight := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, reference.Location())
	current := (int(reference.Weekday()) + 6) % 7
	offset := (target - current + 7) % 7
	day := midnight.AddDate(0, 0, offset)
	return day.Add(time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute), nil
}

// DisplayClock extracts the HH:MM portion of a stored shift time. Values
// already in wall-clock form pass through unchanged.
func DisplayClock(stored string) string {
	if t, err := time.Parse(time.RFC3339, stored); err == nil {
		return t.Format("15:04")
	}
	if len(stored) >= 5 && stored[2] == ':' {
		return stored[:5]
	}
	return stored
}

func weekdayIndex(weekday string) int {
	for i, name := range utils.Weekdays {
		if name == weekday {
			return i
		}
	}
	return -1
}
