package utils

import (
	"DoctorPortal/models"
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validation errors surfaced directly to the portal user.
var (
	ErrShiftFieldsMissing   = errors.New("Please complete all fields before creating a shift.")
	ErrShiftDurationInvalid = errors.New("Duration must be a positive number of minutes.")
	ErrShiftEndBeforeStart  = errors.New("End time must be later than start time.")
)

// Weekdays in portal order, Monday first.
var Weekdays = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

var wallClockPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// ValidateLoginRequest checks doctor credentials before any backend call.
func ValidateLoginRequest(req models.LoginRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Username, validation.Required.Error("username cannot be blank")),
		validation.Field(&req.Password, validation.Required.Error("password cannot be blank")),
	)
}

// ValidateShiftForm checks a shift creation form. End-after-start is checked
// separately, after the wall-clock times have been resolved to instants.
func ValidateShiftForm(weekday, startTime, endTime string, durationMin int) error {
	if weekday == "" || startTime == "" || endTime == "" {
		return ErrShiftFieldsMissing
	}

	err := validation.Errors{
		"weekday":    validation.Validate(weekday, validation.In(weekdayValues()...)),
		"start_time": validation.Validate(startTime, validation.Match(wallClockPattern)),
		"end_time":   validation.Validate(endTime, validation.Match(wallClockPattern)),
	}.Filter()
	if err != nil {
		return ErrShiftFieldsMissing
	}

	if durationMin <= 0 {
		return ErrShiftDurationInvalid
	}
	return nil
}

func weekdayValues() []interface{} {
	values := make([]interface{}, len(Weekdays))
	for i, day := range Weekdays {
		values[i] = day
	}
	return values
}
