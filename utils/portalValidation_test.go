package utils

import (
	"errors"
	"testing"

	"DoctorPortal/models"
)

func TestValidateLoginRequest(t *testing.T) {
	if err := ValidateLoginRequest(models.LoginRequest{Username: "somchai", Password: "secret"}); err != nil {
		t.Errorf("valid credentials rejected: %v", err)
	}
	if err := ValidateLoginRequest(models.LoginRequest{Password: "secret"}); err == nil {
		t.Error("missing username accepted")
	}
	if err := ValidateLoginRequest(models.LoginRequest{Username: "somchai"}); err == nil {
		t.Error("missing password accepted")
	}
}

func TestValidateShiftForm(t *testing.T) {
	cases := []struct {
		name     string
		weekday  string
		start    string
		end      string
		duration int
		want     error
	}{
		{"valid", "mon", "09:00", "17:00", 30, nil},
		{"missing weekday", "", "09:00", "17:00", 30, ErrShiftFieldsMissing},
		{"missing start", "mon", "", "17:00", 30, ErrShiftFieldsMissing},
		{"missing end", "mon", "09:00", "", 30, ErrShiftFieldsMissing},
		{"bad weekday", "monday", "09:00", "17:00", 30, ErrShiftFieldsMissing},
		{"bad clock", "mon", "9am", "17:00", 30, ErrShiftFieldsMissing},
		{"zero duration", "mon", "09:00", "17:00", 0, ErrShiftDurationInvalid},
		{"negative duration", "mon", "09:00", "17:00", -15, ErrShiftDurationInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateShiftForm(tc.weekday, tc.start, tc.end, tc.duration)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}
