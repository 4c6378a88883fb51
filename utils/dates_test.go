package utils

import (
	"testing"
	"time"
)

func TestParseAcceptsBackendVariants(t *testing.T) {
	parser := DateParser{}

	cases := []struct {
		name string
		raw  string
	}{
		{"rfc3339", "2025-03-14T09:30:00Z"},
		{"offset", "2025-03-14T09:30:00+07:00"},
		{"compact offset", "2025-03-14T09:30:00+0700"},
		{"no timezone", "2025-03-14T09:30:00"},
		{"no seconds", "2025-03-14T09:30"},
		{"space separator", "2025-03-14 09:30:00"},
		{"fractional seconds", "2025-03-14T09:30:00.123456Z"},
		{"date only", "2025-03-14"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, ok := parser.Parse(tc.raw)
			if !ok {
				t.Fatalf("Parse(%q) failed", tc.raw)
			}
			if parsed.Year() != 2025 || parsed.Month() != time.March || parsed.Day() != 14 {
				t.Errorf("Parse(%q) = %v, wrong date", tc.raw, parsed)
			}
		})
	}
}

func TestParseStripsSuffixBeforeOffsetInterpretation(t *testing.T) {
	// A value with a "Z" suffix reads as local wall-clock time: the suffix
	// is stripped before the offset layouts are consulted.
	parser := DateParser{}
	parsed, ok := parser.Parse("2025-03-14T09:30:00Z")
	if !ok {
		t.Fatal("Parse failed")
	}
	if parsed.Hour() != 9 || parsed.Minute() != 30 {
		t.Errorf("got %02d:%02d, want 09:30 local", parsed.Hour(), parsed.Minute())
	}
	if parsed.Location() != time.Local {
		t.Errorf("got location %v, want local", parsed.Location())
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	parser := DateParser{}
	for _, raw := range []string{"", "   ", "not-a-date", "14/03/2025", "2025-13-99T99:99"} {
		if _, ok := parser.Parse(raw); ok {
			t.Errorf("Parse(%q) succeeded, want failure", raw)
		}
	}
}

func TestParseAppliesShift(t *testing.T) {
	plain := DateParser{}
	shifted := DateParser{Shift: -7 * time.Hour}

	base, ok := plain.Parse("2025-03-14T09:30:00")
	if !ok {
		t.Fatal("Parse failed")
	}
	moved, ok := shifted.Parse("2025-03-14T09:30:00")
	if !ok {
		t.Fatal("Parse with shift failed")
	}
	if diff := base.Sub(moved); diff != 7*time.Hour {
		t.Errorf("shift applied %v, want 7h earlier", diff)
	}
}

func TestDayKeyPrefersLiteralPrefix(t *testing.T) {
	parser := DateParser{Shift: 12 * time.Hour}

	// The literal date prefix wins even when the shift would move the
	// parsed instant into the next day.
	key, ok := parser.DayKey("2025-03-14T20:00:00")
	if !ok || key != "2025-03-14" {
		t.Errorf("DayKey = %q, %v; want 2025-03-14, true", key, ok)
	}
}

func TestDayKeyUnderivable(t *testing.T) {
	parser := DateParser{}
	if key, ok := parser.DayKey("soon"); ok {
		t.Errorf("DayKey(%q) = %q, want failure", "soon", key)
	}
}
