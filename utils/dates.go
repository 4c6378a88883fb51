package utils

import (
	"regexp"
	"strings"
	"time"
)

// DateParser normalises the loosely formatted timestamps the backend emits.
// Values may omit the timezone suffix, use a space instead of the "T"
// separator, or carry a malformed offset. Shift is added to every parsed
// instant; it compensates for a backend deployed in a different timezone
// than the one the portal displays and is configured, never hardcoded.
type DateParser struct {
	Shift time.Duration
}

var (
	tzSuffixPattern = regexp.MustCompile(`(?i)([+-]\d{2}:?\d{2}|Z)$`)
	dayKeyPattern   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)
)

// Layouts without a timezone suffix, interpreted as local wall-clock time.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Layouts carrying an explicit offset, tried against the raw value.
var offsetLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04Z07:00",
}

// Parse reports the calendar instant for a raw timestamp string, or false
// when no accepted layout matches. It never panics; callers render a
// fallback label for unparseable values instead of failing the screen.
//
// Candidates are tried in order: first the value with any trailing offset
// or "Z" stripped and the separator normalised, then the raw value with
// only the separator normalised.
func (p DateParser) Parse(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}

	normalised := strings.Replace(trimmed, " ", "T", 1)
	stripped := tzSuffixPattern.ReplaceAllString(normalised, "")

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, stripped, time.Local); err == nil {
			return t.Add(p.Shift), true
		}
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, normalised); err == nil {
			return t.Add(p.Shift), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, normalised, time.Local); err == nil {
			return t.Add(p.Shift), true
		}
	}

	return time.Time{}, false
}

// DayKey derives the calendar-day bucket for a timestamp string. The first
// ten characters win when they already look like YYYY-MM-DD; otherwise the
// parsed instant's date is used. False means the day cannot be derived and
// the value belongs to no group.
func (p DateParser) DayKey(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if m := dayKeyPattern.FindStringSubmatch(trimmed); m != nil {
		return m[1], true
	}
	if t, ok := p.Parse(trimmed); ok {
		return t.Format("2006-01-02"), true
	}
	return "", false
}
