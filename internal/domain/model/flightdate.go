package model

import (
	"strings"
	"time"
)

// LocalDateTimeLayout is the value format of an HTML datetime-local input.
const LocalDateTimeLayout = "2006-01-02T15:04"

const (
	localSecondsLayout  = "2006-01-02T15:04:05"
	localFractionLayout = "2006-01-02T15:04:05.999999999"
)

// ToLocalEditable renders an absolute instant as a datetime-local value in loc.
// Seconds and fractions are written only when present, so ToAbsolute gets the
// same instant back.
func ToLocalEditable(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	local := t.In(loc)
	switch {
	case local.Nanosecond() != 0:
		return local.Format(localFractionLayout)
	case local.Second() != 0:
		return local.Format(localSecondsLayout)
	default:
		return local.Format(LocalDateTimeLayout)
	}
}

// ToAbsolute interprets a datetime-local value in loc and returns the UTC instant.
// Values may carry seconds and a fraction.
func ToAbsolute(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	t, err := time.ParseInLocation(LocalDateTimeLayout, value, loc)
	if err != nil {
		t, err = time.ParseInLocation(localSecondsLayout, value, loc)
	}
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
