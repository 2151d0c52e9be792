package models

import (
	"regexp"
	"time"
)

// DateLayout is the only accepted calendar-date format.
const DateLayout = "2006-01-02"

const secondsPerDay = 86400

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate parses a YYYY-MM-DD string as a UTC calendar date. Values that do
// not survive a parse/format round trip (e.g. 2025-02-30) are rejected.
func ParseDate(value string) (time.Time, bool) {
	if !datePattern.MatchString(value) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil || t.Format(DateLayout) != value {
		return time.Time{}, false
	}
	return t, true
}

// ValidUntil returns the epoch second at which a record with the given
// departure date stops being valid: UTC midnight of the following day.
func ValidUntil(departureDate string) (int64, bool) {
	departure, ok := ParseDate(departureDate)
	if !ok {
		return 0, false
	}
	return validUntilFrom(departure), true
}

func validUntilFrom(departure time.Time) int64 {
	return departure.AddDate(0, 0, 1).Unix()
}

// startOfDay truncates now to its UTC calendar date.
func startOfDay(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
