package model

import (
	"strings"
	"time"
)

// DateLayout is the only accepted calendar-date format, both on web forms
// and in imported dataset fields.
const DateLayout = time.DateOnly

// ParseDate parses a calendar date in DateLayout. The result is midnight
// UTC of that day; any other format is rejected.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// DateOf truncates t to its calendar day at midnight UTC, so stored dates
// and query bounds compare consistently.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
