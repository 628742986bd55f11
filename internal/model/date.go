package model

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for timestamps: ISO-8601 in UTC with milliseconds
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatDate renders t in DateLayout
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate accepts an RFC 3339 timestamp or a calendar date (YYYY-MM-DD, taken as UTC midnight)
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected ISO-8601", s)
}
