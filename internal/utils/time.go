package utils

import (
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// DayOf reduces a stored date string to its local calendar day (YYYY-MM-DD).
// Accepts plain dates, "YYYY-MM-DD HH:MM:SS" and RFC3339 timestamps; anything
// unparseable is returned trimmed so equality checks stay predictable.
func DayOf(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if t, err := time.ParseInLocation(layoutDate, s, time.Local); err == nil {
		return t.Format(layoutDate)
	}
	if t, err := time.ParseInLocation(layoutDateTime, s, time.Local); err == nil {
		return t.Format(layoutDate)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(time.Local).Format(layoutDate)
	}
	if len(s) >= len(layoutDate) {
		if _, err := time.ParseInLocation(layoutDate, s[:len(layoutDate)], time.Local); err == nil {
			return s[:len(layoutDate)]
		}
	}
	return s
}

// SameDay compares two stored date strings at day granularity.
func SameDay(a, b string) bool {
	return DayOf(a) == DayOf(b)
}
