// Package dates provides calendar-day window predicates for ISO-8601 timestamps.
//
// Comparisons use only the date portion of a timestamp, at day granularity.
// The boundary is inclusive: a date exactly N days ago counts as within the
// last N days. Unparseable input makes both predicates return false, so
// callers fail closed.
package dates

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// now is swapped out in tests for deterministic boundaries
var now = time.Now

// WithinLastDays reports whether the date part of dateStr falls within the
// last days calendar days, today and the boundary day included.
func WithinLastDays(dateStr string, days int) bool {
	date, ok := parseDate(dateStr)
	if !ok {
		return false
	}
	return !date.Before(cutoff(days))
}

// Parseable reports whether dateStr carries a usable calendar date.
// Callers use it to tell a genuinely recent date from one that merely
// failed to parse.
func Parseable(dateStr string) bool {
	_, ok := parseDate(dateStr)
	return ok
}

// OlderThanDays reports whether the date part of dateStr is strictly older
// than the last days calendar days. It is the complement of WithinLastDays
// for parseable input; unparseable input returns false here too.
func OlderThanDays(dateStr string, days int) bool {
	date, ok := parseDate(dateStr)
	if !ok {
		return false
	}
	return date.Before(cutoff(days))
}

// parseDate extracts the calendar date from an ISO-8601 timestamp.
// Jellyfin sends values like "2023-01-01T00:00:00.0000000Z"; only the
// part before the time separator matters.
func parseDate(dateStr string) (time.Time, bool) {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return time.Time{}, false
	}
	if idx := strings.IndexAny(s, "T "); idx >= 0 {
		s = s[:idx]
	}
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// cutoff returns today minus days, truncated to a calendar date
func cutoff(days int) time.Time {
	t := now()
	today := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -days)
}
