package handlers

import "time"

// parseInstant accepts RFC3339 timestamps, with or without sub-second
// precision.
func parseInstant(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// parseDate parses a bare "YYYY-MM-DD" calendar date in UTC; callers
// shift it into the mentor's timezone as needed.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
