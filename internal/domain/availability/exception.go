package availability

import (
	"time"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
)

func dateOnly(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ExceptionFor returns the exception covering day, or nil. Ranges are
// inclusive at the date level.
func ExceptionFor(day time.Time, loc *time.Location, exceptions []models.AvailabilityException) *models.AvailabilityException {
	d := dateOnly(day, loc)
	for i := range exceptions {
		start := dateOnly(exceptions[i].StartDate, loc)
		end := dateOnly(exceptions[i].EndDate, loc)
		if !d.Before(start) && !d.After(end) {
			return &exceptions[i]
		}
	}
	return nil
}

// BlocksBooking reports whether the exception forbids booking at the given
// instant. UNAVAILABLE with no custom blocks closes the whole day; custom
// blocks replace the pattern, so the instant must fit one of them.
func BlocksBooking(exc *models.AvailabilityException, start, end time.Time, loc *time.Location) bool {
	if exc == nil {
		return false
	}
	if len(exc.TimeBlocks) == 0 {
		return exc.Type == models.ExceptionUnavailable
	}

	for _, w := range AvailableWindows(exc.TimeBlocks) {
		ws, we := w.OnDate(start, loc)
		if !start.Before(ws) && !end.After(we) {
			return false
		}
	}
	return true
}
