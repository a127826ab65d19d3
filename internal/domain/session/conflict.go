package session

import (
	"time"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
)

// OverlapsBuffered reports whether [start, end) intersects the session's
// interval expanded by buffer minutes on both sides. Half-open on both
// intervals, so back-to-back bookings only collide when a buffer applies.
func OverlapsBuffered(start, end time.Time, existing *models.Session, bufferMinutes int) bool {
	buffer := time.Duration(bufferMinutes) * time.Minute
	existingStart := existing.ScheduledAt.Add(-buffer)
	existingEnd := existing.ScheduledAt.
		Add(time.Duration(existing.DurationMinutes) * time.Minute).
		Add(buffer)

	return start.Before(existingEnd) && end.After(existingStart)
}

// FirstConflict scans the mentor's active sessions for an overlap and
// returns it, or nil. Linear scan; the per-mentor working set is small.
func FirstConflict(start, end time.Time, existing []models.Session, bufferMinutes int) *models.Session {
	for i := range existing {
		if existing[i].Status != string(StatusScheduled) {
			continue
		}
		if OverlapsBuffered(start, end, &existing[i], bufferMinutes) {
			return &existing[i]
		}
	}
	return nil
}
