package matching

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/abdur-rahman-shawl/youngminds-sessions/internal/domain/session"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
)

// MentorGormFinder is the replacement-mentor search used when a mentor
// cancels. Candidate ranking is the matching service's concern; here the
// contract is only: available mentor, not the excluded one, no scheduled
// session overlapping the slot.
type MentorGormFinder struct {
	db *gorm.DB
}

func NewMentorGormFinder(db *gorm.DB) *MentorGormFinder {
	return &MentorGormFinder{db: db}
}

func (f *MentorGormFinder) FindReplacement(
	ctx context.Context,
	at time.Time,
	durationMinutes int,
	excludeMentorID uint,
) (*models.User, error) {

	end := at.Add(time.Duration(durationMinutes) * time.Minute)

	var mentor models.User
	err := f.db.WithContext(ctx).
		Where("role = ? AND is_available = ? AND id <> ?", "mentor", true, excludeMentorID).
		Where(
			"NOT EXISTS ("+
				"SELECT 1 FROM sessions s"+
				" WHERE s.mentor_id = users.id AND s.status = ?"+
				" AND s.scheduled_at < ?"+
				" AND s.scheduled_at + make_interval(mins => s.duration_minutes) > ?"+
				")",
			string(domain.StatusScheduled), end, at,
		).
		Order("id ASC").
		First(&mentor).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}

// Compile-time check
var _ domain.MentorFinder = (*MentorGormFinder)(nil)
