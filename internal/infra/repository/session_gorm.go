package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/abdur-rahman-shawl/youngminds-sessions/internal/domain/session"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httperr"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
)

// bookingLockClass namespaces the per-mentor advisory locks used to
// serialize conflict-check-then-insert.
const bookingLockClass = 7401

type SessionGormRepository struct {
	db *gorm.DB
}

func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *SessionGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *SessionGormRepository) GetMentor(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var mentor models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, "mentor").
		First(&mentor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("mentor_not_found")
		}
		return nil, err
	}
	return &mentor, nil
}

// --------------------------------------------------
// Availability (read side)
// --------------------------------------------------

func (r *SessionGormRepository) GetScheduleByMentor(
	ctx context.Context,
	mentorID uint,
) (*models.AvailabilitySchedule, error) {

	var sched models.AvailabilitySchedule
	if err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		First(&sched).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("schedule_not_found")
		}
		return nil, err
	}
	return &sched, nil
}

func (r *SessionGormRepository) GetPattern(
	ctx context.Context,
	scheduleID uint,
	dayOfWeek int,
) (*models.WeeklyPattern, error) {

	var pattern models.WeeklyPattern
	if err := r.db.WithContext(ctx).
		Where("schedule_id = ? AND day_of_week = ?", scheduleID, dayOfWeek).
		First(&pattern).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pattern, nil
}

func (r *SessionGormRepository) ListPatterns(
	ctx context.Context,
	scheduleID uint,
) ([]models.WeeklyPattern, error) {

	var patterns []models.WeeklyPattern
	if err := r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Order("day_of_week ASC").
		Find(&patterns).Error; err != nil {
		return nil, err
	}
	return patterns, nil
}

func (r *SessionGormRepository) ListExceptions(
	ctx context.Context,
	scheduleID uint,
	from time.Time,
	to time.Time,
) ([]models.AvailabilityException, error) {

	var exceptions []models.AvailabilityException
	if err := r.db.WithContext(ctx).
		Where(
			"schedule_id = ? AND start_date <= ? AND end_date >= ?",
			scheduleID, to, from,
		).
		Order("start_date ASC").
		Find(&exceptions).Error; err != nil {
		return nil, err
	}
	return exceptions, nil
}

// --------------------------------------------------
// Sessions
// --------------------------------------------------

func (r *SessionGormRepository) GetSession(
	ctx context.Context,
	id uint,
) (*models.Session, error) {

	var s models.Session
	if err := r.db.WithContext(ctx).
		Preload("Mentor").
		Preload("Mentee").
		First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("session_not_found")
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionGormRepository) ListSessions(
	ctx context.Context,
	filter domain.SessionFilter,
) ([]models.Session, error) {

	q := r.db.WithContext(ctx).Model(&models.Session{})

	if filter.MentorID != 0 {
		q = q.Where("mentor_id = ?", filter.MentorID)
	}
	if filter.MenteeID != 0 {
		q = q.Where("mentee_id = ?", filter.MenteeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if !filter.From.IsZero() {
		q = q.Where("scheduled_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("scheduled_at < ?", filter.To)
	}

	var sessions []models.Session
	if err := q.
		Preload("Mentor").
		Preload("Mentee").
		Order("scheduled_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionGormRepository) ListScheduledBetween(
	ctx context.Context,
	mentorID uint,
	from time.Time,
	to time.Time,
) ([]models.Session, error) {

	var sessions []models.Session
	if err := r.db.WithContext(ctx).
		Select("id", "mentor_id", "status", "scheduled_at", "duration_minutes").
		Where(
			"mentor_id = ? AND status = ? AND scheduled_at >= ? AND scheduled_at < ?",
			mentorID, string(domain.StatusScheduled), from, to,
		).
		Order("scheduled_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionGormRepository) HasConflict(
	ctx context.Context,
	mentorID uint,
	start time.Time,
	end time.Time,
	bufferMinutes int,
) (bool, error) {
	return hasConflict(r.db.WithContext(ctx), mentorID, start, end, bufferMinutes, 0)
}

// hasConflict runs the buffer-expanded half-open overlap test in SQL:
// [scheduled_at - buffer, scheduled_at + duration + buffer) vs [start, end).
func hasConflict(
	tx *gorm.DB,
	mentorID uint,
	start time.Time,
	end time.Time,
	bufferMinutes int,
	excludeSessionID uint,
) (bool, error) {

	q := tx.Model(&models.Session{}).
		Where(
			"mentor_id = ? AND status = ?"+
				" AND scheduled_at - make_interval(mins => ?) < ?"+
				" AND scheduled_at + make_interval(mins => duration_minutes + ?) > ?",
			mentorID, string(domain.StatusScheduled),
			bufferMinutes, end,
			bufferMinutes, start,
		)
	if excludeSessionID != 0 {
		q = q.Where("id <> ?", excludeSessionID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateSessionIfFree serializes per mentor with a transaction-scoped
// advisory lock, then re-checks the conflict before inserting. Two
// concurrent bookings for the same window cannot both pass.
func (r *SessionGormRepository) CreateSessionIfFree(
	ctx context.Context,
	s *models.Session,
	bufferMinutes int,
) error {

	end := s.ScheduledAt.Add(time.Duration(s.DurationMinutes) * time.Minute)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := acquireMentorLock(tx, s.MentorID); err != nil {
			return err
		}

		conflict, err := hasConflict(tx, s.MentorID, s.ScheduledAt, end, bufferMinutes, 0)
		if err != nil {
			return err
		}
		if conflict {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(s).Error
	})
}

func acquireMentorLock(tx *gorm.DB, mentorID uint) error {
	return tx.Exec(
		"SELECT pg_advisory_xact_lock(?, ?)",
		bookingLockClass, int64(mentorID),
	).Error
}

// --------------------------------------------------
// Sessions (state change)
// --------------------------------------------------

func (r *SessionGormRepository) FinalizeCancellation(
	ctx context.Context,
	sessionID uint,
	apply func(*models.Session) error,
	entry *models.SessionAuditLog,
) (*models.Session, error) {

	var s models.Session
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&s, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("session_not_found")
			}
			return err
		}

		if err := apply(&s); err != nil {
			return err
		}

		if err := tx.Save(&s).Error; err != nil {
			return err
		}

		// The audit entry is the only record of which policy produced
		// the refund; its failure aborts the cancellation.
		entry.SessionID = s.ID
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionGormRepository) FinalizeReassignment(
	ctx context.Context,
	sessionID uint,
	newMentorID uint,
	bufferMinutes int,
	apply func(*models.Session) error,
	entry *models.SessionAuditLog,
) (*models.Session, error) {

	var s models.Session
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := acquireMentorLock(tx, newMentorID); err != nil {
			return err
		}

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&s, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("session_not_found")
			}
			return err
		}

		end := s.ScheduledAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
		conflict, err := hasConflict(tx, newMentorID, s.ScheduledAt, end, bufferMinutes, s.ID)
		if err != nil {
			return err
		}
		if conflict {
			return httperr.ErrBusiness("time_conflict")
		}

		if err := apply(&s); err != nil {
			return err
		}

		if err := tx.Save(&s).Error; err != nil {
			return err
		}

		entry.SessionID = s.ID
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// --------------------------------------------------
// Reschedule requests
// --------------------------------------------------

func (r *SessionGormRepository) GetRescheduleRequest(
	ctx context.Context,
	id uint,
) (*models.RescheduleRequest, error) {

	var req models.RescheduleRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("request_not_found")
		}
		return nil, err
	}
	return &req, nil
}

func (r *SessionGormRepository) CreateRescheduleRequest(
	ctx context.Context,
	req *models.RescheduleRequest,
	entry *models.SessionAuditLog,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s models.Session
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&s, req.SessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("session_not_found")
			}
			return err
		}

		// Re-check under the lock: still scheduled, no open negotiation.
		if err := domain.CanReschedule(domain.Status(s.Status)); err != nil {
			return err
		}
		if s.PendingRescheduleRequestID != nil {
			return httperr.ErrBusiness("reschedule_pending")
		}

		if err := tx.Create(req).Error; err != nil {
			return err
		}

		domain.SetPendingReschedule(&s, req.ID, req.ProposedTime, domain.Role(req.InitiatedBy))
		if err := tx.Save(&s).Error; err != nil {
			return err
		}

		entry.SessionID = s.ID
		return tx.Create(entry).Error
	})
}

func (r *SessionGormRepository) ResolveRescheduleRequest(
	ctx context.Context,
	requestID uint,
	apply func(*models.RescheduleRequest, *models.Session) error,
	entry *models.SessionAuditLog,
) (*models.RescheduleRequest, *models.Session, error) {

	var req models.RescheduleRequest
	var s models.Session

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("request_not_found")
			}
			return err
		}

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&s, req.SessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("session_not_found")
			}
			return err
		}

		// apply re-validates the request is still open under the lock,
		// so two concurrent responses cannot both land.
		if err := apply(&req, &s); err != nil {
			return err
		}

		if err := tx.Save(&req).Error; err != nil {
			return err
		}
		if err := tx.Save(&s).Error; err != nil {
			return err
		}

		if entry != nil {
			entry.SessionID = s.ID
			return tx.Create(entry).Error
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &req, &s, nil
}

// --------------------------------------------------
// Audit (read side)
// --------------------------------------------------

func (r *SessionGormRepository) ListAuditEntries(
	ctx context.Context,
	sessionID uint,
) ([]models.SessionAuditLog, error) {

	var entries []models.SessionAuditLog
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Compile-time check
var _ domain.Repository = (*SessionGormRepository)(nil)
