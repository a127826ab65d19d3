package session

import (
	"context"
	"time"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
)

type SessionFilter struct {
	MentorID uint
	MenteeID uint
	Status   string
	From     time.Time
	To       time.Time
}

type Repository interface {
	// -------- Users --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetMentor(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Availability (read side) --------
	GetScheduleByMentor(
		ctx context.Context,
		mentorID uint,
	) (*models.AvailabilitySchedule, error)

	GetPattern(
		ctx context.Context,
		scheduleID uint,
		dayOfWeek int,
	) (*models.WeeklyPattern, error)

	ListPatterns(
		ctx context.Context,
		scheduleID uint,
	) ([]models.WeeklyPattern, error)

	ListExceptions(
		ctx context.Context,
		scheduleID uint,
		from time.Time,
		to time.Time,
	) ([]models.AvailabilityException, error)

	// -------- Sessions --------
	GetSession(
		ctx context.Context,
		id uint,
	) (*models.Session, error)

	ListSessions(
		ctx context.Context,
		filter SessionFilter,
	) ([]models.Session, error)

	ListScheduledBetween(
		ctx context.Context,
		mentorID uint,
		from time.Time,
		to time.Time,
	) ([]models.Session, error)

	HasConflict(
		ctx context.Context,
		mentorID uint,
		start time.Time,
		end time.Time,
		bufferMinutes int,
	) (bool, error)

	// CreateSessionIfFree re-runs the conflict check and inserts within
	// one transaction, serialized per mentor, closing the read-then-write
	// race between concurrent bookings.
	CreateSessionIfFree(
		ctx context.Context,
		s *models.Session,
		bufferMinutes int,
	) error

	// FinalizeCancellation locks the session row, re-checks it is still
	// cancellable, applies the mutation, and writes the audit entry in
	// the same transaction. An audit failure aborts the cancellation.
	FinalizeCancellation(
		ctx context.Context,
		sessionID uint,
		apply func(*models.Session) error,
		entry *models.SessionAuditLog,
	) (*models.Session, error)

	// FinalizeReassignment locks the session row, re-checks the new
	// mentor is still conflict-free, and applies the transfer.
	FinalizeReassignment(
		ctx context.Context,
		sessionID uint,
		newMentorID uint,
		bufferMinutes int,
		apply func(*models.Session) error,
		entry *models.SessionAuditLog,
	) (*models.Session, error)

	// -------- Reschedule requests --------
	GetRescheduleRequest(
		ctx context.Context,
		id uint,
	) (*models.RescheduleRequest, error)

	// CreateRescheduleRequest inserts the request and mirrors the pending
	// pointers onto the session in one transaction.
	CreateRescheduleRequest(
		ctx context.Context,
		req *models.RescheduleRequest,
		entry *models.SessionAuditLog,
	) error

	// ResolveRescheduleRequest locks the request and its session, hands
	// both to apply under the lock, and persists the outcome plus the
	// audit entry atomically. apply must re-check the request is open.
	ResolveRescheduleRequest(
		ctx context.Context,
		requestID uint,
		apply func(*models.RescheduleRequest, *models.Session) error,
		entry *models.SessionAuditLog,
	) (*models.RescheduleRequest, *models.Session, error)

	// -------- Audit (read side) --------
	ListAuditEntries(
		ctx context.Context,
		sessionID uint,
	) ([]models.SessionAuditLog, error)
}

// MentorFinder is the matching collaborator: candidate selection lives
// outside this core, the contract is only "a mentor with no conflicting
// session at that time, excluding the original".
type MentorFinder interface {
	FindReplacement(
		ctx context.Context,
		at time.Time,
		durationMinutes int,
		excludeMentorID uint,
	) (*models.User, error)
}
