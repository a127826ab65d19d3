package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/audit"
	availdomain "github.com/abdur-rahman-shawl/youngminds-sessions/internal/domain/availability"
	domain "github.com/abdur-rahman-shawl/youngminds-sessions/internal/domain/session"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httperr"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/notify"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/policy"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookSessionInput struct {
	MentorID uint
	MenteeID uint

	Title       string
	Description string

	ScheduledAt     time.Time
	DurationMinutes int
	MeetingType     string
	Location        string
}

// ======================================================
// USE CASE
// ======================================================

type BookSession struct {
	repo     domain.Repository
	policies policy.Provider
	audit    audit.Sink
	notify   notify.Publisher
}

func NewBookSession(
	repo domain.Repository,
	policies policy.Provider,
	auditDispatcher audit.Sink,
	notifyDispatcher notify.Publisher,
) *BookSession {
	return &BookSession{
		repo:     repo,
		policies: policies,
		audit:    auditDispatcher,
		notify:   notifyDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates the booking fail-fast in the order the API reports
// errors, then inserts under the per-mentor lock. Notifications fire only
// after the row is committed and never roll the booking back.
func (uc *BookSession) Execute(
	ctx context.Context,
	in BookSessionInput,
) (*models.Session, error) {

	// 1. No self-booking.
	if in.MenteeID == in.MentorID {
		return nil, httperr.ErrBusiness("self_booking")
	}

	// 2. Mentor exists and is taking bookings.
	mentor, err := uc.repo.GetMentor(ctx, in.MentorID)
	if err != nil {
		return nil, err
	}
	if !mentor.IsAvailable {
		return nil, httperr.ErrBusiness("mentor_unavailable")
	}

	// 3. Active availability schedule.
	sched, err := uc.repo.GetScheduleByMentor(ctx, in.MentorID)
	if err != nil {
		return nil, err
	}
	if !sched.IsActive {
		return nil, httperr.ErrBusiness("schedule_not_found")
	}

	duration := in.DurationMinutes
	if duration <= 0 {
		duration = sched.DefaultSessionMinutes
	}

	loc := timezone.Location(sched.Timezone)
	start := in.ScheduledAt.In(loc)
	end := start.Add(time.Duration(duration) * time.Minute)
	now := time.Now().In(loc)

	// 4. Advance-booking window.
	earliest := now.Add(time.Duration(sched.MinAdvanceBookingHours) * time.Hour)
	latest := now.AddDate(0, 0, sched.MaxAdvanceBookingDays)
	if start.Before(earliest) {
		return nil, httperr.ErrBusinessDetail(
			"outside_booking_window",
			fmt.Sprintf("bookings require %d hours notice", sched.MinAdvanceBookingHours),
		)
	}
	if start.After(latest) {
		return nil, httperr.ErrBusinessDetail(
			"outside_booking_window",
			fmt.Sprintf("bookings open at most %d days ahead", sched.MaxAdvanceBookingDays),
		)
	}

	// 5. Day enabled and the whole interval inside one AVAILABLE block.
	pattern, err := uc.repo.GetPattern(ctx, sched.ID, int(start.Weekday()))
	if err != nil {
		return nil, err
	}
	if pattern == nil || !pattern.Enabled {
		return nil, httperr.ErrBusiness("day_not_available")
	}
	if !fitsAvailableBlock(pattern.TimeBlocks, start, end, loc) {
		return nil, httperr.ErrBusiness("outside_availability")
	}

	// 6. No blocking exception.
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	exceptions, err := uc.repo.ListExceptions(ctx, sched.ID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	exc := availdomain.ExceptionFor(start, loc, exceptions)
	if availdomain.BlocksBooking(exc, start, end, loc) {
		return nil, httperr.ErrBusiness("unavailable_exception")
	}

	// 7. Conflict pre-check; re-run atomically inside the insert.
	conflict, err := uc.repo.HasConflict(ctx, in.MentorID, start, end, sched.BufferMinutes)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, httperr.ErrBusiness("time_conflict")
	}

	// 8. Price snapshot from the mentor's current hourly rate.
	rate, err := domain.Price(mentor.HourlyRate, duration)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_mentor_rate")
	}

	s := &models.Session{
		MentorID:        in.MentorID,
		MenteeID:        in.MenteeID,
		Title:           in.Title,
		Description:     in.Description,
		ScheduledAt:     start,
		DurationMinutes: duration,
		MeetingType:     in.MeetingType,
		Location:        in.Location,
		Status:          string(domain.InitialStatus()),
		Rate:            rate,
		Currency:        mentor.Currency,
		RefundStatus:    domain.RefundStatusNone,
	}

	if err := uc.repo.CreateSessionIfFree(ctx, s, sched.BufferMinutes); err != nil {
		return nil, err
	}

	snapshot, _ := uc.policies.Snapshot(ctx)
	uc.audit.Dispatch(audit.Entry(
		s.ID, in.MenteeID, string(domain.RoleMentee), "book",
		snapshot,
		map[string]any{"scheduled_at": s.ScheduledAt, "duration_minutes": duration},
	))

	uc.notify.Dispatch(notify.NewEvent(
		notify.EventBookingCreated, in.MentorID, s.ID,
		fmt.Sprintf("New session booked: %s", s.Title),
	).With("scheduled_at", s.ScheduledAt))

	uc.notify.Dispatch(notify.NewEvent(
		notify.EventBookingConfirmed, in.MenteeID, s.ID,
		fmt.Sprintf("Your session with %s is confirmed", mentor.Name),
	).With("scheduled_at", s.ScheduledAt))

	return s, nil
}

func fitsAvailableBlock(blocks models.TimeBlockList, start, end time.Time, loc *time.Location) bool {
	for _, w := range availdomain.AvailableWindows(blocks) {
		ws, we := w.OnDate(start, loc)
		if !start.Before(ws) && !end.After(we) {
			return true
		}
	}
	return false
}
