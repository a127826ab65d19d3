package session

import (
	"context"
	"time"

	domain "github.com/abdur-rahman-shawl/youngminds-sessions/internal/domain/session"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httperr"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/notify"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/policy"
)

// ======================================================
// FAKES
// ======================================================

// fakeRepo is an in-memory Repository with the same transactional
// semantics as the gorm implementation: Finalize*/Resolve* run apply
// against the stored row and keep the audit entry only on success.
type fakeRepo struct {
	users      map[uint]*models.User
	schedule   *models.AvailabilitySchedule
	patterns   map[int]*models.WeeklyPattern
	exceptions []models.AvailabilityException
	sessions   map[uint]*models.Session
	requests   map[uint]*models.RescheduleRequest

	auditEntries []*models.SessionAuditLog

	// forceReassignConflict makes FinalizeReassignment fail the way the
	// real repository does when the replacement just got booked.
	forceReassignConflict bool

	nextID uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    make(map[uint]*models.User),
		patterns: make(map[int]*models.WeeklyPattern),
		sessions: make(map[uint]*models.Session),
		requests: make(map[uint]*models.RescheduleRequest),
		nextID:   100,
	}
}

func (r *fakeRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *fakeRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	return u, nil
}

func (r *fakeRepo) GetMentor(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok || u.Role != "mentor" {
		return nil, httperr.ErrBusiness("mentor_not_found")
	}
	return u, nil
}

func (r *fakeRepo) GetScheduleByMentor(_ context.Context, mentorID uint) (*models.AvailabilitySchedule, error) {
	if r.schedule == nil || r.schedule.MentorID != mentorID {
		return nil, httperr.ErrBusiness("schedule_not_found")
	}
	return r.schedule, nil
}

func (r *fakeRepo) GetPattern(_ context.Context, scheduleID uint, dayOfWeek int) (*models.WeeklyPattern, error) {
	return r.patterns[dayOfWeek], nil
}

func (r *fakeRepo) ListPatterns(_ context.Context, scheduleID uint) ([]models.WeeklyPattern, error) {
	var out []models.WeeklyPattern
	for _, p := range r.patterns {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeRepo) ListExceptions(_ context.Context, scheduleID uint, from, to time.Time) ([]models.AvailabilityException, error) {
	return r.exceptions, nil
}

func (r *fakeRepo) GetSession(_ context.Context, id uint) (*models.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, httperr.ErrBusiness("session_not_found")
	}
	copied := *s
	return &copied, nil
}

func (r *fakeRepo) ListSessions(_ context.Context, filter domain.SessionFilter) ([]models.Session, error) {
	var out []models.Session
	for _, s := range r.sessions {
		if filter.MentorID != 0 && s.MentorID != filter.MentorID {
			continue
		}
		if filter.MenteeID != 0 && s.MenteeID != filter.MenteeID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeRepo) ListScheduledBetween(_ context.Context, mentorID uint, from, to time.Time) ([]models.Session, error) {
	var out []models.Session
	for _, s := range r.sessions {
		if s.MentorID == mentorID && s.Status == string(domain.StatusScheduled) &&
			s.ScheduledAt.After(from) && s.ScheduledAt.Before(to) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeRepo) mentorSessions(mentorID uint) []models.Session {
	var out []models.Session
	for _, s := range r.sessions {
		if s.MentorID == mentorID {
			out = append(out, *s)
		}
	}
	return out
}

func (r *fakeRepo) HasConflict(_ context.Context, mentorID uint, start, end time.Time, bufferMinutes int) (bool, error) {
	return domain.FirstConflict(start, end, r.mentorSessions(mentorID), bufferMinutes) != nil, nil
}

func (r *fakeRepo) CreateSessionIfFree(_ context.Context, s *models.Session, bufferMinutes int) error {
	end := s.ScheduledAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
	if domain.FirstConflict(s.ScheduledAt, end, r.mentorSessions(s.MentorID), bufferMinutes) != nil {
		return httperr.ErrBusiness("time_conflict")
	}
	s.ID = r.id()
	copied := *s
	r.sessions[s.ID] = &copied
	return nil
}

func (r *fakeRepo) FinalizeCancellation(
	_ context.Context,
	sessionID uint,
	apply func(*models.Session) error,
	entry *models.SessionAuditLog,
) (*models.Session, error) {

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, httperr.ErrBusiness("session_not_found")
	}
	if err := apply(s); err != nil {
		return nil, err
	}
	if entry != nil {
		entry.SessionID = sessionID
		r.auditEntries = append(r.auditEntries, entry)
	}
	copied := *s
	return &copied, nil
}

func (r *fakeRepo) FinalizeReassignment(
	_ context.Context,
	sessionID uint,
	newMentorID uint,
	bufferMinutes int,
	apply func(*models.Session) error,
	entry *models.SessionAuditLog,
) (*models.Session, error) {

	if r.forceReassignConflict {
		return nil, httperr.ErrBusiness("time_conflict")
	}
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, httperr.ErrBusiness("session_not_found")
	}
	if err := apply(s); err != nil {
		return nil, err
	}
	if entry != nil {
		r.auditEntries = append(r.auditEntries, entry)
	}
	copied := *s
	return &copied, nil
}

func (r *fakeRepo) GetRescheduleRequest(_ context.Context, id uint) (*models.RescheduleRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, httperr.ErrBusiness("request_not_found")
	}
	copied := *req
	return &copied, nil
}

func (r *fakeRepo) CreateRescheduleRequest(
	_ context.Context,
	req *models.RescheduleRequest,
	entry *models.SessionAuditLog,
) error {

	s, ok := r.sessions[req.SessionID]
	if !ok {
		return httperr.ErrBusiness("session_not_found")
	}
	if err := domain.CanReschedule(domain.Status(s.Status)); err != nil {
		return err
	}
	if s.PendingRescheduleRequestID != nil {
		return httperr.ErrBusiness("reschedule_pending")
	}

	req.ID = r.id()
	copied := *req
	r.requests[req.ID] = &copied

	domain.SetPendingReschedule(s, req.ID, req.ProposedTime, domain.Role(req.InitiatedBy))
	if entry != nil {
		r.auditEntries = append(r.auditEntries, entry)
	}
	return nil
}

func (r *fakeRepo) ResolveRescheduleRequest(
	_ context.Context,
	requestID uint,
	apply func(*models.RescheduleRequest, *models.Session) error,
	entry *models.SessionAuditLog,
) (*models.RescheduleRequest, *models.Session, error) {

	req, ok := r.requests[requestID]
	if !ok {
		return nil, nil, httperr.ErrBusiness("request_not_found")
	}
	s, ok := r.sessions[req.SessionID]
	if !ok {
		return nil, nil, httperr.ErrBusiness("session_not_found")
	}
	if err := apply(req, s); err != nil {
		return nil, nil, err
	}
	if entry != nil {
		r.auditEntries = append(r.auditEntries, entry)
	}
	reqCopy := *req
	sCopy := *s
	return &reqCopy, &sCopy, nil
}

func (r *fakeRepo) ListAuditEntries(_ context.Context, sessionID uint) ([]models.SessionAuditLog, error) {
	var out []models.SessionAuditLog
	for _, e := range r.auditEntries {
		if e.SessionID == sessionID {
			out = append(out, *e)
		}
	}
	return out, nil
}

// ------------------------------------------------------

type fakeFinder struct {
	replacement *models.User
}

func (f *fakeFinder) FindReplacement(_ context.Context, at time.Time, durationMinutes int, excludeMentorID uint) (*models.User, error) {
	if f.replacement == nil || f.replacement.ID == excludeMentorID {
		return nil, nil
	}
	return f.replacement, nil
}

type fakePolicies struct {
	snap policy.Snapshot
}

func (f *fakePolicies) Snapshot(context.Context) (policy.Snapshot, error) {
	return f.snap, nil
}

type captureAudit struct {
	entries []*models.SessionAuditLog
}

func (c *captureAudit) Dispatch(entry *models.SessionAuditLog) {
	c.entries = append(c.entries, entry)
}

type capturePublisher struct {
	events []notify.Event
}

func (c *capturePublisher) Dispatch(ev notify.Event) {
	c.events = append(c.events, ev)
}

func (c *capturePublisher) typesSent() []string {
	var out []string
	for _, ev := range c.events {
		out = append(out, ev.Type)
	}
	return out
}

func defaultSnapshot() policy.Snapshot {
	return policy.ParseSnapshot(nil)
}
