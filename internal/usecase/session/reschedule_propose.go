package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/audit"
	domain "github.com/abdur-rahman-shawl/youngminds-sessions/internal/domain/session"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httperr"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/notify"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/policy"
)

type ProposeRescheduleInput struct {
	SessionID uint
	UserID    uint

	ProposedTime            time.Time
	ProposedDurationMinutes int
	Reason                  string

	IPAddress string
	UserAgent string
}

type ProposeReschedule struct {
	repo     domain.Repository
	policies policy.Provider
	notify   notify.Publisher
}

func NewProposeReschedule(
	repo domain.Repository,
	policies policy.Provider,
	notifyDispatcher notify.Publisher,
) *ProposeReschedule {
	return &ProposeReschedule{
		repo:     repo,
		policies: policies,
		notify:   notifyDispatcher,
	}
}

func (uc *ProposeReschedule) Execute(
	ctx context.Context,
	in ProposeRescheduleInput,
) (*models.RescheduleRequest, error) {

	s, err := uc.repo.GetSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	role, isParty := domain.PartyRole(s, in.UserID)
	if !isParty {
		return nil, httperr.ErrBusiness("not_session_party")
	}

	if err := domain.CanReschedule(domain.Status(s.Status)); err != nil {
		return nil, err
	}
	if domain.SchedulingStateOf(s).Kind == domain.SchedulingPendingReschedule {
		return nil, httperr.ErrBusiness("reschedule_pending")
	}

	now := time.Now()
	if !in.ProposedTime.After(now) {
		return nil, httperr.ErrBusiness("invalid_proposed_time")
	}

	snapshot, err := uc.policies.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	duration := in.ProposedDurationMinutes
	if duration <= 0 {
		duration = s.DurationMinutes
	}

	req := &models.RescheduleRequest{
		SessionID:               s.ID,
		InitiatedBy:             string(role),
		InitiatorID:             in.UserID,
		OriginalTime:            s.ScheduledAt,
		ProposedTime:            in.ProposedTime,
		ProposedDurationMinutes: duration,
		Reason:                  in.Reason,
		Status:                  string(domain.RequestPending),
		ExpiresAt:               now.Add(time.Duration(snapshot.RescheduleRequestExpiryHours) * time.Hour),
	}

	entry := audit.Entry(
		s.ID, in.UserID, string(role), "reschedule_propose",
		snapshot,
		map[string]any{"reason": in.Reason},
	)
	entry.IPAddress = in.IPAddress
	entry.UserAgent = in.UserAgent
	oldTime := s.ScheduledAt
	newTime := in.ProposedTime
	entry.OldScheduledAt = &oldTime
	entry.NewScheduledAt = &newTime

	// Insert and mirror the pending pointers atomically; the session's
	// state is re-checked under the row lock.
	if err := uc.repo.CreateRescheduleRequest(ctx, req, entry); err != nil {
		return nil, err
	}

	other := domain.PartyID(s, role.Other())
	uc.notify.Dispatch(notify.NewEvent(
		notify.EventRescheduleProposed, other, s.ID,
		fmt.Sprintf("The %s proposed a new time for %q", role, s.Title),
	).With("proposed_time", in.ProposedTime).With("request_id", req.ID))

	return req, nil
}
