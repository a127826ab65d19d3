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

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CancelSessionInput struct {
	SessionID uint
	UserID    uint

	ReasonCategory string
	ReasonDetails  string

	IPAddress string
	UserAgent string
}

type CancelSessionResult struct {
	Reassigned    bool   `json:"reassigned"`
	NewMentorName string `json:"new_mentor_name,omitempty"`

	// No omitempty on the refund fields: a 0% refund is still a refund
	// decision and has to reach the client.
	CancelledBy      string `json:"cancelled_by,omitempty"`
	RefundPercentage int    `json:"refund_percentage"`
	RefundAmount     string `json:"refund_amount"`
	RefundStatus     string `json:"refund_status"`
}

// ======================================================
// USE CASE
// ======================================================

type CancelSession struct {
	repo     domain.Repository
	finder   domain.MentorFinder
	policies policy.Provider
	notify   notify.Publisher
}

func NewCancelSession(
	repo domain.Repository,
	finder domain.MentorFinder,
	policies policy.Provider,
	notifyDispatcher notify.Publisher,
) *CancelSession {
	return &CancelSession{
		repo:     repo,
		finder:   finder,
		policies: policies,
		notify:   notifyDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CancelSession) Execute(
	ctx context.Context,
	in CancelSessionInput,
) (*CancelSessionResult, error) {

	s, err := uc.repo.GetSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	role, isParty := domain.PartyRole(s, in.UserID)
	if !isParty {
		return nil, httperr.ErrBusiness("not_session_party")
	}

	if err := domain.CanCancel(domain.Status(s.Status)); err != nil {
		return nil, err
	}

	label, known := domain.ReasonLabel(role, in.ReasonCategory)
	if !known {
		return nil, httperr.ErrBusiness("invalid_reason_category")
	}
	reason := domain.FormatReason(label, in.ReasonDetails)

	snapshot, err := uc.policies.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	// Cancellation is never hard-blocked by lead time. The cutoffs only
	// move the refund tier: inside the cutoff the mentee still cancels,
	// at the late-cancellation percentage.
	hoursUntil := time.Until(s.ScheduledAt).Hours()

	if role == domain.RoleMentor {
		result, err := uc.tryReassign(ctx, s, in, snapshot, reason)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
		// No replacement found: fall through to standard cancellation.
	}

	return uc.cancel(ctx, s, in, role, snapshot, reason, hoursUntil)
}

// tryReassign makes a single reassignment attempt. A nil, nil return
// means no replacement was available.
func (uc *CancelSession) tryReassign(
	ctx context.Context,
	s *models.Session,
	in CancelSessionInput,
	snapshot policy.Snapshot,
	reason string,
) (*CancelSessionResult, error) {

	replacement, err := uc.finder.FindReplacement(
		ctx, s.ScheduledAt, s.DurationMinutes, s.MentorID,
	)
	if err != nil {
		return nil, err
	}
	if replacement == nil {
		return nil, nil
	}

	oldMentorID := s.MentorID
	now := time.Now()

	entry := audit.Entry(
		s.ID, in.UserID, string(domain.RoleMentor), "reassignment",
		snapshot,
		map[string]any{
			"reason":         reason,
			"from_mentor_id": oldMentorID,
			"to_mentor_id":   replacement.ID,
		},
	)
	entry.IPAddress = in.IPAddress
	entry.UserAgent = in.UserAgent

	pending := "pending_acceptance"
	updated, err := uc.repo.FinalizeReassignment(
		ctx, s.ID, replacement.ID, 0,
		func(locked *models.Session) error {
			if err := domain.CanCancel(domain.Status(locked.Status)); err != nil {
				return err
			}
			from := oldMentorID
			at := now
			locked.MentorID = replacement.ID
			locked.WasReassigned = true
			locked.ReassignedFromMentorID = &from
			locked.ReassignedAt = &at
			locked.ReassignmentStatus = &pending
			return nil
		},
		entry,
	)
	if err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			// The replacement got booked between search and commit;
			// treat it as "no replacement" and cancel normally.
			return nil, nil
		}
		return nil, err
	}

	uc.notify.Dispatch(notify.NewEvent(
		notify.EventSessionReassigned, updated.MenteeID, updated.ID,
		fmt.Sprintf("Your mentor had to step down; %s will take the session instead", replacement.Name),
	).With("new_mentor_id", replacement.ID))

	uc.notify.Dispatch(notify.NewEvent(
		notify.EventMentorReplaced, oldMentorID, updated.ID,
		"Your session was transferred to another mentor",
	))

	uc.notify.Dispatch(notify.NewEvent(
		notify.EventMentorAssigned, replacement.ID, updated.ID,
		fmt.Sprintf("You have been assigned a session: %s", updated.Title),
	).With("scheduled_at", updated.ScheduledAt))

	return &CancelSessionResult{
		Reassigned:    true,
		NewMentorName: replacement.Name,
		RefundAmount:  "0.00",
		RefundStatus:  domain.RefundStatusNone,
	}, nil
}

func (uc *CancelSession) cancel(
	ctx context.Context,
	s *models.Session,
	in CancelSessionInput,
	role domain.Role,
	snapshot policy.Snapshot,
	reason string,
	hoursUntil float64,
) (*CancelSessionResult, error) {

	percent := domain.RefundPercent(role == domain.RoleMentor, hoursUntil, snapshot)
	amount, err := domain.RefundAmount(s.Rate, percent)
	if err != nil {
		return nil, err
	}
	refundStatus := domain.RefundStatusFor(amount)

	entry := audit.Entry(
		s.ID, in.UserID, string(role), "cancel",
		snapshot,
		map[string]any{
			"reason":            reason,
			"hours_until":       hoursUntil,
			"refund_percentage": percent,
			"refund_amount":     amount,
		},
	)
	entry.IPAddress = in.IPAddress
	entry.UserAgent = in.UserAgent

	now := time.Now()
	roleStr := string(role)

	updated, err := uc.repo.FinalizeCancellation(
		ctx, s.ID,
		func(locked *models.Session) error {
			if err := domain.CanCancel(domain.Status(locked.Status)); err != nil {
				return err
			}
			locked.Status = string(domain.StatusCancelled)
			locked.CancelledBy = &roleStr
			locked.CancellationReason = &reason
			locked.RefundPercentage = &percent
			locked.RefundAmount = &amount
			locked.RefundStatus = refundStatus
			locked.CancelledAt = &now
			domain.ClearPendingReschedule(locked)
			return nil
		},
		entry,
	)
	if err != nil {
		return nil, err
	}

	other := domain.PartyID(updated, role.Other())
	uc.notify.Dispatch(notify.NewEvent(
		notify.EventSessionCancelled, other, updated.ID,
		fmt.Sprintf("Session cancelled by the %s; refund %d%%", roleStr, percent),
	).With("refund_amount", amount))

	uc.notify.Dispatch(notify.NewEvent(
		notify.EventCancelConfirmed, in.UserID, updated.ID,
		"Your cancellation is confirmed",
	))

	return &CancelSessionResult{
		CancelledBy:      roleStr,
		RefundPercentage: percent,
		RefundAmount:     amount,
		RefundStatus:     refundStatus,
	}, nil
}
