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

const (
	ActionAccept         = "accept"
	ActionReject         = "reject"
	ActionCounterPropose = "counter_propose"
	ActionCancelSession  = "cancel_session"
)

type RespondRescheduleInput struct {
	SessionID uint
	RequestID uint
	UserID    uint

	Action              string
	CounterProposedTime *time.Time
	CancellationReason  string

	IPAddress string
	UserAgent string
}

type RespondRescheduleResult struct {
	Action  string                    `json:"action"`
	Request *models.RescheduleRequest `json:"request"`
	Session *models.Session           `json:"session"`

	RefundPercentage int    `json:"refund_percentage,omitempty"`
	RefundAmount     string `json:"refund_amount,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type RespondReschedule struct {
	repo     domain.Repository
	policies policy.Provider
	notify   notify.Publisher
}

func NewRespondReschedule(
	repo domain.Repository,
	policies policy.Provider,
	notifyDispatcher notify.Publisher,
) *RespondReschedule {
	return &RespondReschedule{
		repo:     repo,
		policies: policies,
		notify:   notifyDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RespondReschedule) Execute(
	ctx context.Context,
	in RespondRescheduleInput,
) (*RespondRescheduleResult, error) {

	req, err := uc.repo.GetRescheduleRequest(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}
	if req.SessionID != in.SessionID {
		return nil, httperr.ErrBusiness("request_not_found")
	}

	s, err := uc.repo.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	role, isParty := domain.PartyRole(s, in.UserID)
	if !isParty {
		return nil, httperr.ErrBusiness("not_session_party")
	}

	now := time.Now()

	snapshot, err := uc.policies.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	// Expire-on-read: an overdue request is forced terminal before any
	// action is honored, and the action is rejected.
	if domain.RequestExpiredAt(req, now) {
		uc.expire(ctx, in, role, snapshot, now)
		return nil, httperr.ErrBusiness("request_expired")
	}

	switch in.Action {
	case ActionAccept:
		return uc.accept(ctx, in, role, snapshot, now)
	case ActionReject:
		return uc.reject(ctx, in, role, snapshot, now)
	case ActionCounterPropose:
		return uc.counter(ctx, in, role, snapshot, now)
	case ActionCancelSession:
		return uc.cancelSession(ctx, in, role, snapshot, now)
	default:
		return nil, httperr.ErrBusiness("invalid_action")
	}
}

// expire forces the overdue request into its terminal state; the
// transition is audited like any other. Best-effort: the caller already
// gets "request_expired" either way.
func (uc *RespondReschedule) expire(
	ctx context.Context,
	in RespondRescheduleInput,
	role domain.Role,
	snapshot policy.Snapshot,
	now time.Time,
) {
	entry := uc.newEntry(in, role, "reschedule_expired", snapshot, nil)
	_, _, _ = uc.repo.ResolveRescheduleRequest(
		ctx, in.RequestID,
		func(req *models.RescheduleRequest, s *models.Session) error {
			if !domain.Open(domain.RequestStatus(req.Status)) {
				return httperr.ErrBusiness("request_already_resolved")
			}
			domain.Expire(req, s, now)
			return nil
		},
		entry,
	)
}

func (uc *RespondReschedule) accept(
	ctx context.Context,
	in RespondRescheduleInput,
	role domain.Role,
	snapshot policy.Snapshot,
	now time.Time,
) (*RespondRescheduleResult, error) {

	entry := uc.newEntry(in, role, "reschedule_accept", snapshot, nil)

	req, s, err := uc.repo.ResolveRescheduleRequest(
		ctx, in.RequestID,
		func(req *models.RescheduleRequest, s *models.Session) error {
			if err := domain.CanRespond(req, role, now); err != nil {
				return err
			}
			oldTime := s.ScheduledAt
			newTime := domain.TimeOnTheTable(req)
			entry.OldScheduledAt = &oldTime
			entry.NewScheduledAt = &newTime
			domain.AcceptReschedule(req, s, role, in.UserID, now)
			return nil
		},
		entry,
	)
	if err != nil {
		return nil, err
	}

	uc.notify.Dispatch(notify.NewEvent(
		notify.EventRescheduleAccepted, req.InitiatorID, s.ID,
		fmt.Sprintf("Your reschedule was accepted; session moved to %s", s.ScheduledAt.Format(time.RFC3339)),
	))

	return &RespondRescheduleResult{Action: ActionAccept, Request: req, Session: s}, nil
}

func (uc *RespondReschedule) reject(
	ctx context.Context,
	in RespondRescheduleInput,
	role domain.Role,
	snapshot policy.Snapshot,
	now time.Time,
) (*RespondRescheduleResult, error) {

	entry := uc.newEntry(in, role, "reschedule_reject", snapshot, nil)

	req, s, err := uc.repo.ResolveRescheduleRequest(
		ctx, in.RequestID,
		func(req *models.RescheduleRequest, s *models.Session) error {
			if err := domain.CanRespond(req, role, now); err != nil {
				return err
			}
			domain.RejectReschedule(req, s, role, in.UserID, now)
			return nil
		},
		entry,
	)
	if err != nil {
		return nil, err
	}

	uc.notify.Dispatch(notify.NewEvent(
		notify.EventRescheduleRejected, req.InitiatorID, s.ID,
		"Your reschedule proposal was declined; the original time stands",
	))

	return &RespondRescheduleResult{Action: ActionReject, Request: req, Session: s}, nil
}

func (uc *RespondReschedule) counter(
	ctx context.Context,
	in RespondRescheduleInput,
	role domain.Role,
	snapshot policy.Snapshot,
	now time.Time,
) (*RespondRescheduleResult, error) {

	if in.CounterProposedTime == nil {
		return nil, httperr.ErrBusiness("counter_time_required")
	}
	counterTime := *in.CounterProposedTime
	if !counterTime.After(now) {
		return nil, httperr.ErrBusiness("invalid_proposed_time")
	}

	entry := uc.newEntry(in, role, "reschedule_counter", snapshot,
		map[string]any{"counter_proposed_time": counterTime})

	req, s, err := uc.repo.ResolveRescheduleRequest(
		ctx, in.RequestID,
		func(req *models.RescheduleRequest, s *models.Session) error {
			if err := domain.CanCounter(req, role, now); err != nil {
				return err
			}
			return domain.CounterPropose(
				req, s, role, counterTime, now,
				snapshot.RescheduleRequestExpiryHours,
				snapshot.MaxCounterProposals,
			)
		},
		entry,
	)
	if err != nil {
		return nil, err
	}

	other := domain.PartyID(s, role.Other())
	uc.notify.Dispatch(notify.NewEvent(
		notify.EventRescheduleCountered, other, s.ID,
		fmt.Sprintf("A counter-proposal was made: %s", counterTime.Format(time.RFC3339)),
	).With("request_id", req.ID))

	return &RespondRescheduleResult{Action: ActionCounterPropose, Request: req, Session: s}, nil
}

// cancelSession is the mentee escape hatch: always a 100% refund, and it
// terminates the session and the request together.
func (uc *RespondReschedule) cancelSession(
	ctx context.Context,
	in RespondRescheduleInput,
	role domain.Role,
	snapshot policy.Snapshot,
	now time.Time,
) (*RespondRescheduleResult, error) {

	if role != domain.RoleMentee {
		return nil, httperr.ErrBusiness("mentee_only_action")
	}

	percent := 100
	reason := domain.FormatReason("Cancelled during reschedule negotiation", in.CancellationReason)

	entry := uc.newEntry(in, role, domain.ReasonCancelledViaReschedule, snapshot,
		map[string]any{
			"reason":            reason,
			"refund_percentage": percent,
		})

	var amount string
	req, s, err := uc.repo.ResolveRescheduleRequest(
		ctx, in.RequestID,
		func(req *models.RescheduleRequest, s *models.Session) error {
			if err := domain.CanRespond(req, role, now); err != nil {
				return err
			}
			if err := domain.CanCancel(domain.Status(s.Status)); err != nil {
				return err
			}

			var aerr error
			amount, aerr = domain.RefundAmount(s.Rate, percent)
			if aerr != nil {
				return aerr
			}

			roleStr := string(domain.RoleMentee)
			at := now
			s.Status = string(domain.StatusCancelled)
			s.CancelledBy = &roleStr
			s.CancellationReason = &reason
			s.RefundPercentage = &percent
			s.RefundAmount = &amount
			s.RefundStatus = domain.RefundStatusFor(amount)
			s.CancelledAt = &at
			domain.CancelViaReschedule(req, s, in.UserID, now)
			return nil
		},
		entry,
	)
	if err != nil {
		return nil, err
	}

	uc.notify.Dispatch(notify.NewEvent(
		notify.EventSessionCancelled, s.MentorID, s.ID,
		fmt.Sprintf("The mentee cancelled the session during rescheduling; refund %d%%", percent),
	).With("refund_amount", amount))

	uc.notify.Dispatch(notify.NewEvent(
		notify.EventCancelConfirmed, in.UserID, s.ID,
		"Session cancelled; your full refund is on its way",
	))

	return &RespondRescheduleResult{
		Action:           ActionCancelSession,
		Request:          req,
		Session:          s,
		RefundPercentage: percent,
		RefundAmount:     amount,
	}, nil
}

func (uc *RespondReschedule) newEntry(
	in RespondRescheduleInput,
	role domain.Role,
	action string,
	snapshot policy.Snapshot,
	details map[string]any,
) *models.SessionAuditLog {

	entry := audit.Entry(in.SessionID, in.UserID, string(role), action, snapshot, details)
	entry.IPAddress = in.IPAddress
	entry.UserAgent = in.UserAgent
	return entry
}
