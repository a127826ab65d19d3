package session

import (
	"time"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httperr"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
)

// ===============================
// Reschedule Request Status
// ===============================

type RequestStatus string

const (
	RequestPending         RequestStatus = "pending"
	RequestAccepted        RequestStatus = "accepted"
	RequestRejected        RequestStatus = "rejected"
	RequestCounterProposed RequestStatus = "counter_proposed"
	RequestCancelled       RequestStatus = "cancelled"
	RequestExpired         RequestStatus = "expired"
)

// Open means the request still accepts a response. counter_proposed is not
// terminal; it re-enters review by the other party.
func Open(status RequestStatus) bool {
	return status == RequestPending || status == RequestCounterProposed
}

// RequestExpiredAt reports whether an open request has outlived expires_at.
func RequestExpiredAt(req *models.RescheduleRequest, now time.Time) bool {
	return Open(RequestStatus(req.Status)) && now.After(req.ExpiresAt)
}

// ExpectedResponder is the role whose turn it is: the non-initiator while
// pending, then whoever did not make the last counter-proposal.
func ExpectedResponder(req *models.RescheduleRequest) Role {
	if RequestStatus(req.Status) == RequestCounterProposed && req.CounterProposedBy != nil {
		return Role(*req.CounterProposedBy).Other()
	}
	return Role(req.InitiatedBy).Other()
}

// CanRespond validates that the caller may act on the request right now.
func CanRespond(req *models.RescheduleRequest, responder Role, now time.Time) error {
	if !Open(RequestStatus(req.Status)) {
		return httperr.ErrBusiness("request_already_resolved")
	}
	if RequestExpiredAt(req, now) {
		return httperr.ErrBusiness("request_expired")
	}
	if ExpectedResponder(req) != responder {
		return httperr.ErrBusiness("not_your_turn")
	}
	return nil
}

// CanCounter is CanRespond relaxed for counter-proposals: the author of the
// standing counter may amend it before the other side answers. Each
// amendment still counts against the counter-proposal cap.
func CanCounter(req *models.RescheduleRequest, responder Role, now time.Time) error {
	if ownsStandingCounter(req, responder) {
		if RequestExpiredAt(req, now) {
			return httperr.ErrBusiness("request_expired")
		}
		return nil
	}
	return CanRespond(req, responder, now)
}

func ownsStandingCounter(req *models.RescheduleRequest, r Role) bool {
	return RequestStatus(req.Status) == RequestCounterProposed &&
		req.CounterProposedBy != nil &&
		Role(*req.CounterProposedBy) == r
}

// TimeOnTheTable is the proposal currently awaiting a response.
func TimeOnTheTable(req *models.RescheduleRequest) time.Time {
	if RequestStatus(req.Status) == RequestCounterProposed && req.CounterProposedTime != nil {
		return *req.CounterProposedTime
	}
	return req.ProposedTime
}

// ===============================
// Transitions
// ===============================

// AcceptReschedule applies the time on the table to the session, clears
// the pending pointers, and bumps the initiator's reschedule counter.
func AcceptReschedule(req *models.RescheduleRequest, s *models.Session, resolver Role, resolverID uint, now time.Time) {
	newTime := TimeOnTheTable(req)
	s.ScheduledAt = newTime
	if req.ProposedDurationMinutes > 0 {
		s.DurationMinutes = req.ProposedDurationMinutes
	}
	ClearPendingReschedule(s)

	if Role(req.InitiatedBy) == RoleMentor {
		s.MentorRescheduleCount++
	} else {
		s.MenteeRescheduleCount++
	}

	resolve(req, RequestAccepted, resolver, resolverID, now)
}

// RejectReschedule leaves scheduled_at untouched and only clears the
// pending pointers.
func RejectReschedule(req *models.RescheduleRequest, s *models.Session, resolver Role, resolverID uint, now time.Time) {
	ClearPendingReschedule(s)
	resolve(req, RequestRejected, resolver, resolverID, now)
}

// CounterPropose swaps the proposal, bounded by maxCounterProposals, and
// extends the expiry window from now.
func CounterPropose(req *models.RescheduleRequest, s *models.Session, by Role, counterTime time.Time, now time.Time, expiryHours, maxCounterProposals int) error {
	if req.CounterProposalCount >= maxCounterProposals {
		return httperr.ErrBusiness("counter_proposal_limit_reached")
	}

	byStr := string(by)
	t := counterTime
	req.Status = string(RequestCounterProposed)
	req.CounterProposedTime = &t
	req.CounterProposedBy = &byStr
	req.CounterProposalCount++
	req.ExpiresAt = now.Add(time.Duration(expiryHours) * time.Hour)

	SetPendingReschedule(s, req.ID, counterTime, by)
	return nil
}

// CancelViaReschedule is the mentee escape hatch: terminates the request
// and the session together. Refund handling stays with the caller.
func CancelViaReschedule(req *models.RescheduleRequest, s *models.Session, resolverID uint, now time.Time) {
	ClearPendingReschedule(s)
	resolve(req, RequestCancelled, RoleMentee, resolverID, now)
}

// Expire forces an overdue open request into its terminal state.
func Expire(req *models.RescheduleRequest, s *models.Session, now time.Time) {
	ClearPendingReschedule(s)
	req.Status = string(RequestExpired)
	t := now
	req.ResolvedAt = &t
}

func resolve(req *models.RescheduleRequest, status RequestStatus, by Role, byID uint, now time.Time) {
	byStr := string(by)
	id := byID
	t := now
	req.Status = string(status)
	req.ResolvedBy = &byStr
	req.ResolverID = &id
	req.ResolvedAt = &t
}
