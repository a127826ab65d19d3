package session

import (
	"time"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
)

// SchedulingState is the explicit variant behind the session's three
// nullable pending-reschedule columns: a scheduled session is either
// confirmed or carrying exactly one open reschedule negotiation.
type SchedulingState struct {
	Kind         SchedulingKind
	RequestID    uint
	ProposedTime time.Time
	ProposedBy   Role
}

type SchedulingKind string

const (
	SchedulingConfirmed         SchedulingKind = "confirmed"
	SchedulingPendingReschedule SchedulingKind = "pending_reschedule"
)

func SchedulingStateOf(s *models.Session) SchedulingState {
	if s.PendingRescheduleRequestID == nil {
		return SchedulingState{Kind: SchedulingConfirmed}
	}

	st := SchedulingState{
		Kind:      SchedulingPendingReschedule,
		RequestID: *s.PendingRescheduleRequestID,
	}
	if s.PendingRescheduleTime != nil {
		st.ProposedTime = *s.PendingRescheduleTime
	}
	if s.PendingRescheduleBy != nil {
		st.ProposedBy = Role(*s.PendingRescheduleBy)
	}
	return st
}

// SetPendingReschedule mirrors an open request onto the session.
func SetPendingReschedule(s *models.Session, requestID uint, proposedTime time.Time, proposedBy Role) {
	id := requestID
	t := proposedTime
	by := string(proposedBy)
	s.PendingRescheduleRequestID = &id
	s.PendingRescheduleTime = &t
	s.PendingRescheduleBy = &by
}

// ClearPendingReschedule returns the session to the confirmed state.
func ClearPendingReschedule(s *models.Session) {
	s.PendingRescheduleRequestID = nil
	s.PendingRescheduleTime = nil
	s.PendingRescheduleBy = nil
}
