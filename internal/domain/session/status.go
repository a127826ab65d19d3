package session

import "github.com/abdur-rahman-shawl/youngminds-sessions/internal/httperr"

// ===============================
// Session Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func InitialStatus() Status {
	return StatusScheduled
}

// IsTerminal reports whether no further lifecycle transition is allowed.
func IsTerminal(current Status) bool {
	return current == StatusCancelled || current == StatusCompleted
}

// ===============================
// Validations
// ===============================

// CanCancel gates both mentor- and mentee-initiated cancellation.
func CanCancel(current Status) error {
	switch current {
	case StatusCancelled:
		return httperr.ErrBusiness("already_cancelled")
	case StatusCompleted:
		return httperr.ErrBusiness("already_completed")
	case StatusInProgress:
		return httperr.ErrBusiness("session_in_progress")
	}
	return nil
}

// CanReschedule requires a live session with no other pending negotiation.
func CanReschedule(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
