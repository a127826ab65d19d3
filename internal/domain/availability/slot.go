package availability

import "time"

const (
	// SlotReasonBooked marks a slot covered by an existing session.
	SlotReasonBooked = "booked"
	// SlotReasonClosed marks a slot removed by an exception.
	SlotReasonClosed = "closed"
)

// Slot is one bookable tick on the mentor's grid. Unavailable slots carry
// a reason so clients can render "booked" and "closed" distinctly.
type Slot struct {
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}
