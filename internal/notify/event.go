package notify

import (
	"time"

	"github.com/google/uuid"
)

// Event types consumed by the delivery service downstream.
const (
	EventBookingCreated    = "booking_created"
	EventBookingConfirmed  = "booking_confirmed"
	EventSessionCancelled  = "session_cancelled"
	EventCancelConfirmed   = "cancellation_confirmed"
	EventSessionReassigned = "session_reassigned"
	EventMentorReplaced    = "mentor_replaced"
	EventMentorAssigned    = "mentor_assigned"

	EventRescheduleProposed  = "reschedule_proposed"
	EventRescheduleAccepted  = "reschedule_accepted"
	EventRescheduleRejected  = "reschedule_rejected"
	EventRescheduleCountered = "reschedule_counter_proposed"
)

// Event is one "notify" message for one recipient. Delivery is an
// external concern; this service only publishes.
type Event struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	RecipientID uint           `json:"recipient_id"`
	SessionID   uint           `json:"session_id"`
	Message     string         `json:"message"`
	Data        map[string]any `json:"data,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func NewEvent(eventType string, recipientID, sessionID uint, message string) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		RecipientID: recipientID,
		SessionID:   sessionID,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}
}

func (e Event) With(key string, value any) Event {
	if e.Data == nil {
		e.Data = map[string]any{}
	}
	e.Data[key] = value
	return e
}
