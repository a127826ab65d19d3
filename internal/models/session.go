package models

import "time"

type Session struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MentorID uint `gorm:"index" json:"mentor_id"`
	Mentor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"mentor"`

	MenteeID uint `gorm:"index" json:"mentee_id"`
	Mentee   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"mentee"`

	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"size:1000" json:"description"`

	ScheduledAt     time.Time `gorm:"index" json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	MeetingType     string    `gorm:"size:20;default:'video'" json:"meeting_type"`
	Location        string    `gorm:"size:255" json:"location"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	// Price snapshot taken at booking time; decimal strings, never floats.
	Rate     string `gorm:"type:numeric(10,2);default:0" json:"rate"`
	Currency string `gorm:"size:3;default:'USD'" json:"currency"`

	// Cancellation
	CancelledBy        *string    `gorm:"size:10" json:"cancelled_by"`
	CancellationReason *string    `gorm:"size:600" json:"cancellation_reason"`
	RefundPercentage   *int       `json:"refund_percentage"`
	RefundAmount       *string    `gorm:"type:numeric(10,2)" json:"refund_amount"`
	RefundStatus       string     `gorm:"size:20;default:'none'" json:"refund_status"`
	CancelledAt        *time.Time `json:"cancelled_at"`

	// Reassignment
	WasReassigned          bool       `gorm:"default:false" json:"was_reassigned"`
	ReassignedFromMentorID *uint      `json:"reassigned_from_mentor_id"`
	ReassignedAt           *time.Time `json:"reassigned_at"`
	ReassignmentStatus     *string    `gorm:"size:30" json:"reassignment_status"`

	// Pending reschedule pointers, mirroring the open RescheduleRequest
	PendingRescheduleRequestID *uint      `json:"pending_reschedule_request_id"`
	PendingRescheduleTime      *time.Time `json:"pending_reschedule_time"`
	PendingRescheduleBy        *string    `gorm:"size:10" json:"pending_reschedule_by"`

	MentorRescheduleCount int `gorm:"default:0" json:"mentor_reschedule_count"`
	MenteeRescheduleCount int `gorm:"default:0" json:"mentee_reschedule_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
