package models

import "time"

type RescheduleRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SessionID uint    `gorm:"index" json:"session_id"`
	Session   Session `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	InitiatedBy string `gorm:"size:10;not null" json:"initiated_by"`
	InitiatorID uint   `json:"initiator_id"`

	OriginalTime            time.Time `json:"original_time"`
	ProposedTime            time.Time `json:"proposed_time"`
	ProposedDurationMinutes int       `json:"proposed_duration_minutes"`
	Reason                  string    `gorm:"size:500" json:"reason"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CounterProposedTime  *time.Time `json:"counter_proposed_time"`
	CounterProposedBy    *string    `gorm:"size:10" json:"counter_proposed_by"`
	CounterProposalCount int        `gorm:"default:0" json:"counter_proposal_count"`

	ExpiresAt time.Time `json:"expires_at"`

	ResolvedBy *string    `gorm:"size:10" json:"resolved_by"`
	ResolverID *uint      `json:"resolver_id"`
	ResolvedAt *time.Time `json:"resolved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
