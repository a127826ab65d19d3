package models

import "time"

// SessionAuditLog is append-only. Entries are never updated or deleted;
// the policy snapshot records which rule produced a refund.
type SessionAuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SessionID   uint   `gorm:"index" json:"session_id"`
	ActorUserID *uint  `json:"actor_user_id"`
	ActorRole   string `gorm:"size:10" json:"actor_role"`

	Action  string `gorm:"size:50;not null" json:"action"`
	Details string `gorm:"type:text" json:"details"`

	PolicySnapshot string `gorm:"type:jsonb" json:"policy_snapshot"`

	OldScheduledAt *time.Time `json:"old_scheduled_at"`
	NewScheduledAt *time.Time `json:"new_scheduled_at"`

	IPAddress string `gorm:"size:45" json:"ip_address"`
	UserAgent string `gorm:"size:255" json:"user_agent"`

	CreatedAt time.Time `json:"created_at"`
}
