package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/policy"
)

// Recorder appends SessionAuditLog rows. Refund-bearing actions bypass the
// dispatcher and are written inside the owning transaction instead.
type Recorder struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Log(entry *models.SessionAuditLog) error {
	return r.db.Create(entry).Error
}

// Entry builds an audit row with the policy snapshot serialized verbatim.
func Entry(
	sessionID uint,
	actorUserID uint,
	actorRole string,
	action string,
	snapshot policy.Snapshot,
	details any,
) *models.SessionAuditLog {

	var detailJSON string
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			detailJSON = string(b)
		}
	}

	snapJSON, _ := json.Marshal(snapshot)

	actorID := actorUserID
	return &models.SessionAuditLog{
		SessionID:      sessionID,
		ActorUserID:    &actorID,
		ActorRole:      actorRole,
		Action:         action,
		Details:        detailJSON,
		PolicySnapshot: string(snapJSON),
	}
}
