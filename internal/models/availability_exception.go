package models

import "time"

const (
	ExceptionUnavailable = "UNAVAILABLE"
	ExceptionCustomHours = "CUSTOM_HOURS"
)

// AvailabilityException overrides the weekly pattern for a date range
// (holidays, vacations, one-off custom hours).
type AvailabilityException struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ScheduleID uint `gorm:"index" json:"schedule_id"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Type   string `gorm:"size:20;default:'UNAVAILABLE'" json:"type"`
	Reason string `gorm:"size:255" json:"reason"`

	// When set on a CUSTOM_HOURS exception these replace the weekly
	// pattern's blocks for every day in the range.
	TimeBlocks TimeBlockList `gorm:"type:jsonb" json:"time_blocks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
