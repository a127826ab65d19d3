package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	BlockAvailable = "AVAILABLE"
	BlockBreak     = "BREAK"
	BlockBuffer    = "BUFFER"
	BlockBlocked   = "BLOCKED"
)

// TimeBlock is a labeled sub-interval of a day, wall-clock HH:MM bounds.
type TimeBlock struct {
	StartTime   string `json:"start_time" binding:"required,hhmm"`
	EndTime     string `json:"end_time" binding:"required,hhmm"`
	Type        string `json:"type" binding:"required,oneof=AVAILABLE BREAK BUFFER BLOCKED"`
	MaxBookings *int   `json:"max_bookings,omitempty"`
}

type TimeBlockList []TimeBlock

func (l TimeBlockList) Value() (driver.Value, error) {
	if l == nil {
		l = TimeBlockList{}
	}
	return json.Marshal(l)
}

func (l *TimeBlockList) Scan(value any) error {
	if value == nil {
		*l = TimeBlockList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported time block column type")
	}
}

type WeeklyPattern struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ScheduleID uint `gorm:"index:idx_pattern_schedule_day,unique" json:"schedule_id"`
	DayOfWeek  int  `gorm:"index:idx_pattern_schedule_day,unique" json:"day_of_week"`

	Enabled    bool          `gorm:"default:true" json:"enabled"`
	TimeBlocks TimeBlockList `gorm:"type:jsonb" json:"time_blocks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
