package models

import "time"

type AvailabilitySchedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MentorID uint `gorm:"uniqueIndex" json:"mentor_id"`

	Timezone string `gorm:"size:64;default:'UTC'" json:"timezone"`

	DefaultSessionMinutes  int `gorm:"default:60" json:"default_session_minutes"`
	BufferMinutes          int `gorm:"default:0" json:"buffer_minutes"`
	MinAdvanceBookingHours int `gorm:"default:12" json:"min_advance_booking_hours"`
	MaxAdvanceBookingDays  int `gorm:"default:60" json:"max_advance_booking_days"`

	InstantBooking      bool `gorm:"default:true" json:"instant_booking"`
	RequireConfirmation bool `gorm:"default:false" json:"require_confirmation"`
	IsActive            bool `gorm:"default:true" json:"is_active"`

	WeeklyPatterns []WeeklyPattern `gorm:"foreignKey:ScheduleID" json:"weekly_patterns"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
