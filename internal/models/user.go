package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'mentee'" json:"role"`

	// Mentor profile (zero-valued for mentees)
	Headline    string `gorm:"size:255" json:"headline"`
	HourlyRate  string `gorm:"type:numeric(10,2);default:0" json:"hourly_rate"`
	Currency    string `gorm:"size:3;default:'USD'" json:"currency"`
	IsAvailable bool   `gorm:"default:true" json:"is_available"`
	Timezone    string `gorm:"size:64" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
