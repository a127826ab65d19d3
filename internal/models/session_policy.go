package models

import "time"

// SessionPolicy is a flat key/value setting row. Values are strings in
// storage; the policy package parses them into a typed snapshot.
type SessionPolicy struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Key         string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value       string `gorm:"size:100;not null" json:"value"`
	Description string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
