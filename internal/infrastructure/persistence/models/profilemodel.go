package models

import "time"

// ProfileModel represents the database persistence model for citizen profiles.
// One row per user; concurrent sync writes resolve by last-write-wins before
// this row is touched.
type ProfileModel struct {
	ID          uint      `gorm:"primarykey"`
	UserID      uint      `gorm:"uniqueIndex;not null"`
	NameAlias   string    `gorm:"size:100"`
	DOB         string    `gorm:"size:10"`
	Sex         string    `gorm:"size:10"`
	Pincode     string    `gorm:"size:10;index"`
	ClientTime  time.Time `gorm:"index"`
	LastEventID string    `gorm:"size:36"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}
