package models

import "time"

// ConsentRecordModel represents the database persistence model for consent
// receipts. Rows are append-only; the current state of a (user, category,
// scope) triple is its newest row.
type ConsentRecordModel struct {
	ID              uint      `gorm:"primarykey"`
	SID             string    `gorm:"uniqueIndex;not null;size:32"`
	UserID          uint      `gorm:"not null;index:idx_consent_lookup,priority:1"`
	Category        string    `gorm:"not null;size:30;index:idx_consent_lookup,priority:2"`
	Scope           string    `gorm:"not null;size:30;index:idx_consent_lookup,priority:3"`
	DocumentVersion string    `gorm:"not null;size:20"`
	Granted         bool      `gorm:"not null"`
	GrantedAt       time.Time `gorm:"not null;index:idx_consent_lookup,priority:4"`
	CreatedAt       time.Time
}

// TableName specifies the table name for GORM
func (ConsentRecordModel) TableName() string {
	return "consent_records"
}
