package models

import "time"

// AnchorRecordModel represents the database persistence model for
// blockchain anchor records. One row per complaint; the unique index on
// ComplaintID is what enforces a single in-flight anchor per complaint.
type AnchorRecordModel struct {
	ID            uint       `gorm:"primarykey"`
	SID           string     `gorm:"uniqueIndex;not null;size:32"`
	ComplaintID   uint       `gorm:"uniqueIndex;not null"`
	ComplaintHash string     `gorm:"not null;size:64"`
	SLAHash       string     `gorm:"not null;size:64"`
	StatusHash    string     `gorm:"not null;size:64"`
	StatusNonce   uint64     `gorm:"not null;default:1"`
	Operation     string     `gorm:"not null;size:10"`
	Status        string     `gorm:"not null;size:10;index:idx_anchor_due,priority:1"`
	TxHash        *string    `gorm:"size:66"`
	Attempts      int        `gorm:"not null;default:0"`
	NextAttemptAt *time.Time `gorm:"index:idx_anchor_due,priority:2"`
	LastError     *string    `gorm:"size:500"`
	AnchoredAt    *time.Time
	CreatedAtTS   time.Time `gorm:"not null"`
	UpdatedAtTS   time.Time `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (AnchorRecordModel) TableName() string {
	return "anchor_records"
}
