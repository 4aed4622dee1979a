package models

import (
	"time"

	"gorm.io/datatypes"
)

// SyncEventModel represents the database persistence model for the sync
// ingestion log. EventID is the device-generated UUID; its unique index is
// what makes replays idempotent.
type SyncEventModel struct {
	ID         uint           `gorm:"primarykey"`
	EventID    string         `gorm:"uniqueIndex;not null;size:36"`
	DeviceID   string         `gorm:"not null;size:64"`
	UserID     uint           `gorm:"not null;index"`
	EntityType string         `gorm:"not null;size:20"`
	Operation  string         `gorm:"not null;size:10"`
	ClientTime time.Time      `gorm:"not null"`
	ServerTime time.Time      `gorm:"not null;index"`
	Payload    datatypes.JSON
	Outcome    string         `gorm:"size:50"`
	ServerID   string         `gorm:"size:32"`
}

// TableName specifies the table name for GORM
func (SyncEventModel) TableName() string {
	return "sync_events"
}
