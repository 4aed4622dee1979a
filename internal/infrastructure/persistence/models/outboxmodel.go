package models

import "time"

// OutboxMessageModel represents the database persistence model for queued
// SMS and email notifications.
type OutboxMessageModel struct {
	ID        uint    `gorm:"primarykey"`
	SID       string  `gorm:"uniqueIndex;not null;size:32"`
	UserID    uint    `gorm:"not null;index"`
	Channel   string  `gorm:"not null;size:10"`
	Recipient string  `gorm:"not null;size:255"`
	Payload   string  `gorm:"type:text;not null"`
	Status    string  `gorm:"not null;size:10;index"`
	Attempts  int     `gorm:"not null;default:0"`
	LastError *string `gorm:"size:500"`
	SentAt    *time.Time
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (OutboxMessageModel) TableName() string {
	return "outbox_messages"
}
