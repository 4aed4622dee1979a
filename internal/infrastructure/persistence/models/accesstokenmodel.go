package models

import "time"

// AccessTokenModel represents the database persistence model for opaque
// bearer tokens. Only the SHA-256 hash is stored.
type AccessTokenModel struct {
	ID         uint      `gorm:"primarykey"`
	UserID     uint      `gorm:"not null;index"`
	TokenHash  string    `gorm:"uniqueIndex;not null;size:64"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	RevokedAt  *time.Time
	LastUsedAt *time.Time
	CreatedAt  time.Time
}

// TableName specifies the table name for GORM
func (AccessTokenModel) TableName() string {
	return "access_tokens"
}
