package models

import (
	"time"

	"gorm.io/datatypes"
)

// TriageSessionModel represents the database persistence model for triage
// sessions. Sessions are immutable once written.
type TriageSessionModel struct {
	ID           uint   `gorm:"primarykey"`
	SID          string `gorm:"uniqueIndex;not null;size:32"`
	OwnerID      uint   `gorm:"not null;index"`
	SymptomsText string `gorm:"type:text;not null"`
	Age          int
	Sex          string `gorm:"size:10"`
	Pregnancy    bool   `gorm:"not null;default:false"`
	Language     string `gorm:"size:10"`
	Category     string `gorm:"not null;size:20;index"`
	RedFlags     datatypes.JSON
	GuidanceText string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"index"`
}

// TableName specifies the table name for GORM
func (TriageSessionModel) TableName() string {
	return "triage_sessions"
}
