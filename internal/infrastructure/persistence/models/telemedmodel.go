package models

import (
	"time"

	"gorm.io/datatypes"
)

// TeleRequestModel represents the database persistence model for
// teleconsultation requests.
type TeleRequestModel struct {
	ID             uint    `gorm:"primarykey"`
	SID            string  `gorm:"uniqueIndex;not null;size:32"`
	CitizenID      uint    `gorm:"not null;index"`
	ClinicianID    *uint   `gorm:"index"`
	SymptomSummary string  `gorm:"type:text;not null"`
	PreferredTime  *string `gorm:"size:50"`
	Status         string  `gorm:"not null;size:20;index"`
	Version        int     `gorm:"not null;default:1"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (TeleRequestModel) TableName() string {
	return "tele_requests"
}

// PrescriptionModel represents the database persistence model for
// prescriptions. Items are stored as a JSON array.
type PrescriptionModel struct {
	ID            uint           `gorm:"primarykey"`
	SID           string         `gorm:"uniqueIndex;not null;size:32"`
	TeleRequestID uint           `gorm:"not null;index"`
	CitizenID     uint           `gorm:"not null;index"`
	ClinicianID   uint           `gorm:"not null;index"`
	Items         datatypes.JSON `gorm:"not null"`
	SummaryText   string         `gorm:"size:320;not null"`
	CreatedAt     time.Time
}

// TableName specifies the table name for GORM
func (PrescriptionModel) TableName() string {
	return "prescriptions"
}
