package models

import (
	"time"

	"gorm.io/datatypes"
)

// NeuroscreenResultModel represents the database persistence model for
// screening results. Results are immutable once written.
type NeuroscreenResultModel struct {
	ID                uint   `gorm:"primarykey"`
	SID               string `gorm:"uniqueIndex;not null;size:32"`
	OwnerID           uint   `gorm:"not null;index"`
	Instrument        string `gorm:"not null;size:100"`
	InstrumentVersion string `gorm:"not null;size:20"`
	Responses         datatypes.JSON
	RawScore          int       `gorm:"not null"`
	Band              string    `gorm:"not null;size:10;index"`
	GuidanceText      string    `gorm:"type:text"`
	CreatedAt         time.Time `gorm:"index"`
}

// TableName specifies the table name for GORM
func (NeuroscreenResultModel) TableName() string {
	return "neuroscreen_results"
}
