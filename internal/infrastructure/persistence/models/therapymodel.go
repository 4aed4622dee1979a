package models

import (
	"time"

	"gorm.io/datatypes"
)

// TherapyModuleModel represents the database persistence model for
// therapy modules. Steps are stored inline as an ordered JSON array.
type TherapyModuleModel struct {
	ID          uint   `gorm:"primarykey"`
	SID         string `gorm:"uniqueIndex;not null;size:32"`
	Title       string `gorm:"not null;size:200"`
	Description string `gorm:"type:text"`
	ModuleType  string `gorm:"not null;size:50;index"`
	AgeRangeMin *int
	AgeRangeMax *int
	Steps       datatypes.JSON `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"index"`
}

// TableName specifies the table name for GORM
func (TherapyModuleModel) TableName() string {
	return "therapy_modules"
}

// TherapyPackModel represents the database persistence model for built
// pack archives. The checksum is the SHA-256 of the stored ZIP.
type TherapyPackModel struct {
	ID          uint   `gorm:"primarykey"`
	SID         string `gorm:"uniqueIndex;not null;size:32"`
	ModuleID    uint   `gorm:"not null;index"`
	Title       string `gorm:"not null;size:220"`
	Description string `gorm:"type:text"`
	Version     string `gorm:"not null;size:20"`
	Checksum    string `gorm:"not null;size:64"`
	ObjectKey   string `gorm:"not null;size:64"`
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM
func (TherapyPackModel) TableName() string {
	return "therapy_packs"
}
