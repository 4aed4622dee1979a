package models

import "time"

// VaccinationRecordModel represents the database persistence model for
// administered doses. Records are append-only.
type VaccinationRecordModel struct {
	ID             uint   `gorm:"primarykey"`
	SID            string `gorm:"uniqueIndex;not null;size:32"`
	OwnerID        uint   `gorm:"not null;index"`
	VaccineName    string `gorm:"not null;size:100"`
	DoseNumber     int    `gorm:"not null"`
	AdministeredAt time.Time
	CreatedAt      time.Time `gorm:"index"`
}

// TableName specifies the table name for GORM
func (VaccinationRecordModel) TableName() string {
	return "vaccination_records"
}
