package models

import "time"

// VitalsRecordModel represents the database persistence model for vitals
// measurements. Append-only.
type VitalsRecordModel struct {
	ID            uint      `gorm:"primarykey"`
	UserID        uint      `gorm:"not null;index:idx_vitals_user_time,priority:1"`
	VitalType     string    `gorm:"not null;size:30"`
	Value         float64   `gorm:"not null"`
	Unit          string    `gorm:"not null;size:20"`
	MeasuredAt    time.Time `gorm:"not null;index:idx_vitals_user_time,priority:2"`
	SourceEventID string    `gorm:"size:36"`
	CreatedAt     time.Time
}

// TableName specifies the table name for GORM
func (VitalsRecordModel) TableName() string {
	return "vitals_records"
}

// MoodRecordModel represents the database persistence model for mood logs.
type MoodRecordModel struct {
	ID            uint      `gorm:"primarykey"`
	UserID        uint      `gorm:"not null;index:idx_mood_user_time,priority:1"`
	MoodScale     int       `gorm:"not null"`
	Notes         string    `gorm:"size:500"`
	LoggedAt      time.Time `gorm:"not null;index:idx_mood_user_time,priority:2"`
	SourceEventID string    `gorm:"size:36"`
	CreatedAt     time.Time
}

// TableName specifies the table name for GORM
func (MoodRecordModel) TableName() string {
	return "mood_records"
}

// WaterRecordModel represents the database persistence model for water
// intake logs.
type WaterRecordModel struct {
	ID            uint      `gorm:"primarykey"`
	UserID        uint      `gorm:"not null;index:idx_water_user_time,priority:1"`
	AmountML      int       `gorm:"not null"`
	LoggedAt      time.Time `gorm:"not null;index:idx_water_user_time,priority:2"`
	SourceEventID string    `gorm:"size:36"`
	CreatedAt     time.Time
}

// TableName specifies the table name for GORM
func (WaterRecordModel) TableName() string {
	return "water_records"
}
