package models

import "time"

// MVRefreshLogModel records the last completed rebuild of each
// materialized view. Freshness checks read this row, never the wall clock
// at rebuild time.
type MVRefreshLogModel struct {
	ID          uint      `gorm:"primarykey"`
	ViewName    string    `gorm:"uniqueIndex;not null;size:50"`
	RefreshedAt time.Time `gorm:"not null"`
	RowCount    int64     `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (MVRefreshLogModel) TableName() string {
	return "mv_refresh_log"
}
