package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnalyticsEventModel represents the database persistence model for the
// per-emission audit rows. UserID exists for audit only and is nulled on
// erasure; the payload is de-identified before it reaches this row.
type AnalyticsEventModel struct {
	ID        uint           `gorm:"primarykey"`
	SID       string         `gorm:"uniqueIndex;not null;size:32"`
	UserID    *uint          `gorm:"index"`
	EventType string         `gorm:"not null;size:40;index"`
	Payload   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"index"`
}

// TableName specifies the table name for GORM
func (AnalyticsEventModel) TableName() string {
	return "analytics_events"
}

// AggregatedEventModel represents the database persistence model for
// analytics counter cells. The composite unique index is the aggregation
// key; flushes upsert against it.
type AggregatedEventModel struct {
	ID          uint      `gorm:"primarykey"`
	EventType   string    `gorm:"not null;size:40;uniqueIndex:idx_agg_cell,priority:1"`
	Category    string    `gorm:"not null;size:30;uniqueIndex:idx_agg_cell,priority:2"`
	TimeBucket  time.Time `gorm:"not null;uniqueIndex:idx_agg_cell,priority:3"`
	GeoCell     string    `gorm:"not null;size:20;uniqueIndex:idx_agg_cell,priority:4"`
	AgeBucket   string    `gorm:"not null;size:10;uniqueIndex:idx_agg_cell,priority:5"`
	Gender      string    `gorm:"not null;size:10;uniqueIndex:idx_agg_cell,priority:6"`
	Count       int64     `gorm:"not null;default:0"`
	FirstSeen   time.Time `gorm:"not null"`
	LastUpdated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (AggregatedEventModel) TableName() string {
	return "aggregated_analytics_events"
}
