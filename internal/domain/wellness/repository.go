package wellness

import (
	"context"
	"time"
)

// Repository defines the interface for wellness record persistence.
type Repository interface {
	// CreateVitals inserts a vitals measurement row.
	CreateVitals(ctx context.Context, record *VitalsRecord) error

	// CreateMood inserts a mood log row.
	CreateMood(ctx context.Context, record *MoodRecord) error

	// CreateWater inserts a water intake row.
	CreateWater(ctx context.Context, record *WaterRecord) error

	// Summarize aggregates a user's records inside [from, to).
	Summarize(ctx context.Context, userID uint, from, to time.Time) (*DailySummary, error)

	// ListVitals returns a page of the user's vitals, newest first.
	ListVitals(ctx context.Context, userID uint, page, pageSize int) ([]*VitalsRecord, int64, error)

	// DeleteByUser removes the user's wellness rows during right-to-erasure.
	DeleteByUser(ctx context.Context, userID uint) error
}
