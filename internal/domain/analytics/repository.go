package analytics

import (
	"context"
	"time"
)

// DefaultKThreshold is the minimum cell count a query result may expose.
const DefaultKThreshold = 5

// QueryFilter narrows an aggregate query. MinCount is the k-anonymity
// floor and is applied to every query without exception.
type QueryFilter struct {
	EventType *EventType
	Category  *string
	GeoCell   *string
	From      *time.Time
	To        *time.Time
	MinCount  int64
}

// EventRepository persists the per-emission audit rows.
type EventRepository interface {
	Create(ctx context.Context, event *StoredEvent) error
	CountByUser(ctx context.Context, userID uint) (int64, error)
	// AnonymizeByUser severs the audit link on erasure. The de-identified
	// rows themselves are retained.
	AnonymizeByUser(ctx context.Context, userID uint) error
}

// AggregateRepository persists the counter cells.
type AggregateRepository interface {
	// UpsertBatch folds a drained buffer into storage, incrementing
	// counts for cells that already exist.
	UpsertBatch(ctx context.Context, batch Batch) error
	Query(ctx context.Context, filter QueryFilter) ([]*Aggregate, error)
	CountCells(ctx context.Context) (int64, error)
}
