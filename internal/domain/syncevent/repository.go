package syncevent

import "context"

// Repository defines the interface for the sync event log.
type Repository interface {
	// Create inserts a processed envelope with its outcome.
	Create(ctx context.Context, event *Event) error

	// GetByEventID retrieves an envelope by its device-assigned UUID,
	// or nil when the event has never been seen.
	GetByEventID(ctx context.Context, eventID string) (*Event, error)

	// ListByUser returns a page of the user's sync history, newest first.
	ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]*Event, int64, error)

	// DeleteByUser removes the user's sync log during right-to-erasure.
	DeleteByUser(ctx context.Context, userID uint) error
}
