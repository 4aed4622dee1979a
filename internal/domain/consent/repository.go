package consent

import (
	"context"
	"time"
)

// Repository defines the interface for consent record operations.
// Records are append-only; there is no update or delete of individual receipts.
type Repository interface {
	// Create appends a consent receipt
	Create(ctx context.Context, record *Record) error

	// GetCurrent returns the newest receipt for (user, category, scope) with
	// grantedAt at or before the given instant, or nil when none exists
	GetCurrent(ctx context.Context, userID uint, category Category, scope Scope, at time.Time) (*Record, error)

	// ListCurrentByUser returns the newest receipt per (category, scope) for a user
	ListCurrentByUser(ctx context.Context, userID uint) ([]*Record, error)

	// ListHistoryByUser returns every receipt for a user, newest first
	ListHistoryByUser(ctx context.Context, userID uint, page, pageSize int) ([]*Record, int64, error)

	// DeleteByUser removes all receipts for a user during right-to-erasure
	DeleteByUser(ctx context.Context, userID uint) error
}

// Checker answers consent questions for handlers and the analytics gate.
// Implementations must read committed state on every call; a granted result
// is never cached across a request boundary.
type Checker interface {
	// IsGranted reports whether the user currently grants category+scope
	// under the active consent document version
	IsGranted(ctx context.Context, userID uint, category Category, scope Scope) (bool, error)

	// Require returns a ConsentMissing error when the grant is absent
	Require(ctx context.Context, userID uint, category Category, scope Scope) error
}
