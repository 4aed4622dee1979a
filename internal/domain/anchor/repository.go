package anchor

import (
	"context"
	"time"
)

// Repository defines the interface for anchor record persistence. One record
// exists per complaint.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	GetBySID(ctx context.Context, sid string) (*Record, error)
	GetByComplaintID(ctx context.Context, complaintID uint) (*Record, error)
	Update(ctx context.Context, record *Record) error
	// ListDue returns pending records whose backoff window has elapsed,
	// oldest first, up to limit. In-flight records are never returned.
	ListDue(ctx context.Context, now time.Time, limit int) ([]*Record, error)
	// ListInFlight returns records claimed by a submission run, oldest
	// first. Outside a run these are strandings left by a crash.
	ListInFlight(ctx context.Context, limit int) ([]*Record, error)
	// ListFailed returns abandoned records, oldest first, up to limit.
	ListFailed(ctx context.Context, limit int) ([]*Record, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
