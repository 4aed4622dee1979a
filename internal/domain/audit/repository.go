package audit

import "context"

// Repository defines the interface for audit chain persistence.
// Appends happen inside the same transaction as the domain write they record;
// implementations serialize sequence allocation with a row-level lock.
type Repository interface {
	// Append inserts the next chain entry. The entry's seq and prev_hash
	// must have been derived under Head's lock in the same transaction.
	Append(ctx context.Context, entry *Entry) error

	// Head returns the current max sequence and its entry hash, locking the
	// chain head for the remainder of the transaction. A fresh chain returns
	// (0, GenesisPrevHash).
	Head(ctx context.Context) (seq uint64, entryHash string, err error)

	// GetBySeq retrieves a single entry.
	GetBySeq(ctx context.Context, seq uint64) (*Entry, error)

	// ListRange returns entries with fromSeq <= seq <= toSeq in ascending order.
	ListRange(ctx context.Context, fromSeq, toSeq uint64) ([]*Entry, error)

	// List returns a filtered page of entries, newest first, with total count.
	List(ctx context.Context, filter ListFilter) ([]*Entry, int64, error)
}

// ListFilter represents filtering and pagination options for audit log reads.
type ListFilter struct {
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	ActorID    string `json:"actor_id,omitempty"`
	Action     string `json:"action,omitempty"`
	EntityType string `json:"entity_type,omitempty"`
	EntityID   string `json:"entity_id,omitempty"`
}
