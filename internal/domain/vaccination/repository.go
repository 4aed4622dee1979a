package vaccination

import "context"

// Repository defines the interface for vaccination record persistence.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	ListByOwner(ctx context.Context, ownerID uint) ([]*Record, error)
	DeleteByUser(ctx context.Context, ownerID uint) error
}
