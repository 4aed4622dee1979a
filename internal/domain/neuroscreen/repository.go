package neuroscreen

import "context"

// Repository defines the interface for screening result persistence.
type Repository interface {
	Create(ctx context.Context, result *Result) error
	GetBySID(ctx context.Context, sid string) (*Result, error)
	DeleteByUser(ctx context.Context, ownerID uint) error
}
