package triage

import "context"

// ListFilter defines filtering options for listing triage sessions.
type ListFilter struct {
	OwnerID  *uint
	Category *Category
	Page     int
	PageSize int
}

// Repository defines the interface for triage session persistence.
type Repository interface {
	Create(ctx context.Context, session *Session) error
	GetBySID(ctx context.Context, sid string) (*Session, error)
	List(ctx context.Context, filter ListFilter) ([]*Session, int64, error)
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
	DeleteByUser(ctx context.Context, ownerID uint) error
}
