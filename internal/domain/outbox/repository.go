package outbox

import "context"

// Repository defines the interface for outbound message persistence.
type Repository interface {
	Create(ctx context.Context, message *Message) error
	GetBySID(ctx context.Context, sid string) (*Message, error)
	Update(ctx context.Context, message *Message) error
	// ListPending returns pending messages oldest first, up to limit.
	ListPending(ctx context.Context, limit int) ([]*Message, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	DeleteByUser(ctx context.Context, userID uint) error
}
