package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/outbox"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type mockMessageRepository struct {
	CreateFunc        func(ctx context.Context, message *outbox.Message) error
	GetBySIDFunc      func(ctx context.Context, sid string) (*outbox.Message, error)
	UpdateFunc        func(ctx context.Context, message *outbox.Message) error
	ListPendingFunc   func(ctx context.Context, limit int) ([]*outbox.Message, error)
	CountByStatusFunc func(ctx context.Context, status outbox.Status) (int64, error)
	DeleteByUserFunc  func(ctx context.Context, userID uint) error

	Pending []*outbox.Message
	Updated []*outbox.Message
}

func (m *mockMessageRepository) Create(ctx context.Context, message *outbox.Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, message)
	}
	return nil
}

func (m *mockMessageRepository) GetBySID(ctx context.Context, sid string) (*outbox.Message, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("message not found")
}

func (m *mockMessageRepository) Update(ctx context.Context, message *outbox.Message) error {
	m.Updated = append(m.Updated, message)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, message)
	}
	return nil
}

func (m *mockMessageRepository) ListPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx, limit)
	}
	if len(m.Pending) > limit {
		return m.Pending[:limit], nil
	}
	return m.Pending, nil
}

func (m *mockMessageRepository) CountByStatus(ctx context.Context, status outbox.Status) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

func (m *mockMessageRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if m.DeleteByUserFunc != nil {
		return m.DeleteByUserFunc(ctx, userID)
	}
	return nil
}

type mockSender struct {
	SendFunc func(ctx context.Context, msg *outbox.Message) error

	Sent []string
}

func (m *mockSender) Send(ctx context.Context, msg *outbox.Message) error {
	m.Sent = append(m.Sent, msg.SID())
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}
