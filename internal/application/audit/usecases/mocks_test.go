package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type mockAuditRepository struct {
	AppendFunc    func(ctx context.Context, entry *audit.Entry) error
	HeadFunc      func(ctx context.Context) (uint64, string, error)
	GetBySeqFunc  func(ctx context.Context, seq uint64) (*audit.Entry, error)
	ListRangeFunc func(ctx context.Context, fromSeq, toSeq uint64) ([]*audit.Entry, error)
	ListFunc      func(ctx context.Context, filter audit.ListFilter) ([]*audit.Entry, int64, error)
}

func (m *mockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	return nil
}

func (m *mockAuditRepository) Head(ctx context.Context) (uint64, string, error) {
	if m.HeadFunc != nil {
		return m.HeadFunc(ctx)
	}
	return 0, audit.GenesisPrevHash, nil
}

func (m *mockAuditRepository) GetBySeq(ctx context.Context, seq uint64) (*audit.Entry, error) {
	if m.GetBySeqFunc != nil {
		return m.GetBySeqFunc(ctx, seq)
	}
	return nil, apperrors.NewNotFoundError("audit entry not found")
}

func (m *mockAuditRepository) ListRange(ctx context.Context, fromSeq, toSeq uint64) ([]*audit.Entry, error) {
	if m.ListRangeFunc != nil {
		return m.ListRangeFunc(ctx, fromSeq, toSeq)
	}
	return nil, nil
}

func (m *mockAuditRepository) List(ctx context.Context, filter audit.ListFilter) ([]*audit.Entry, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}
