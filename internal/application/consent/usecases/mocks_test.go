package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/consent"
)

type mockConsentRepository struct {
	CreateFunc            func(ctx context.Context, record *consent.Record) error
	GetCurrentFunc        func(ctx context.Context, userID uint, category consent.Category, scope consent.Scope, at time.Time) (*consent.Record, error)
	ListCurrentByUserFunc func(ctx context.Context, userID uint) ([]*consent.Record, error)
	ListHistoryByUserFunc func(ctx context.Context, userID uint, page, pageSize int) ([]*consent.Record, int64, error)
	DeleteByUserFunc      func(ctx context.Context, userID uint) error
}

func (m *mockConsentRepository) Create(ctx context.Context, record *consent.Record) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	return record.SetID(1)
}

func (m *mockConsentRepository) GetCurrent(ctx context.Context, userID uint, category consent.Category, scope consent.Scope, at time.Time) (*consent.Record, error) {
	if m.GetCurrentFunc != nil {
		return m.GetCurrentFunc(ctx, userID, category, scope, at)
	}
	return nil, nil
}

func (m *mockConsentRepository) ListCurrentByUser(ctx context.Context, userID uint) ([]*consent.Record, error) {
	if m.ListCurrentByUserFunc != nil {
		return m.ListCurrentByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockConsentRepository) ListHistoryByUser(ctx context.Context, userID uint, page, pageSize int) ([]*consent.Record, int64, error) {
	if m.ListHistoryByUserFunc != nil {
		return m.ListHistoryByUserFunc(ctx, userID, page, pageSize)
	}
	return nil, 0, nil
}

func (m *mockConsentRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if m.DeleteByUserFunc != nil {
		return m.DeleteByUserFunc(ctx, userID)
	}
	return nil
}

type mockTxManager struct {
	RunFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockAuditor struct {
	AppendFunc func(ctx context.Context, rec audit.Record) (*audit.Entry, error)
	Records    []audit.Record
}

func (m *mockAuditor) Append(ctx context.Context, rec audit.Record) (*audit.Entry, error) {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, rec)
	}
	m.Records = append(m.Records, rec)
	return nil, nil
}
