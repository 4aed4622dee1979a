package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/consent"
	"github.com/sahay-inc/sahay/internal/domain/user"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type mockEventRepository struct {
	CreateFunc func(ctx context.Context, event *analytics.StoredEvent) error
	Created    []*analytics.StoredEvent
}

func (m *mockEventRepository) Create(ctx context.Context, event *analytics.StoredEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, event)
	}
	if err := event.SetID(uint(len(m.Created) + 1)); err != nil {
		return err
	}
	m.Created = append(m.Created, event)
	return nil
}

func (m *mockEventRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return int64(len(m.Created)), nil
}

func (m *mockEventRepository) AnonymizeByUser(ctx context.Context, userID uint) error {
	return nil
}

type mockAggregateRepository struct {
	UpsertBatchFunc func(ctx context.Context, batch analytics.Batch) error
	QueryFunc       func(ctx context.Context, filter analytics.QueryFilter) ([]*analytics.Aggregate, error)
	Batches         []analytics.Batch
	Filters         []analytics.QueryFilter
}

func (m *mockAggregateRepository) UpsertBatch(ctx context.Context, batch analytics.Batch) error {
	if m.UpsertBatchFunc != nil {
		return m.UpsertBatchFunc(ctx, batch)
	}
	m.Batches = append(m.Batches, batch)
	return nil
}

func (m *mockAggregateRepository) Query(ctx context.Context, filter analytics.QueryFilter) ([]*analytics.Aggregate, error) {
	m.Filters = append(m.Filters, filter)
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockAggregateRepository) CountCells(ctx context.Context) (int64, error) {
	return 0, nil
}

type mockProfileDirectory struct {
	GetByUserIDFunc func(ctx context.Context, userID uint) (*user.Profile, error)
}

func (m *mockProfileDirectory) GetByUserID(ctx context.Context, userID uint) (*user.Profile, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, apperrors.NewNotFoundError("profile not found")
}

type mockConsentGuard struct {
	RequireFunc func(ctx context.Context, userID uint, category consent.Category, scope consent.Scope) error
	Checked     []uint
}

func (m *mockConsentGuard) Require(ctx context.Context, userID uint, category consent.Category, scope consent.Scope) error {
	m.Checked = append(m.Checked, userID)
	if m.RequireFunc != nil {
		return m.RequireFunc(ctx, userID, category, scope)
	}
	return nil
}

type mockFlusher struct {
	ExecuteFunc func(ctx context.Context) (*FlushBufferResult, error)
	Calls       int
}

func (m *mockFlusher) Execute(ctx context.Context) (*FlushBufferResult, error) {
	m.Calls++
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx)
	}
	return &FlushBufferResult{}, nil
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
