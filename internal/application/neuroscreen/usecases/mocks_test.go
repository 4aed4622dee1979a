package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/neuroscreen"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type mockResultRepository struct {
	CreateFunc   func(ctx context.Context, result *neuroscreen.Result) error
	GetBySIDFunc func(ctx context.Context, sid string) (*neuroscreen.Result, error)
	Created      []*neuroscreen.Result
}

func (m *mockResultRepository) Create(ctx context.Context, result *neuroscreen.Result) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, result)
	}
	if err := result.SetID(1); err != nil {
		return err
	}
	m.Created = append(m.Created, result)
	return nil
}

func (m *mockResultRepository) GetBySID(ctx context.Context, sid string) (*neuroscreen.Result, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("screening result not found")
}

func (m *mockResultRepository) DeleteByUser(ctx context.Context, ownerID uint) error {
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
