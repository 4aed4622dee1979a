package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/anchor"
	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/complaint"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type mockAnchorRepository struct {
	GetBySIDFunc         func(ctx context.Context, sid string) (*anchor.Record, error)
	GetByComplaintIDFunc func(ctx context.Context, complaintID uint) (*anchor.Record, error)
	UpdateFunc           func(ctx context.Context, record *anchor.Record) error
	ListDueFunc          func(ctx context.Context, now time.Time, limit int) ([]*anchor.Record, error)
	ListInFlightFunc     func(ctx context.Context, limit int) ([]*anchor.Record, error)
	ListFailedFunc       func(ctx context.Context, limit int) ([]*anchor.Record, error)
	Updated              []*anchor.Record
}

func (m *mockAnchorRepository) Create(ctx context.Context, record *anchor.Record) error {
	return record.SetID(1)
}

func (m *mockAnchorRepository) GetBySID(ctx context.Context, sid string) (*anchor.Record, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("anchor record not found")
}

func (m *mockAnchorRepository) GetByComplaintID(ctx context.Context, complaintID uint) (*anchor.Record, error) {
	if m.GetByComplaintIDFunc != nil {
		return m.GetByComplaintIDFunc(ctx, complaintID)
	}
	return nil, apperrors.NewNotFoundError("anchor record not found")
}

func (m *mockAnchorRepository) Update(ctx context.Context, record *anchor.Record) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, record)
	}
	m.Updated = append(m.Updated, record)
	return nil
}

func (m *mockAnchorRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]*anchor.Record, error) {
	if m.ListDueFunc != nil {
		return m.ListDueFunc(ctx, now, limit)
	}
	return nil, nil
}

func (m *mockAnchorRepository) ListInFlight(ctx context.Context, limit int) ([]*anchor.Record, error) {
	if m.ListInFlightFunc != nil {
		return m.ListInFlightFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockAnchorRepository) ListFailed(ctx context.Context, limit int) ([]*anchor.Record, error) {
	if m.ListFailedFunc != nil {
		return m.ListFailedFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockAnchorRepository) CountByStatus(ctx context.Context, status anchor.Status) (int64, error) {
	return 0, nil
}

type mockChainClient struct {
	CreateAnchorFunc func(ctx context.Context, req anchor.CreateRequest) (string, error)
	UpdateStatusFunc func(ctx context.Context, req anchor.UpdateRequest) (string, error)
	CurrentNonceFunc func(ctx context.Context, complaintHash string) (uint64, error)
	CreateCalls      []anchor.CreateRequest
	UpdateCalls      []anchor.UpdateRequest
}

func (m *mockChainClient) CreateAnchor(ctx context.Context, req anchor.CreateRequest) (string, error) {
	m.CreateCalls = append(m.CreateCalls, req)
	if m.CreateAnchorFunc != nil {
		return m.CreateAnchorFunc(ctx, req)
	}
	return "0xcafecafe", nil
}

func (m *mockChainClient) UpdateStatus(ctx context.Context, req anchor.UpdateRequest) (string, error) {
	m.UpdateCalls = append(m.UpdateCalls, req)
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, req)
	}
	return "0xfeedfeed", nil
}

func (m *mockChainClient) CurrentNonce(ctx context.Context, complaintHash string) (uint64, error) {
	if m.CurrentNonceFunc != nil {
		return m.CurrentNonceFunc(ctx, complaintHash)
	}
	return 0, anchor.ErrChainUnavailable
}

type mockComplaintDirectory struct {
	GetByIDFunc  func(ctx context.Context, id uint) (*complaint.Complaint, error)
	GetBySIDFunc func(ctx context.Context, sid string) (*complaint.Complaint, error)
}

func (m *mockComplaintDirectory) GetByID(ctx context.Context, id uint) (*complaint.Complaint, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.NewNotFoundError("complaint not found")
}

func (m *mockComplaintDirectory) GetBySID(ctx context.Context, sid string) (*complaint.Complaint, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("complaint not found")
}

type mockSLARuleDirectory struct {
	GetByCategoryAndLevelFunc func(ctx context.Context, category complaint.Category, level complaint.EscalationLevel) (*complaint.SLARule, error)
}

func (m *mockSLARuleDirectory) GetByCategoryAndLevel(ctx context.Context, category complaint.Category, level complaint.EscalationLevel) (*complaint.SLARule, error) {
	if m.GetByCategoryAndLevelFunc != nil {
		return m.GetByCategoryAndLevelFunc(ctx, category, level)
	}
	return nil, apperrors.NewNotFoundError("sla rule not found")
}

type mockRunLock struct {
	TryAcquireFunc func(ctx context.Context) (string, bool, error)
	Released       []string
}

func (m *mockRunLock) TryAcquire(ctx context.Context) (string, bool, error) {
	if m.TryAcquireFunc != nil {
		return m.TryAcquireFunc(ctx)
	}
	return "token", true, nil
}

func (m *mockRunLock) Release(ctx context.Context, token string) error {
	m.Released = append(m.Released, token)
	return nil
}

type mockSubmitter struct {
	ExecuteFunc func(ctx context.Context) (*SubmitPendingResult, error)
}

func (m *mockSubmitter) Execute(ctx context.Context) (*SubmitPendingResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx)
	}
	return &SubmitPendingResult{}, nil
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
