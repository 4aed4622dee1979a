package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/outbox"
	"github.com/sahay-inc/sahay/internal/domain/telemed"
	"github.com/sahay-inc/sahay/internal/domain/user"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type mockTeleRequestRepository struct {
	CreateFunc   func(ctx context.Context, request *telemed.TeleRequest) error
	GetBySIDFunc func(ctx context.Context, sid string) (*telemed.TeleRequest, error)
	UpdateFunc   func(ctx context.Context, request *telemed.TeleRequest) error
	Created      []*telemed.TeleRequest
	Updated      []*telemed.TeleRequest
}

func (m *mockTeleRequestRepository) Create(ctx context.Context, request *telemed.TeleRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, request)
	}
	if err := request.SetID(1); err != nil {
		return err
	}
	m.Created = append(m.Created, request)
	return nil
}

func (m *mockTeleRequestRepository) GetBySID(ctx context.Context, sid string) (*telemed.TeleRequest, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("tele request not found")
}

func (m *mockTeleRequestRepository) Update(ctx context.Context, request *telemed.TeleRequest) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, request)
	}
	m.Updated = append(m.Updated, request)
	return nil
}

func (m *mockTeleRequestRepository) List(ctx context.Context, filter telemed.ListFilter) ([]*telemed.TeleRequest, int64, error) {
	return nil, 0, nil
}

func (m *mockTeleRequestRepository) DeleteByUser(ctx context.Context, citizenID uint) error {
	return nil
}

type mockPrescriptionRepository struct {
	CreateFunc func(ctx context.Context, prescription *telemed.Prescription) error
	Created    []*telemed.Prescription
}

func (m *mockPrescriptionRepository) Create(ctx context.Context, prescription *telemed.Prescription) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, prescription)
	}
	if err := prescription.SetID(1); err != nil {
		return err
	}
	m.Created = append(m.Created, prescription)
	return nil
}

func (m *mockPrescriptionRepository) GetBySID(ctx context.Context, sid string) (*telemed.Prescription, error) {
	return nil, apperrors.NewNotFoundError("prescription not found")
}

func (m *mockPrescriptionRepository) ListByCitizen(ctx context.Context, citizenID uint) ([]*telemed.Prescription, error) {
	return nil, nil
}

func (m *mockPrescriptionRepository) ListByTeleRequest(ctx context.Context, teleRequestID uint) ([]*telemed.Prescription, error) {
	return nil, nil
}

func (m *mockPrescriptionRepository) DeleteByUser(ctx context.Context, citizenID uint) error {
	return nil
}

type mockUserDirectory struct {
	GetByIDFunc func(ctx context.Context, id uint) (*user.User, error)
}

func (m *mockUserDirectory) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

type mockMessageQueue struct {
	CreateFunc func(ctx context.Context, message *outbox.Message) error
	Messages   []*outbox.Message
}

func (m *mockMessageQueue) Create(ctx context.Context, message *outbox.Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, message)
	}
	m.Messages = append(m.Messages, message)
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
