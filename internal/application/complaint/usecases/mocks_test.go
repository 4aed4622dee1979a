package usecases

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/anchor"
	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/complaint"
	"github.com/sahay-inc/sahay/internal/domain/outbox"
	"github.com/sahay-inc/sahay/internal/domain/user"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type mockComplaintRepository struct {
	CreateFunc          func(ctx context.Context, grievance *complaint.Complaint) error
	GetBySIDFunc        func(ctx context.Context, sid string) (*complaint.Complaint, error)
	UpdateFunc          func(ctx context.Context, grievance *complaint.Complaint) error
	ListFunc            func(ctx context.Context, filter complaint.ListFilter) ([]*complaint.Complaint, int64, error)
	ListSLABreachedFunc func(ctx context.Context, now time.Time) ([]*complaint.Complaint, error)
	Created             []*complaint.Complaint
	Updated             []*complaint.Complaint
}

func (m *mockComplaintRepository) Create(ctx context.Context, grievance *complaint.Complaint) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, grievance)
	}
	if err := grievance.SetID(uint(len(m.Created) + 1)); err != nil {
		return err
	}
	m.Created = append(m.Created, grievance)
	return nil
}

func (m *mockComplaintRepository) GetByID(ctx context.Context, id uint) (*complaint.Complaint, error) {
	return nil, apperrors.NewNotFoundError("complaint not found")
}

func (m *mockComplaintRepository) GetBySID(ctx context.Context, sid string) (*complaint.Complaint, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("complaint not found")
}

func (m *mockComplaintRepository) Update(ctx context.Context, grievance *complaint.Complaint) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, grievance)
	}
	m.Updated = append(m.Updated, grievance)
	return nil
}

func (m *mockComplaintRepository) List(ctx context.Context, filter complaint.ListFilter) ([]*complaint.Complaint, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockComplaintRepository) ListSLABreached(ctx context.Context, now time.Time) ([]*complaint.Complaint, error) {
	if m.ListSLABreachedFunc != nil {
		return m.ListSLABreachedFunc(ctx, now)
	}
	return nil, nil
}

func (m *mockComplaintRepository) AnonymizeByUser(ctx context.Context, submitterID uint) error {
	return nil
}

type mockSLARuleRepository struct {
	GetByCategoryAndLevelFunc func(ctx context.Context, category complaint.Category, level complaint.EscalationLevel) (*complaint.SLARule, error)
	ListFunc                  func(ctx context.Context, category *complaint.Category) ([]*complaint.SLARule, error)
}

func (m *mockSLARuleRepository) Create(ctx context.Context, rule *complaint.SLARule) error {
	return nil
}

func (m *mockSLARuleRepository) GetByCategoryAndLevel(ctx context.Context, category complaint.Category, level complaint.EscalationLevel) (*complaint.SLARule, error) {
	if m.GetByCategoryAndLevelFunc != nil {
		return m.GetByCategoryAndLevelFunc(ctx, category, level)
	}
	return nil, apperrors.NewNotFoundError("sla rule not found")
}

func (m *mockSLARuleRepository) Update(ctx context.Context, rule *complaint.SLARule) error {
	return nil
}

func (m *mockSLARuleRepository) List(ctx context.Context, category *complaint.Category) ([]*complaint.SLARule, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, category)
	}
	return nil, nil
}

type mockHistoryRepository struct {
	CreateFunc          func(ctx context.Context, change *complaint.StatusChange) error
	ListByComplaintFunc func(ctx context.Context, complaintID uint) ([]*complaint.StatusChange, error)
	Created             []*complaint.StatusChange
}

func (m *mockHistoryRepository) Create(ctx context.Context, change *complaint.StatusChange) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, change)
	}
	m.Created = append(m.Created, change)
	return nil
}

func (m *mockHistoryRepository) ListByComplaint(ctx context.Context, complaintID uint) ([]*complaint.StatusChange, error) {
	if m.ListByComplaintFunc != nil {
		return m.ListByComplaintFunc(ctx, complaintID)
	}
	return nil, nil
}

type mockEvidenceRepository struct {
	CreateFunc          func(ctx context.Context, evidence *complaint.Evidence) error
	ListByComplaintFunc func(ctx context.Context, complaintID uint) ([]*complaint.Evidence, error)
	Created             []*complaint.Evidence
}

func (m *mockEvidenceRepository) Create(ctx context.Context, evidence *complaint.Evidence) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, evidence)
	}
	if err := evidence.SetID(uint(len(m.Created) + 1)); err != nil {
		return err
	}
	m.Created = append(m.Created, evidence)
	return nil
}

func (m *mockEvidenceRepository) GetBySID(ctx context.Context, sid string) (*complaint.Evidence, error) {
	return nil, apperrors.NewNotFoundError("evidence not found")
}

func (m *mockEvidenceRepository) ListByComplaint(ctx context.Context, complaintID uint) ([]*complaint.Evidence, error) {
	if m.ListByComplaintFunc != nil {
		return m.ListByComplaintFunc(ctx, complaintID)
	}
	return nil, nil
}

type mockAnchorRepository struct {
	CreateFunc           func(ctx context.Context, record *anchor.Record) error
	GetByComplaintIDFunc func(ctx context.Context, complaintID uint) (*anchor.Record, error)
	UpdateFunc           func(ctx context.Context, record *anchor.Record) error
	Created              []*anchor.Record
	Updated              []*anchor.Record
}

func (m *mockAnchorRepository) Create(ctx context.Context, record *anchor.Record) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	if err := record.SetID(uint(len(m.Created) + 1)); err != nil {
		return err
	}
	m.Created = append(m.Created, record)
	return nil
}

func (m *mockAnchorRepository) GetBySID(ctx context.Context, sid string) (*anchor.Record, error) {
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
	return nil, nil
}

func (m *mockAnchorRepository) ListInFlight(ctx context.Context, limit int) ([]*anchor.Record, error) {
	return nil, nil
}

func (m *mockAnchorRepository) ListFailed(ctx context.Context, limit int) ([]*anchor.Record, error) {
	return nil, nil
}

func (m *mockAnchorRepository) CountByStatus(ctx context.Context, status anchor.Status) (int64, error) {
	return 0, nil
}

// fakeSealer wraps plaintext in a marker so tests can tell sealed bytes
// from plain ones without pulling in the real cipher.
type fakeSealer struct{}

var sealMarker = []byte("sealed:")

func (fakeSealer) Seal(plaintext []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("payload is empty")
	}
	return append(append([]byte{}, sealMarker...), plaintext...), nil
}

func (fakeSealer) Open(sealed []byte) ([]byte, error) {
	if !bytes.HasPrefix(sealed, sealMarker) {
		return nil, fmt.Errorf("payload is not sealed")
	}
	return bytes.TrimPrefix(sealed, sealMarker), nil
}

type mockEvidenceStore struct {
	PutFunc func(ctx context.Context, content []byte) (string, string, error)
	Stored  [][]byte
}

func (m *mockEvidenceStore) Put(ctx context.Context, content []byte) (string, string, error) {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, content)
	}
	sum := sha256.Sum256(content)
	contentHash := hex.EncodeToString(sum[:])
	m.Stored = append(m.Stored, content)
	return "complaint-evidence/" + contentHash, contentHash, nil
}

func (m *mockEvidenceStore) Get(ctx context.Context, objectKey string) ([]byte, error) {
	return nil, apperrors.NewNotFoundError("object not found")
}

func (m *mockEvidenceStore) Delete(ctx context.Context, objectKey string) error {
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
