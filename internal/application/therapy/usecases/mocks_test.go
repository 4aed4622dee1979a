package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/therapy"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

func storedModule(t *testing.T) *therapy.Module {
	t.Helper()
	minAge := 6
	maxAge := 24
	module, err := therapy.NewModule(
		"Speech Basics",
		"Early speech exercises",
		"speech",
		&minAge, &maxAge,
		[]therapy.Step{
			{Number: 1, Title: "Warm up", DurationMinutes: 5},
			{Number: 2, Title: "Repeat sounds", DurationMinutes: 10},
		},
	)
	require.NoError(t, err)
	require.NoError(t, module.SetID(11))
	return module
}

type mockModuleRepository struct {
	CreateFunc   func(ctx context.Context, module *therapy.Module) error
	GetBySIDFunc func(ctx context.Context, sid string) (*therapy.Module, error)
	ListFunc     func(ctx context.Context, filter therapy.ModuleListFilter) ([]*therapy.Module, int64, error)
	Created      []*therapy.Module
	LastFilter   therapy.ModuleListFilter
}

func (m *mockModuleRepository) Create(ctx context.Context, module *therapy.Module) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, module)
	}
	if err := module.SetID(1); err != nil {
		return err
	}
	m.Created = append(m.Created, module)
	return nil
}

func (m *mockModuleRepository) GetBySID(ctx context.Context, sid string) (*therapy.Module, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("therapy module not found")
}

func (m *mockModuleRepository) List(ctx context.Context, filter therapy.ModuleListFilter) ([]*therapy.Module, int64, error) {
	m.LastFilter = filter
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockPackRepository struct {
	CreateFunc func(ctx context.Context, pack *therapy.Pack) error
	Created    []*therapy.Pack
}

func (m *mockPackRepository) Create(ctx context.Context, pack *therapy.Pack) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, pack)
	}
	if err := pack.SetID(1); err != nil {
		return err
	}
	m.Created = append(m.Created, pack)
	return nil
}

func (m *mockPackRepository) GetBySID(ctx context.Context, sid string) (*therapy.Pack, error) {
	return nil, apperrors.NewNotFoundError("therapy pack not found")
}

// mockPackStore hashes like the real store: the object key and checksum
// are both the SHA-256 of the content.
type mockPackStore struct {
	PutFunc func(ctx context.Context, content []byte) (string, string, error)
	Stored  map[string][]byte
}

func (m *mockPackStore) Put(ctx context.Context, content []byte) (string, string, error) {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, content)
	}
	digest := sha256.Sum256(content)
	key := hex.EncodeToString(digest[:])
	if m.Stored == nil {
		m.Stored = make(map[string][]byte)
	}
	m.Stored[key] = content
	return key, key, nil
}

func (m *mockPackStore) Get(ctx context.Context, objectKey string) ([]byte, error) {
	content, ok := m.Stored[objectKey]
	if !ok {
		return nil, apperrors.NewNotFoundError("object not found")
	}
	return content, nil
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
