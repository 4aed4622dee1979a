package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/user"
	"github.com/sahay-inc/sahay/internal/domain/vaccination"
)

type mockRecordRepository struct {
	CreateFunc      func(ctx context.Context, record *vaccination.Record) error
	ListByOwnerFunc func(ctx context.Context, ownerID uint) ([]*vaccination.Record, error)
	Created         []*vaccination.Record
}

func (m *mockRecordRepository) Create(ctx context.Context, record *vaccination.Record) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	if err := record.SetID(uint(len(m.Created) + 1)); err != nil {
		return err
	}
	m.Created = append(m.Created, record)
	return nil
}

func (m *mockRecordRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*vaccination.Record, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockRecordRepository) DeleteByUser(ctx context.Context, ownerID uint) error {
	return nil
}

type mockProfileDirectory struct {
	GetByUserIDFunc func(ctx context.Context, userID uint) (*user.Profile, error)
}

func (m *mockProfileDirectory) GetByUserID(ctx context.Context, userID uint) (*user.Profile, error) {
	return m.GetByUserIDFunc(ctx, userID)
}

func profileWithDOB(t *testing.T, userID uint, dob string) *user.Profile {
	t.Helper()
	profile, err := user.ReconstructProfile(1, userID, "", dob, "", "", time.Time{}, "", time.Now())
	require.NoError(t, err)
	return profile
}

func administeredRecord(t *testing.T, ownerID uint, vaccine string, dose int, at time.Time) *vaccination.Record {
	t.Helper()
	record, err := vaccination.NewRecord(ownerID, vaccine, dose, at)
	require.NoError(t, err)
	require.NoError(t, record.SetID(1))
	return record
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
