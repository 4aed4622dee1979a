package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/consent"
	"github.com/sahay-inc/sahay/internal/domain/user"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type mockUserDirectory struct {
	GetByIDFunc func(ctx context.Context, id uint) (*user.User, error)
	Account     *user.User
}

func (m *mockUserDirectory) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	if m.Account != nil {
		return m.Account, nil
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

type mockProfileRepository struct {
	CreateFunc      func(ctx context.Context, profile *user.Profile) error
	GetByUserIDFunc func(ctx context.Context, userID uint) (*user.Profile, error)
	UpdateFunc      func(ctx context.Context, profile *user.Profile) error
	Gets            []uint
	Updated         []*user.Profile
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *user.Profile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	return nil
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID uint) (*user.Profile, error) {
	m.Gets = append(m.Gets, userID)
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, apperrors.NewNotFoundError("profile not found")
}

func (m *mockProfileRepository) Update(ctx context.Context, profile *user.Profile) error {
	m.Updated = append(m.Updated, profile)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, profile)
	}
	return nil
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
