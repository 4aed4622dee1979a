package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/user"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type mockUserRepository struct {
	CreateFunc        func(ctx context.Context, u *user.User) error
	GetByIDFunc       func(ctx context.Context, id uint) (*user.User, error)
	GetBySIDFunc      func(ctx context.Context, sid string) (*user.User, error)
	GetByPhoneFunc    func(ctx context.Context, phone string) (*user.User, error)
	GetByAliasFunc    func(ctx context.Context, alias string) (*user.User, error)
	UpdateFunc        func(ctx context.Context, u *user.User) error
	ListFunc          func(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error)
	ExistsByPhoneFunc func(ctx context.Context, phone string) (bool, error)
	GetRolesFunc      func(ctx context.Context, userID uint) ([]string, error)
	AssignRoleFunc    func(ctx context.Context, userID uint, role user.Role) error
	RemoveRoleFunc    func(ctx context.Context, userID uint, role user.Role) error

	Created  []*user.User
	Assigned []user.Role
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	m.Created = append(m.Created, u)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return u.SetID(1)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) GetByPhone(ctx context.Context, phone string) (*user.User, error) {
	if m.GetByPhoneFunc != nil {
		return m.GetByPhoneFunc(ctx, phone)
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) GetByAlias(ctx context.Context, alias string) (*user.User, error) {
	if m.GetByAliasFunc != nil {
		return m.GetByAliasFunc(ctx, alias)
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	if m.ExistsByPhoneFunc != nil {
		return m.ExistsByPhoneFunc(ctx, phone)
	}
	return false, nil
}

func (m *mockUserRepository) GetRoles(ctx context.Context, userID uint) ([]string, error) {
	if m.GetRolesFunc != nil {
		return m.GetRolesFunc(ctx, userID)
	}
	return []string{user.RoleCitizen.String()}, nil
}

func (m *mockUserRepository) AssignRole(ctx context.Context, userID uint, role user.Role) error {
	m.Assigned = append(m.Assigned, role)
	if m.AssignRoleFunc != nil {
		return m.AssignRoleFunc(ctx, userID, role)
	}
	return nil
}

func (m *mockUserRepository) RemoveRole(ctx context.Context, userID uint, role user.Role) error {
	if m.RemoveRoleFunc != nil {
		return m.RemoveRoleFunc(ctx, userID, role)
	}
	return nil
}

type mockProfileRepository struct {
	CreateFunc      func(ctx context.Context, p *user.Profile) error
	GetByUserIDFunc func(ctx context.Context, userID uint) (*user.Profile, error)
	UpdateFunc      func(ctx context.Context, p *user.Profile) error

	Created []*user.Profile
}

func (m *mockProfileRepository) Create(ctx context.Context, p *user.Profile) error {
	m.Created = append(m.Created, p)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID uint) (*user.Profile, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, apperrors.NewNotFoundError("profile not found")
}

func (m *mockProfileRepository) Update(ctx context.Context, p *user.Profile) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

type mockHasher struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(password, hash string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Verify(password, hash string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(password, hash)
	}
	return nil
}

// mockTxManager runs the function directly; commit and rollback behavior is
// covered by repository tests against a real database.
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
	m.Records = append(m.Records, rec)
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, rec)
	}
	return nil, nil
}
