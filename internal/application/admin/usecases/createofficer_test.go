package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/user"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

func newCreateOfficerUseCase(
	users *mockUserRepository,
	profiles *mockProfileRepository,
	auditor *mockAuditor,
) *CreateOfficerUseCase {
	return NewCreateOfficerUseCase(
		users,
		profiles,
		&mockHasher{},
		&mockTxManager{},
		auditor,
		logger.NewLogger(),
	)
}

func TestCreateOfficerUseCase_Execute(t *testing.T) {
	t.Run("creates a district officer", func(t *testing.T) {
		users := &mockUserRepository{}
		profiles := &mockProfileRepository{}
		auditor := &mockAuditor{}

		uc := newCreateOfficerUseCase(users, profiles, auditor)
		result, err := uc.Execute(context.Background(), CreateOfficerCommand{
			Alias:    "dist_officer_blr",
			Role:     "district_officer",
			Password: "open sesame",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.UserSID)
		assert.Equal(t, "dist_officer_blr", result.Alias)
		assert.Equal(t, "district_officer", result.Role)
		assert.NotEmpty(t, result.CreatedAt)

		require.Len(t, users.Created, 1)
		created := users.Created[0]
		assert.Nil(t, created.Phone())
		assert.Equal(t, "dist_officer_blr", created.Alias())
		assert.Equal(t, "hashed:open sesame", created.PasswordHash())

		require.Len(t, profiles.Created, 1)
		assert.Equal(t, uint(1), profiles.Created[0].UserID())
		assert.Equal(t, []user.Role{user.RoleDistrictOfficer}, users.Assigned)

		require.Len(t, auditor.Records, 1)
		rec := auditor.Records[0]
		assert.Equal(t, "user.create_officer", rec.Action)
		assert.Equal(t, audit.SystemActor, rec.ActorID)
		assert.Equal(t, "user", rec.EntityType)
		assert.Equal(t, result.UserSID, rec.EntityID)
		assert.Equal(t, "district_officer", rec.Payload["role"])
	})

	t.Run("self-service roles cannot be granted", func(t *testing.T) {
		users := &mockUserRepository{}
		uc := newCreateOfficerUseCase(users, &mockProfileRepository{}, &mockAuditor{})

		_, err := uc.Execute(context.Background(), CreateOfficerCommand{
			Alias:    "not_an_officer",
			Role:     "citizen",
			Password: "open sesame",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err))
		assert.Contains(t, err.Error(), "cannot be granted from the CLI")
		assert.Empty(t, users.Created)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		uc := newCreateOfficerUseCase(&mockUserRepository{}, &mockProfileRepository{}, &mockAuditor{})

		_, err := uc.Execute(context.Background(), CreateOfficerCommand{
			Alias:    "dist_officer_blr",
			Role:     "warden",
			Password: "open sesame",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("rejects a short password", func(t *testing.T) {
		uc := newCreateOfficerUseCase(&mockUserRepository{}, &mockProfileRepository{}, &mockAuditor{})

		_, err := uc.Execute(context.Background(), CreateOfficerCommand{
			Alias:    "dist_officer_blr",
			Role:     "district_officer",
			Password: "short",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("rejects a missing alias", func(t *testing.T) {
		uc := newCreateOfficerUseCase(&mockUserRepository{}, &mockProfileRepository{}, &mockAuditor{})

		_, err := uc.Execute(context.Background(), CreateOfficerCommand{
			Role:     "district_officer",
			Password: "open sesame",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("duplicate alias conflicts", func(t *testing.T) {
		existing, err := user.NewUser(nil, "dist_officer_blr", "hashed:other")
		require.NoError(t, err)

		users := &mockUserRepository{
			GetByAliasFunc: func(ctx context.Context, alias string) (*user.User, error) {
				return existing, nil
			},
		}
		uc := newCreateOfficerUseCase(users, &mockProfileRepository{}, &mockAuditor{})

		_, err = uc.Execute(context.Background(), CreateOfficerCommand{
			Alias:    "dist_officer_blr",
			Role:     "district_officer",
			Password: "open sesame",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsConflictError(err))
		assert.Empty(t, users.Created)
	})

	t.Run("alias check failure is internal", func(t *testing.T) {
		users := &mockUserRepository{
			GetByAliasFunc: func(ctx context.Context, alias string) (*user.User, error) {
				return nil, errors.New("connection refused")
			},
		}
		uc := newCreateOfficerUseCase(users, &mockProfileRepository{}, &mockAuditor{})

		_, err := uc.Execute(context.Background(), CreateOfficerCommand{
			Alias:    "dist_officer_blr",
			Role:     "district_officer",
			Password: "open sesame",
		})

		require.Error(t, err)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
	})

	t.Run("audit failure aborts the creation", func(t *testing.T) {
		auditor := &mockAuditor{
			AppendFunc: func(ctx context.Context, rec audit.Record) (*audit.Entry, error) {
				return nil, errors.New("chain head lock lost")
			},
		}
		uc := newCreateOfficerUseCase(&mockUserRepository{}, &mockProfileRepository{}, auditor)

		_, err := uc.Execute(context.Background(), CreateOfficerCommand{
			Alias:    "dist_officer_blr",
			Role:     "district_officer",
			Password: "open sesame",
		})

		require.Error(t, err)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
	})
}
