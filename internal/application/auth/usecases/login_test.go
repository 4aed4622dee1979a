package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/user"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

func activeUser(t *testing.T, phone *string, alias string) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(
		3, "user_abc123", phone, alias, "hashed:correct horse",
		user.StatusActive, time.Now(), time.Now(), 1,
	)
	require.NoError(t, err)
	return u
}

func newLoginUseCase(users *mockUserRepository, auditor *mockAuditor) *LoginUseCase {
	return NewLoginUseCase(
		users,
		&mockHasher{},
		&mockTokenIssuer{},
		&mockTxManager{},
		auditor,
		logger.NewLogger(),
	)
}

func TestLoginUseCase_Execute(t *testing.T) {
	t.Run("logs in by phone", func(t *testing.T) {
		existing := activeUser(t, strPtr("9876543210"), "")
		users := &mockUserRepository{
			GetByPhoneFunc: func(ctx context.Context, phone string) (*user.User, error) {
				assert.Equal(t, "9876543210", phone)
				return existing, nil
			},
		}
		auditor := &mockAuditor{}

		uc := newLoginUseCase(users, auditor)
		result, err := uc.Execute(context.Background(), LoginCommand{
			Identifier: "9876543210",
			Password:   "correct horse",
			IP:         "10.0.0.1",
		})

		require.NoError(t, err)
		assert.Equal(t, "user_abc123", result.UserSID)
		assert.Equal(t, "sah_testtoken", result.Token)
		assert.NotEmpty(t, result.ExpiresAt)

		require.Len(t, auditor.Records, 1)
		assert.Equal(t, "user.login", auditor.Records[0].Action)
		assert.Equal(t, "user_abc123", auditor.Records[0].ActorID)
	})

	t.Run("falls back to alias lookup", func(t *testing.T) {
		existing := activeUser(t, nil, "blue-sparrow-42")
		users := &mockUserRepository{
			GetByAliasFunc: func(ctx context.Context, alias string) (*user.User, error) {
				assert.Equal(t, "blue-sparrow-42", alias)
				return existing, nil
			},
		}

		uc := newLoginUseCase(users, &mockAuditor{})
		result, err := uc.Execute(context.Background(), LoginCommand{
			Identifier: "blue-sparrow-42",
			Password:   "correct horse",
		})

		require.NoError(t, err)
		assert.Equal(t, "blue-sparrow-42", result.Alias)
	})

	t.Run("unknown identifier yields generic failure", func(t *testing.T) {
		uc := newLoginUseCase(&mockUserRepository{}, &mockAuditor{})
		_, err := uc.Execute(context.Background(), LoginCommand{
			Identifier: "9999999999",
			Password:   "whatever password",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid credentials")
	})

	t.Run("wrong password yields the same generic failure", func(t *testing.T) {
		existing := activeUser(t, strPtr("9876543210"), "")
		users := &mockUserRepository{
			GetByPhoneFunc: func(ctx context.Context, phone string) (*user.User, error) {
				return existing, nil
			},
		}
		auditor := &mockAuditor{}

		uc := newLoginUseCase(users, auditor)
		_, err := uc.Execute(context.Background(), LoginCommand{
			Identifier: "9876543210",
			Password:   "wrong password",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid credentials")
		assert.Empty(t, auditor.Records)
	})

	t.Run("deactivated accounts cannot log in", func(t *testing.T) {
		deactivated, err := user.ReconstructUser(
			4, "user_gone", strPtr("9876543211"), "", "hashed:correct horse",
			user.StatusDeactivated, time.Now(), time.Now(), 1,
		)
		require.NoError(t, err)

		users := &mockUserRepository{
			GetByPhoneFunc: func(ctx context.Context, phone string) (*user.User, error) {
				return deactivated, nil
			},
		}

		uc := newLoginUseCase(users, &mockAuditor{})
		_, execErr := uc.Execute(context.Background(), LoginCommand{
			Identifier: "9876543211",
			Password:   "correct horse",
		})

		require.Error(t, execErr)
		assert.Contains(t, execErr.Error(), "invalid credentials")
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		uc := newLoginUseCase(&mockUserRepository{}, &mockAuditor{})
		_, err := uc.Execute(context.Background(), LoginCommand{Identifier: "x"})
		assert.True(t, apperrors.IsValidationError(err))
	})
}
