package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

func TestLogoutUseCase_Execute(t *testing.T) {
	t.Run("revokes the token and audits", func(t *testing.T) {
		var revoked string
		revoker := &mockTokenRevoker{
			RevokeFunc: func(ctx context.Context, plainToken string) error {
				revoked = plainToken
				return nil
			},
		}
		auditor := &mockAuditor{}

		uc := NewLogoutUseCase(revoker, auditor, logger.NewLogger())
		err := uc.Execute(context.Background(), LogoutCommand{
			Token:    "sah_livetoken",
			ActorSID: "user_abc123",
			IP:       "10.0.0.1",
		})

		require.NoError(t, err)
		assert.Equal(t, "sah_livetoken", revoked)
		require.Len(t, auditor.Records, 1)
		assert.Equal(t, "user.logout", auditor.Records[0].Action)
		assert.Equal(t, "user_abc123", auditor.Records[0].ActorID)
	})

	t.Run("missing token fails validation", func(t *testing.T) {
		uc := NewLogoutUseCase(&mockTokenRevoker{}, &mockAuditor{}, logger.NewLogger())
		err := uc.Execute(context.Background(), LogoutCommand{ActorSID: "user_abc123"})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("revocation error surfaces", func(t *testing.T) {
		revoker := &mockTokenRevoker{
			RevokeFunc: func(ctx context.Context, plainToken string) error {
				return fmt.Errorf("database unavailable")
			},
		}

		uc := NewLogoutUseCase(revoker, &mockAuditor{}, logger.NewLogger())
		err := uc.Execute(context.Background(), LogoutCommand{Token: "sah_livetoken"})
		require.Error(t, err)
	})

	t.Run("audit failure does not undo the logout", func(t *testing.T) {
		auditor := &mockAuditor{
			AppendFunc: func(ctx context.Context, rec audit.Record) (*audit.Entry, error) {
				return nil, fmt.Errorf("audit write failed")
			},
		}

		uc := NewLogoutUseCase(&mockTokenRevoker{}, auditor, logger.NewLogger())
		err := uc.Execute(context.Background(), LogoutCommand{Token: "sah_livetoken", ActorSID: "user_abc123"})
		assert.NoError(t, err)
	})
}
