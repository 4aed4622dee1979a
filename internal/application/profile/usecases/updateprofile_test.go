package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/user"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

func strPtr(s string) *string { return &s }

func newUpdateUseCase(users *mockUserDirectory, profiles *mockProfileRepository, auditor *mockAuditor) *UpdateProfileUseCase {
	return NewUpdateProfileUseCase(users, profiles, &mockTxManager{}, auditor, logger.NewLogger())
}

func TestUpdateProfileUseCase_Execute(t *testing.T) {
	t.Run("applies a partial update", func(t *testing.T) {
		users := &mockUserDirectory{Account: testAccount(t, user.StatusActive)}
		profiles := profileReturning(testProfile(t, time.Now().Add(-time.Hour)))
		auditor := &mockAuditor{}

		uc := newUpdateUseCase(users, profiles, auditor)
		view, err := uc.Execute(context.Background(), UpdateProfileCommand{
			CallerID:  7,
			CallerSID: "user_prof1",
			NameAlias: strPtr("Asha Kumari"),
			Pincode:   strPtr("560034"),
			IP:        "10.0.0.9",
		})

		require.NoError(t, err)
		assert.Equal(t, "Asha Kumari", view.NameAlias)
		assert.Equal(t, "560034", view.Pincode)
		assert.Equal(t, "1994-02-11", view.DOB)
		assert.Equal(t, "female", view.Sex)
		assert.NotEmpty(t, view.ClientTime)

		require.Len(t, profiles.Updated, 1)
		require.Len(t, auditor.Records, 1)
		rec := auditor.Records[0]
		assert.Equal(t, "profile.update", rec.Action)
		assert.Equal(t, "profile", rec.EntityType)
		assert.Equal(t, "12", rec.EntityID)
		assert.Equal(t, "user_prof1", rec.ActorID)
		assert.Equal(t, []string{"name_alias", "pincode"}, rec.Payload["fields"])
		assert.NotEmpty(t, rec.Payload["event_id"])
	})

	t.Run("newer synced write wins over a direct edit", func(t *testing.T) {
		users := &mockUserDirectory{Account: testAccount(t, user.StatusActive)}
		profiles := profileReturning(testProfile(t, time.Now().Add(time.Hour)))
		auditor := &mockAuditor{}

		uc := newUpdateUseCase(users, profiles, auditor)
		_, err := uc.Execute(context.Background(), UpdateProfileCommand{
			CallerID:  7,
			CallerSID: "user_prof1",
			NameAlias: strPtr("Asha Kumari"),
		})

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
		assert.Contains(t, appErr.Message, "stale profile write")
		assert.Empty(t, profiles.Updated)
		assert.Empty(t, auditor.Records)
	})

	t.Run("rejects an empty patch", func(t *testing.T) {
		uc := newUpdateUseCase(&mockUserDirectory{}, &mockProfileRepository{}, &mockAuditor{})
		_, err := uc.Execute(context.Background(), UpdateProfileCommand{
			CallerID:  7,
			CallerSID: "user_prof1",
		})

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	})

	t.Run("erased account answers gone", func(t *testing.T) {
		users := &mockUserDirectory{Account: testAccount(t, user.StatusErased)}

		uc := newUpdateUseCase(users, &mockProfileRepository{}, &mockAuditor{})
		_, err := uc.Execute(context.Background(), UpdateProfileCommand{
			CallerID:  7,
			CallerSID: "user_prof1",
			Sex:       strPtr("female"),
		})

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrorTypeGone, appErr.Type)
	})

	t.Run("rejects missing caller identity", func(t *testing.T) {
		uc := newUpdateUseCase(&mockUserDirectory{}, &mockProfileRepository{}, &mockAuditor{})
		_, err := uc.Execute(context.Background(), UpdateProfileCommand{
			NameAlias: strPtr("Asha"),
		})

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
	})

	t.Run("audit failure aborts the write", func(t *testing.T) {
		users := &mockUserDirectory{Account: testAccount(t, user.StatusActive)}
		profiles := profileReturning(testProfile(t, time.Now().Add(-time.Hour)))
		auditor := &mockAuditor{
			AppendFunc: func(ctx context.Context, rec audit.Record) (*audit.Entry, error) {
				return nil, errors.New("chain head locked")
			},
		}

		uc := newUpdateUseCase(users, profiles, auditor)
		_, err := uc.Execute(context.Background(), UpdateProfileCommand{
			CallerID:  7,
			CallerSID: "user_prof1",
			DOB:       strPtr("1994-02-12"),
		})

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
	})

	t.Run("persistence failure is internal", func(t *testing.T) {
		users := &mockUserDirectory{Account: testAccount(t, user.StatusActive)}
		profiles := profileReturning(testProfile(t, time.Now().Add(-time.Hour)))
		profiles.UpdateFunc = func(ctx context.Context, profile *user.Profile) error {
			return errors.New("deadlock")
		}

		uc := newUpdateUseCase(users, profiles, &mockAuditor{})
		_, err := uc.Execute(context.Background(), UpdateProfileCommand{
			CallerID:  7,
			CallerSID: "user_prof1",
			Pincode:   strPtr("560002"),
		})

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
	})
}
