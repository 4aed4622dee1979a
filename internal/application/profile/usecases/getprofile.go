package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/user"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

type GetProfileQuery struct {
	CallerID uint
}

// ProfileView is the owner's read of their profile. ClientTime is empty
// until the first write stamps one.
type ProfileView struct {
	UserSID    string `json:"user_sid"`
	NameAlias  string `json:"name_alias"`
	DOB        string `json:"dob"`
	Sex        string `json:"sex"`
	Pincode    string `json:"pincode"`
	ClientTime string `json:"client_time"`
	UpdatedAt  string `json:"updated_at"`
}

type GetProfileUseCase struct {
	users    UserDirectory
	profiles user.ProfileRepository
	logger   logger.Interface
}

func NewGetProfileUseCase(
	users UserDirectory,
	profiles user.ProfileRepository,
	logger logger.Interface,
) *GetProfileUseCase {
	return &GetProfileUseCase{users: users, profiles: profiles, logger: logger}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, query GetProfileQuery) (*ProfileView, error) {
	uc.logger.Infow("executing get profile use case", "user_id", query.CallerID)

	if query.CallerID == 0 {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}

	account, err := activeAccount(ctx, uc.users, query.CallerID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load account", "user_id", query.CallerID, "error", err)
		return nil, apperrors.NewInternalError("failed to load profile")
	}

	profile, err := uc.profiles.GetByUserID(ctx, query.CallerID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load profile", "user_id", query.CallerID, "error", err)
		return nil, apperrors.NewInternalError("failed to load profile")
	}

	return newProfileView(account, profile), nil
}

// activeAccount loads the caller's user row and rejects erased accounts
// before any profile state is touched.
func activeAccount(ctx context.Context, users UserDirectory, userID uint) (*user.User, error) {
	account, err := users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account.Status().IsErased() {
		return nil, apperrors.NewGoneError("account has been erased")
	}
	return account, nil
}

func newProfileView(account *user.User, profile *user.Profile) *ProfileView {
	view := &ProfileView{
		UserSID:   account.SID(),
		NameAlias: profile.NameAlias(),
		DOB:       profile.DOB(),
		Sex:       profile.Sex(),
		Pincode:   profile.Pincode(),
		UpdatedAt: profile.UpdatedAt().Format(time.RFC3339),
	}
	if !profile.ClientTime().IsZero() {
		view.ClientTime = profile.ClientTime().UTC().Format(time.RFC3339)
	}
	return view
}
