package usecases

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/user"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// UpdateProfileCommand is a direct profile edit by the authenticated owner.
// Nil fields keep their current value. Sync envelopes are the canonical
// write path; a direct edit joins the same last-write-wins stream stamped
// with the server clock and a server-generated event ID, so a device write
// carrying a later client time still supersedes it.
type UpdateProfileCommand struct {
	CallerID  uint
	CallerSID string
	NameAlias *string
	DOB       *string
	Sex       *string
	Pincode   *string
	IP        string
	Device    string
}

type UpdateProfileUseCase struct {
	users     UserDirectory
	profiles  user.ProfileRepository
	txManager TransactionManager
	auditor   AuditAppender
	logger    logger.Interface
}

func NewUpdateProfileUseCase(
	users UserDirectory,
	profiles user.ProfileRepository,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		users:     users,
		profiles:  profiles,
		txManager: txManager,
		auditor:   auditor,
		logger:    logger,
	}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*ProfileView, error) {
	uc.logger.Infow("executing update profile use case", "user_id", cmd.CallerID)

	if cmd.CallerID == 0 || cmd.CallerSID == "" {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}
	if cmd.NameAlias == nil && cmd.DOB == nil && cmd.Sex == nil && cmd.Pincode == nil {
		return nil, apperrors.NewValidationError("no fields to update")
	}

	account, err := activeAccount(ctx, uc.users, cmd.CallerID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load account", "user_id", cmd.CallerID, "error", err)
		return nil, apperrors.NewInternalError("failed to update profile")
	}

	profile, err := uc.profiles.GetByUserID(ctx, cmd.CallerID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load profile", "user_id", cmd.CallerID, "error", err)
		return nil, apperrors.NewInternalError("failed to update profile")
	}

	update, fields := mergeUpdate(profile, cmd)

	clientTime := time.Now()
	eventID := uuid.NewString()
	if err := profile.Apply(update, clientTime, eventID); err != nil {
		return nil, apperrors.NewConflictError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.profiles.Update(txCtx, profile); err != nil {
			return err
		}

		_, err := uc.auditor.Append(txCtx, audit.Record{
			ActorID:    cmd.CallerSID,
			Action:     "profile.update",
			EntityType: "profile",
			EntityID:   strconv.FormatUint(uint64(profile.ID()), 10),
			IP:         cmd.IP,
			Device:     cmd.Device,
			Payload: map[string]any{
				"fields":   fields,
				"event_id": eventID,
			},
		})
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to update profile", "user_id", cmd.CallerID, "error", err)
		return nil, apperrors.NewInternalError("failed to update profile")
	}

	uc.logger.Infow("profile updated", "user_sid", cmd.CallerSID, "fields", fields)

	return newProfileView(account, profile), nil
}

// mergeUpdate overlays the provided fields on the current profile state and
// reports which field names changed hands.
func mergeUpdate(profile *user.Profile, cmd UpdateProfileCommand) (user.ProfileUpdate, []string) {
	update := user.ProfileUpdate{
		NameAlias: profile.NameAlias(),
		DOB:       profile.DOB(),
		Sex:       profile.Sex(),
		Pincode:   profile.Pincode(),
	}

	fields := make([]string, 0, 4)
	if cmd.NameAlias != nil {
		update.NameAlias = *cmd.NameAlias
		fields = append(fields, "name_alias")
	}
	if cmd.DOB != nil {
		update.DOB = *cmd.DOB
		fields = append(fields, "dob")
	}
	if cmd.Sex != nil {
		update.Sex = *cmd.Sex
		fields = append(fields, "sex")
	}
	if cmd.Pincode != nil {
		update.Pincode = *cmd.Pincode
		fields = append(fields, "pincode")
	}
	return update, fields
}
