package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/user"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// EraseUserCommand applies the right to erasure to the caller's own
// account. The erasure is terminal; the user row survives as a scrubbed
// tombstone so later reads answer Gone rather than NotFound.
type EraseUserCommand struct {
	UserID   uint
	ActorSID string
	IP       string
	Device   string
}

type EraseUserResult struct {
	UserSID  string `json:"user_sid"`
	Status   string `json:"status"`
	ErasedAt string `json:"erased_at"`
}

// EraseUserUseCase runs the erasure cascade in one transaction: live
// sessions are revoked, the profile is scrubbed in place, every owned-data
// repository deletes its rows, and complaint plus raw analytics links are
// anonymized. Audit chain entries are append-only and stay untouched.
type EraseUserUseCase struct {
	users      user.Repository
	profiles   user.ProfileRepository
	sessions   SessionRevoker
	erasers    []OwnedDataEraser
	complaints ComplaintAnonymizer
	events     AnalyticsAnonymizer
	txManager  TransactionManager
	auditor    AuditAppender
	logger     logger.Interface
}

func NewEraseUserUseCase(
	users user.Repository,
	profiles user.ProfileRepository,
	sessions SessionRevoker,
	erasers []OwnedDataEraser,
	complaints ComplaintAnonymizer,
	events AnalyticsAnonymizer,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *EraseUserUseCase {
	return &EraseUserUseCase{
		users:      users,
		profiles:   profiles,
		sessions:   sessions,
		erasers:    erasers,
		complaints: complaints,
		events:     events,
		txManager:  txManager,
		auditor:    auditor,
		logger:     logger,
	}
}

func (uc *EraseUserUseCase) Execute(ctx context.Context, cmd EraseUserCommand) (*EraseUserResult, error) {
	uc.logger.Infow("executing erase user use case", "user_id", cmd.UserID)

	if cmd.UserID == 0 || cmd.ActorSID == "" {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}

	account, err := uc.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load account", "user_id", cmd.UserID, "error", err)
		return nil, apperrors.NewInternalError("failed to erase account")
	}
	if account.Status().IsErased() {
		return nil, apperrors.NewGoneError("account has already been erased")
	}

	if err := account.Erase(); err != nil {
		return nil, apperrors.NewStateInvalidError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		// Live sessions die before any row is touched.
		if err := uc.sessions.RevokeAllForUser(txCtx, cmd.UserID); err != nil {
			return err
		}

		profile, err := uc.profiles.GetByUserID(txCtx, cmd.UserID)
		switch {
		case err == nil:
			profile.Scrub()
			if err := uc.profiles.Update(txCtx, profile); err != nil {
				return err
			}
		case !apperrors.IsNotFoundError(err):
			return err
		}

		for _, eraser := range uc.erasers {
			if err := eraser.DeleteByUser(txCtx, cmd.UserID); err != nil {
				return err
			}
		}
		if err := uc.complaints.AnonymizeByUser(txCtx, cmd.UserID); err != nil {
			return err
		}
		if err := uc.events.AnonymizeByUser(txCtx, cmd.UserID); err != nil {
			return err
		}
		if err := uc.users.Update(txCtx, account); err != nil {
			return err
		}

		_, err = uc.auditor.Append(txCtx, audit.Record{
			ActorID:    cmd.ActorSID,
			Action:     "user.erase",
			EntityType: "user",
			EntityID:   account.SID(),
			IP:         cmd.IP,
			Device:     cmd.Device,
			Payload: map[string]any{
				"status": account.Status().String(),
			},
		})
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to erase account", "user_id", cmd.UserID, "error", err)
		return nil, apperrors.NewInternalError("failed to erase account")
	}

	uc.logger.Infow("user erased", "user_sid", account.SID())

	return &EraseUserResult{
		UserSID:  account.SID(),
		Status:   account.Status().String(),
		ErasedAt: account.UpdatedAt().Format(time.RFC3339),
	}, nil
}
