package usecases

import (
	"context"
	"strconv"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/consent"
	"github.com/sahay-inc/sahay/internal/domain/user"
	"github.com/sahay-inc/sahay/internal/shared/constants"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

type ExportProfileQuery struct {
	CallerID  uint
	CallerSID string
	IP        string
	Device    string
}

type ExportResult struct {
	ReportVersion string       `json:"report_version"`
	GeneratedAt   string       `json:"generated_at"`
	Profile       *ProfileView `json:"profile,omitempty"`
}

// ExportProfileUseCase hands the citizen a portable copy of their profile.
// The read is gated on a tracking/clinician consent grant and leaves an
// audit entry even when no profile row exists.
type ExportProfileUseCase struct {
	users     UserDirectory
	profiles  user.ProfileRepository
	consents  ConsentGuard
	txManager TransactionManager
	auditor   AuditAppender
	logger    logger.Interface
}

func NewExportProfileUseCase(
	users UserDirectory,
	profiles user.ProfileRepository,
	consents ConsentGuard,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *ExportProfileUseCase {
	return &ExportProfileUseCase{
		users:     users,
		profiles:  profiles,
		consents:  consents,
		txManager: txManager,
		auditor:   auditor,
		logger:    logger,
	}
}

func (uc *ExportProfileUseCase) Execute(ctx context.Context, query ExportProfileQuery) (*ExportResult, error) {
	uc.logger.Infow("executing export profile use case", "user_id", query.CallerID)

	if query.CallerID == 0 || query.CallerSID == "" {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}

	if err := uc.consents.Require(ctx, query.CallerID, consent.CategoryTracking, consent.ScopeClinician); err != nil {
		return nil, err
	}

	account, err := activeAccount(ctx, uc.users, query.CallerID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load account", "user_id", query.CallerID, "error", err)
		return nil, apperrors.NewInternalError("failed to export profile")
	}

	profile, profileErr := uc.profiles.GetByUserID(ctx, query.CallerID)
	if profileErr != nil && !apperrors.IsNotFoundError(profileErr) {
		uc.logger.Errorw("failed to load profile", "user_id", query.CallerID, "error", profileErr)
		return nil, apperrors.NewInternalError("failed to export profile")
	}

	entityID := ""
	if profile != nil {
		entityID = strconv.FormatUint(uint64(profile.ID()), 10)
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		_, err := uc.auditor.Append(txCtx, audit.Record{
			ActorID:    query.CallerSID,
			Action:     "export.profile",
			EntityType: "profile",
			EntityID:   entityID,
			IP:         query.IP,
			Device:     query.Device,
			Payload: map[string]any{
				"report_version": constants.ReportVersion,
			},
		})
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to audit export", "user_id", query.CallerID, "error", err)
		return nil, apperrors.NewInternalError("failed to export profile")
	}

	// A missing profile still leaves an audit entry for the attempted export.
	if profileErr != nil {
		return nil, profileErr
	}

	uc.logger.Infow("profile exported", "user_sid", query.CallerSID)

	return &ExportResult{
		ReportVersion: constants.ReportVersion,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		Profile:       newProfileView(account, profile),
	}, nil
}
