package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// LogoutCommand revokes the presented token. ActorSID comes from the
// authenticated request context.
type LogoutCommand struct {
	Token    string
	ActorSID string
	IP       string
	Device   string
}

type LogoutUseCase struct {
	tokens  TokenRevoker
	auditor AuditAppender
	logger  logger.Interface
}

func NewLogoutUseCase(tokens TokenRevoker, auditor AuditAppender, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		tokens:  tokens,
		auditor: auditor,
		logger:  logger,
	}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	if cmd.Token == "" {
		return apperrors.NewValidationError("token is required")
	}

	if err := uc.tokens.Revoke(ctx, cmd.Token); err != nil {
		uc.logger.Errorw("failed to revoke token", "error", err, "user_sid", cmd.ActorSID)
		return apperrors.NewInternalError("failed to log out")
	}

	if _, err := uc.auditor.Append(ctx, audit.Record{
		ActorID:    cmd.ActorSID,
		Action:     "user.logout",
		EntityType: "user",
		EntityID:   cmd.ActorSID,
		IP:         cmd.IP,
		Device:     cmd.Device,
	}); err != nil {
		// The token is already dead; a missed audit row is logged, not fatal.
		uc.logger.Warnw("failed to audit logout", "error", err, "user_sid", cmd.ActorSID)
	}

	uc.logger.Infow("user logged out", "user_sid", cmd.ActorSID)
	return nil
}
