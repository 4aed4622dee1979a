package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/user"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

// LoginCommand identifies the account by phone number or alias handle.
type LoginCommand struct {
	Identifier string
	Password   string
	IP         string
	Device     string
}

type LoginResult struct {
	UserSID   string   `json:"user_sid"`
	Alias     string   `json:"alias"`
	Roles     []string `json:"roles"`
	Token     string   `json:"token"`
	ExpiresAt string   `json:"expires_at"`
}

type LoginUseCase struct {
	users     user.Repository
	hasher    user.PasswordHasher
	tokens    TokenIssuer
	txManager TransactionManager
	auditor   AuditAppender
	logger    logger.Interface
}

func NewLoginUseCase(
	users user.Repository,
	hasher user.PasswordHasher,
	tokens TokenIssuer,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		txManager: txManager,
		auditor:   auditor,
		logger:    logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	uc.logger.Infow("executing login use case")

	if cmd.Identifier == "" || cmd.Password == "" {
		return nil, apperrors.NewValidationError("identifier and password are required")
	}

	existing, err := uc.resolveUser(ctx, cmd.Identifier)
	if err != nil {
		return nil, err
	}
	// A missing account and a wrong password fail identically so the
	// endpoint does not reveal which identifiers exist.
	if existing == nil {
		uc.logger.Warnw("login attempt for unknown identifier", "identifier", utils.MaskPhone(cmd.Identifier))
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}
	if !existing.CanAuthenticate() {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}
	if err := existing.VerifyPassword(cmd.Password, uc.hasher); err != nil {
		uc.logger.Warnw("failed login attempt", "user_sid", existing.SID())
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	roles, err := uc.users.GetRoles(ctx, existing.ID())
	if err != nil {
		uc.logger.Errorw("failed to load roles", "error", err, "user_sid", existing.SID())
		return nil, apperrors.NewInternalError("failed to load roles")
	}

	var plainToken string
	var accessToken *user.AccessToken
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		plainToken, accessToken, err = uc.tokens.Issue(txCtx, existing.ID())
		if err != nil {
			return err
		}

		_, err = uc.auditor.Append(txCtx, audit.Record{
			ActorID:    existing.SID(),
			Action:     "user.login",
			EntityType: "user",
			EntityID:   existing.SID(),
			IP:         cmd.IP,
			Device:     cmd.Device,
		})
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to issue token", "error", err, "user_sid", existing.SID())
		return nil, apperrors.NewInternalError("failed to log in")
	}

	uc.logger.Infow("user logged in", "user_sid", existing.SID())

	return &LoginResult{
		UserSID:   existing.SID(),
		Alias:     existing.Alias(),
		Roles:     roles,
		Token:     plainToken,
		ExpiresAt: accessToken.ExpiresAt().Format(time.RFC3339),
	}, nil
}

// resolveUser looks the identifier up as a phone number first, then as an
// alias. A miss on both returns (nil, nil).
func (uc *LoginUseCase) resolveUser(ctx context.Context, identifier string) (*user.User, error) {
	found, err := uc.users.GetByPhone(ctx, identifier)
	if err == nil {
		return found, nil
	}
	if !apperrors.IsNotFoundError(err) {
		uc.logger.Errorw("failed to look up user by phone", "error", err)
		return nil, apperrors.NewInternalError("failed to look up user")
	}

	found, err = uc.users.GetByAlias(ctx, identifier)
	if err == nil {
		return found, nil
	}
	if !apperrors.IsNotFoundError(err) {
		uc.logger.Errorw("failed to look up user by alias", "error", err)
		return nil, apperrors.NewInternalError("failed to look up user")
	}
	return nil, nil
}
