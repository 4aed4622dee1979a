package usecases

import (
	"context"
	"regexp"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/user"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// phonePattern matches Indian mobile numbers as entered on the app.
var phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

const minPasswordLength = 8

// RegisterCommand carries the registration input. Either Phone or Alias must
// be present; alias-only accounts are assisted registrations a field worker
// creates for citizens without their own phone.
type RegisterCommand struct {
	Phone    *string
	Alias    string
	Password string
	IP       string
	Device   string
}

type RegisterResult struct {
	UserSID   string   `json:"user_sid"`
	Alias     string   `json:"alias"`
	Phone     *string  `json:"phone,omitempty"`
	Roles     []string `json:"roles"`
	Token     string   `json:"token"`
	ExpiresAt string   `json:"expires_at"`
	CreatedAt string   `json:"created_at"`
}

type RegisterUseCase struct {
	users     user.Repository
	profiles  user.ProfileRepository
	hasher    user.PasswordHasher
	tokens    TokenIssuer
	txManager TransactionManager
	auditor   AuditAppender
	logger    logger.Interface
}

func NewRegisterUseCase(
	users user.Repository,
	profiles user.ProfileRepository,
	hasher user.PasswordHasher,
	tokens TokenIssuer,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		users:     users,
		profiles:  profiles,
		hasher:    hasher,
		tokens:    tokens,
		txManager: txManager,
		auditor:   auditor,
		logger:    logger,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
	uc.logger.Infow("executing register use case", "has_phone", cmd.Phone != nil)

	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	if cmd.Phone != nil {
		exists, err := uc.users.ExistsByPhone(ctx, *cmd.Phone)
		if err != nil {
			uc.logger.Errorw("failed to check phone existence", "error", err)
			return nil, apperrors.NewInternalError("failed to check phone availability")
		}
		if exists {
			return nil, apperrors.NewConflictError("phone number is already registered")
		}
	}
	if cmd.Alias != "" {
		if _, err := uc.users.GetByAlias(ctx, cmd.Alias); err == nil {
			return nil, apperrors.NewConflictError("alias is already taken")
		} else if !apperrors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to check alias availability", "error", err)
			return nil, apperrors.NewInternalError("failed to check alias availability")
		}
	}

	passwordHash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, apperrors.NewInternalError("failed to process password")
	}

	newUser, err := user.NewUser(cmd.Phone, cmd.Alias, passwordHash)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	var plainToken string
	var accessToken *user.AccessToken
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.users.Create(txCtx, newUser); err != nil {
			return err
		}

		profile, err := user.NewProfile(newUser.ID())
		if err != nil {
			return err
		}
		if err := uc.profiles.Create(txCtx, profile); err != nil {
			return err
		}

		if err := uc.users.AssignRole(txCtx, newUser.ID(), user.RoleCitizen); err != nil {
			return err
		}

		if _, err := uc.auditor.Append(txCtx, audit.Record{
			ActorID:    newUser.SID(),
			Action:     "user.register",
			EntityType: "user",
			EntityID:   newUser.SID(),
			IP:         cmd.IP,
			Device:     cmd.Device,
		}); err != nil {
			return err
		}

		plainToken, accessToken, err = uc.tokens.Issue(txCtx, newUser.ID())
		return err
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to register user", "error", err)
		return nil, apperrors.NewInternalError("failed to register user")
	}

	uc.logger.Infow("user registered", "user_sid", newUser.SID())

	return &RegisterResult{
		UserSID:   newUser.SID(),
		Alias:     newUser.Alias(),
		Phone:     newUser.Phone(),
		Roles:     []string{user.RoleCitizen.String()},
		Token:     plainToken,
		ExpiresAt: accessToken.ExpiresAt().Format(time.RFC3339),
		CreatedAt: newUser.CreatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *RegisterUseCase) validateCommand(cmd RegisterCommand) error {
	if (cmd.Phone == nil || *cmd.Phone == "") && cmd.Alias == "" {
		return apperrors.NewValidationError("phone or alias is required")
	}
	if cmd.Phone != nil && *cmd.Phone != "" && !phonePattern.MatchString(*cmd.Phone) {
		return apperrors.NewValidationError("phone must be a 10-digit mobile number")
	}
	if len(cmd.Password) < minPasswordLength {
		return apperrors.NewValidationError("password must be at least 8 characters")
	}
	return nil
}
