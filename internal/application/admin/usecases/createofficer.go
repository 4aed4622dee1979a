package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/user"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

const minPasswordLength = 8

// grantableRoles is the set the CLI may hand out. Citizens and caregivers
// self-register through the API instead.
var grantableRoles = map[user.Role]bool{
	user.RoleASHA:            true,
	user.RoleClinician:       true,
	user.RoleDistrictOfficer: true,
	user.RoleStateOfficer:    true,
	user.RoleNationalAdmin:   true,
}

// CreateOfficerCommand carries the officer bootstrap input. Officer accounts
// are alias+password only; the password comes from a terminal prompt, never
// a flag.
type CreateOfficerCommand struct {
	Alias    string
	Role     string
	Password string
}

type CreateOfficerResult struct {
	UserSID   string `json:"user_sid"`
	Alias     string `json:"alias"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// CreateOfficerUseCase creates a privileged account from the CLI. It runs
// without a request context, so the audit entry carries the system actor.
type CreateOfficerUseCase struct {
	users     user.Repository
	profiles  user.ProfileRepository
	hasher    user.PasswordHasher
	txManager TransactionManager
	auditor   AuditAppender
	logger    logger.Interface
}

func NewCreateOfficerUseCase(
	users user.Repository,
	profiles user.ProfileRepository,
	hasher user.PasswordHasher,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *CreateOfficerUseCase {
	return &CreateOfficerUseCase{
		users:     users,
		profiles:  profiles,
		hasher:    hasher,
		txManager: txManager,
		auditor:   auditor,
		logger:    logger,
	}
}

func (uc *CreateOfficerUseCase) Execute(ctx context.Context, cmd CreateOfficerCommand) (*CreateOfficerResult, error) {
	uc.logger.Infow("executing create officer use case", "role", cmd.Role)

	role, err := uc.validateCommand(cmd)
	if err != nil {
		return nil, err
	}

	if _, err := uc.users.GetByAlias(ctx, cmd.Alias); err == nil {
		return nil, apperrors.NewConflictError("alias is already taken")
	} else if !apperrors.IsNotFoundError(err) {
		uc.logger.Errorw("failed to check alias availability", "error", err)
		return nil, apperrors.NewInternalError("failed to check alias availability")
	}

	passwordHash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, apperrors.NewInternalError("failed to process password")
	}

	officer, err := user.NewUser(nil, cmd.Alias, passwordHash)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.users.Create(txCtx, officer); err != nil {
			return err
		}

		profile, err := user.NewProfile(officer.ID())
		if err != nil {
			return err
		}
		if err := uc.profiles.Create(txCtx, profile); err != nil {
			return err
		}

		if err := uc.users.AssignRole(txCtx, officer.ID(), role); err != nil {
			return err
		}

		_, err = uc.auditor.Append(txCtx, audit.Record{
			ActorID:    audit.SystemActor,
			Action:     "user.create_officer",
			EntityType: "user",
			EntityID:   officer.SID(),
			Payload: map[string]any{
				"role": role.String(),
			},
		})
		return err
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create officer", "error", err)
		return nil, apperrors.NewInternalError("failed to create officer")
	}

	uc.logger.Infow("officer created", "user_sid", officer.SID(), "role", role.String())

	return &CreateOfficerResult{
		UserSID:   officer.SID(),
		Alias:     officer.Alias(),
		Role:      role.String(),
		CreatedAt: officer.CreatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *CreateOfficerUseCase) validateCommand(cmd CreateOfficerCommand) (user.Role, error) {
	if cmd.Alias == "" {
		return "", apperrors.NewValidationError("alias is required")
	}
	role, err := user.NewRole(cmd.Role)
	if err != nil {
		return "", apperrors.NewValidationError(err.Error())
	}
	if !grantableRoles[role] {
		return "", apperrors.NewValidationError("role " + role.String() + " cannot be granted from the CLI")
	}
	if len(cmd.Password) < minPasswordLength {
		return "", apperrors.NewValidationError("password must be at least 8 characters")
	}
	return role, nil
}
