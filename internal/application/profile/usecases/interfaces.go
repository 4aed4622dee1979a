package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/consent"
	"github.com/sahay-inc/sahay/internal/domain/user"
)

// TransactionManager runs a function inside one database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuditAppender records a tamper-evident audit entry inside the caller's
// transaction.
type AuditAppender interface {
	Append(ctx context.Context, rec audit.Record) (*audit.Entry, error)
}

// ConsentGuard enforces the consent gate on profile export.
type ConsentGuard interface {
	Require(ctx context.Context, userID uint, category consent.Category, scope consent.Scope) error
}

// UserDirectory resolves the account behind a profile operation so reads
// against an erased account answer Gone instead of exposing the tombstone.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

type GetProfileExecutor interface {
	Execute(ctx context.Context, query GetProfileQuery) (*ProfileView, error)
}

type UpdateProfileExecutor interface {
	Execute(ctx context.Context, cmd UpdateProfileCommand) (*ProfileView, error)
}

type ExportProfileExecutor interface {
	Execute(ctx context.Context, query ExportProfileQuery) (*ExportResult, error)
}
