package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/user"
)

// TransactionManager runs a function inside one database transaction.
// Repositories called within fn join the transaction through the context.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuditAppender records a tamper-evident audit entry. It must be called
// inside the same transaction as the write it records.
type AuditAppender interface {
	Append(ctx context.Context, rec audit.Record) (*audit.Entry, error)
}

// TokenIssuer mints opaque bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(ctx context.Context, userID uint) (string, *user.AccessToken, error)
}

// TokenRevoker invalidates a presented bearer token.
type TokenRevoker interface {
	Revoke(ctx context.Context, plainToken string) error
}

type RegisterExecutor interface {
	Execute(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error)
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type LogoutExecutor interface {
	Execute(ctx context.Context, cmd LogoutCommand) error
}
