package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
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

type GrantConsentExecutor interface {
	Execute(ctx context.Context, cmd GrantConsentCommand) (*GrantConsentResult, error)
}

type ListConsentsExecutor interface {
	Execute(ctx context.Context, query ListConsentsQuery) (*ListConsentsResult, error)
}
