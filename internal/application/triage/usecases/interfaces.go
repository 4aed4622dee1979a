package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
)

// TransactionManager runs a function within a database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuditAppender appends one entry to the tamper-evident audit log.
type AuditAppender interface {
	Append(ctx context.Context, rec audit.Record) (*audit.Entry, error)
}

// CreateSessionExecutor defines the interface for creating triage sessions.
type CreateSessionExecutor interface {
	Execute(ctx context.Context, cmd CreateSessionCommand) (*CreateSessionResult, error)
}

// GetSessionExecutor defines the interface for reading a triage session.
type GetSessionExecutor interface {
	Execute(ctx context.Context, query GetSessionQuery) (*SessionView, error)
}
