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

// SubmitScreeningExecutor defines the interface for recording screenings.
type SubmitScreeningExecutor interface {
	Execute(ctx context.Context, cmd SubmitScreeningCommand) (*SubmitScreeningResult, error)
}

// GetResultExecutor defines the interface for reading a screening result.
type GetResultExecutor interface {
	Execute(ctx context.Context, query GetResultQuery) (*ResultView, error)
}
