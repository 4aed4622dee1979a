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

// CreateOfficerExecutor defines the interface for the CLI officer bootstrap.
type CreateOfficerExecutor interface {
	Execute(ctx context.Context, cmd CreateOfficerCommand) (*CreateOfficerResult, error)
}
