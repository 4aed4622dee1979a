package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
)

// TransactionManager runs a function inside one database transaction.
// Every accepted sync item commits its own transaction so a failing item
// never takes its batch siblings down with it.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuditAppender records a tamper-evident audit entry inside the caller's
// transaction.
type AuditAppender interface {
	Append(ctx context.Context, rec audit.Record) (*audit.Entry, error)
}

type SubmitBatchExecutor interface {
	Execute(ctx context.Context, cmd SubmitBatchCommand) (*SubmitBatchResult, error)
}
