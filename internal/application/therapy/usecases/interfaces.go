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

// CreateModuleExecutor defines the interface for authoring modules.
type CreateModuleExecutor interface {
	Execute(ctx context.Context, cmd CreateModuleCommand) (*ModuleView, error)
}

// ListModulesExecutor defines the interface for browsing modules.
type ListModulesExecutor interface {
	Execute(ctx context.Context, query ListModulesQuery) (*ListModulesResult, error)
}

// GeneratePackExecutor defines the interface for building pack archives.
type GeneratePackExecutor interface {
	Execute(ctx context.Context, cmd GeneratePackCommand) (*GeneratePackResult, error)
}
