package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/user"
)

// TransactionManager runs a function within a database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuditAppender appends one entry to the tamper-evident audit log.
type AuditAppender interface {
	Append(ctx context.Context, rec audit.Record) (*audit.Entry, error)
}

// ProfileDirectory resolves the caller's profile for the date of birth.
type ProfileDirectory interface {
	GetByUserID(ctx context.Context, userID uint) (*user.Profile, error)
}

// RecordVaccinationExecutor defines the interface for recording doses.
type RecordVaccinationExecutor interface {
	Execute(ctx context.Context, cmd RecordVaccinationCommand) (*RecordVaccinationResult, error)
}

// NextDueExecutor defines the interface for the next-due schedule read.
type NextDueExecutor interface {
	Execute(ctx context.Context, query NextDueQuery) (*NextDueView, error)
}
