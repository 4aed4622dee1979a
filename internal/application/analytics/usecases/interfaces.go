package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/consent"
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

// ConsentGuard re-checks the analytics grant at emission time. Route
// middleware checks it too, but internal emitters bypass the route.
type ConsentGuard interface {
	Require(ctx context.Context, userID uint, category consent.Category, scope consent.Scope) error
}

// ProfileDirectory resolves the demographics slice of the emitting user.
type ProfileDirectory interface {
	GetByUserID(ctx context.Context, userID uint) (*user.Profile, error)
}

// BufferFlusher drains the aggregation buffer into storage.
type BufferFlusher interface {
	Execute(ctx context.Context) (*FlushBufferResult, error)
}

// EmitEventExecutor defines the interface for emitting one analytics event.
type EmitEventExecutor interface {
	Execute(ctx context.Context, cmd EmitEventCommand) (*EmitEventResult, error)
}

// GetSummaryExecutor defines the interface for the k-filtered summary read.
type GetSummaryExecutor interface {
	Execute(ctx context.Context, query GetSummaryQuery) (*SummaryResult, error)
}
