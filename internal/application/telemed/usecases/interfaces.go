package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/outbox"
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

// UserDirectory resolves internal user IDs, used to find the prescription
// SMS recipient.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

// MessageQueue enqueues outbound messages for the dispatch job.
type MessageQueue interface {
	Create(ctx context.Context, message *outbox.Message) error
}

// CreateTeleRequestExecutor defines the interface for creating tele requests.
type CreateTeleRequestExecutor interface {
	Execute(ctx context.Context, cmd CreateTeleRequestCommand) (*TeleRequestResult, error)
}

// UpdateTeleRequestExecutor defines the interface for clinician status moves.
type UpdateTeleRequestExecutor interface {
	Execute(ctx context.Context, cmd UpdateTeleRequestCommand) (*TeleRequestResult, error)
}

// CreatePrescriptionExecutor defines the interface for writing prescriptions.
type CreatePrescriptionExecutor interface {
	Execute(ctx context.Context, cmd CreatePrescriptionCommand) (*CreatePrescriptionResult, error)
}
