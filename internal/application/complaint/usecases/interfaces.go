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

// PayloadSealer encrypts complaint descriptions at rest and decrypts them
// for authorized reads.
type PayloadSealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// UserDirectory resolves internal user IDs, used to find notification
// recipients.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

// MessageQueue enqueues outbound messages for the dispatch job.
type MessageQueue interface {
	Create(ctx context.Context, message *outbox.Message) error
}

// CreateComplaintExecutor defines the interface for filing complaints.
type CreateComplaintExecutor interface {
	Execute(ctx context.Context, cmd CreateComplaintCommand) (*CreateComplaintResult, error)
}

// GetComplaintExecutor defines the interface for reading one complaint.
type GetComplaintExecutor interface {
	Execute(ctx context.Context, query GetComplaintQuery) (*ComplaintView, error)
}

// ListComplaintsExecutor defines the interface for listing complaints.
type ListComplaintsExecutor interface {
	Execute(ctx context.Context, query ListComplaintsQuery) (*ListComplaintsResult, error)
}

// UpdateStatusExecutor defines the interface for officer status moves.
type UpdateStatusExecutor interface {
	Execute(ctx context.Context, cmd UpdateStatusCommand) (*StatusUpdateResult, error)
}

// CloseComplaintExecutor defines the interface for closing with feedback.
type CloseComplaintExecutor interface {
	Execute(ctx context.Context, cmd CloseComplaintCommand) (*StatusUpdateResult, error)
}

// UploadEvidenceExecutor defines the interface for attaching evidence.
type UploadEvidenceExecutor interface {
	Execute(ctx context.Context, cmd UploadEvidenceCommand) (*UploadEvidenceResult, error)
}

// GetHistoryExecutor defines the interface for reading status history.
type GetHistoryExecutor interface {
	Execute(ctx context.Context, query GetHistoryQuery) (*HistoryResult, error)
}

// EscalationSweeper defines the interface for the SLA breach sweep, run by
// the scheduler and by the manual trigger endpoint.
type EscalationSweeper interface {
	Execute(ctx context.Context) (*EscalationSweepResult, error)
}
