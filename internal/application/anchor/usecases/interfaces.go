package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/complaint"
)

// TransactionManager runs a function within a database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuditAppender appends one entry to the tamper-evident audit log.
type AuditAppender interface {
	Append(ctx context.Context, rec audit.Record) (*audit.Entry, error)
}

// ComplaintDirectory resolves the complaints that anchor records refer to.
type ComplaintDirectory interface {
	GetByID(ctx context.Context, id uint) (*complaint.Complaint, error)
	GetBySID(ctx context.Context, sid string) (*complaint.Complaint, error)
}

// SLARuleDirectory resolves the time budget in force for a category and
// level, used to recompute the terms sealed at filing.
type SLARuleDirectory interface {
	GetByCategoryAndLevel(ctx context.Context, category complaint.Category, level complaint.EscalationLevel) (*complaint.SLARule, error)
}

// RunLock serializes submission runs across the scheduled job and the
// manual trigger endpoint.
type RunLock interface {
	TryAcquire(ctx context.Context) (token string, acquired bool, err error)
	Release(ctx context.Context, token string) error
}

// AnchorSubmitter defines the interface for one submission run over the
// queued anchor records.
type AnchorSubmitter interface {
	Execute(ctx context.Context) (*SubmitPendingResult, error)
}

// GetComplaintAnchorsExecutor defines the interface for reading a
// complaint's anchor trail.
type GetComplaintAnchorsExecutor interface {
	Execute(ctx context.Context, query GetComplaintAnchorsQuery) (*ComplaintAnchorsResult, error)
}

// VerifyAnchorExecutor defines the interface for recomputing and comparing
// anchored hashes.
type VerifyAnchorExecutor interface {
	Execute(ctx context.Context, query VerifyAnchorQuery) (*VerifyAnchorResult, error)
}

// RetryAnchorsExecutor defines the interface for the manual retry trigger.
type RetryAnchorsExecutor interface {
	Execute(ctx context.Context, cmd RetryAnchorsCommand) (*RetryAnchorsResult, error)
}
