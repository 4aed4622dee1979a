package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
)

// TransactionManager runs a function inside one database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuditAppender records a tamper-evident audit entry inside the caller's
// transaction.
type AuditAppender interface {
	Append(ctx context.Context, rec audit.Record) (*audit.Entry, error)
}

// SessionRevoker kills every live token belonging to a user.
type SessionRevoker interface {
	RevokeAllForUser(ctx context.Context, userID uint) error
}

// OwnedDataEraser deletes one aggregate's rows for a user during erasure.
// Every owned-data repository satisfies this; the cascade fans out over all
// of them inside one transaction.
type OwnedDataEraser interface {
	DeleteByUser(ctx context.Context, userID uint) error
}

// ComplaintAnonymizer severs the submitter link on the user's complaints.
// The complaint content itself stays available to officers as anonymous.
type ComplaintAnonymizer interface {
	AnonymizeByUser(ctx context.Context, submitterID uint) error
}

// AnalyticsAnonymizer severs the audit link on the user's raw analytics
// rows. The de-identified rows are retained.
type AnalyticsAnonymizer interface {
	AnonymizeByUser(ctx context.Context, userID uint) error
}

type EraseUserExecutor interface {
	Execute(ctx context.Context, cmd EraseUserCommand) (*EraseUserResult, error)
}
