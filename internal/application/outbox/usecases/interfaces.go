package usecases

import "context"

// DispatchPendingExecutor defines the interface for one delivery run over
// the outbound message queue.
type DispatchPendingExecutor interface {
	Execute(ctx context.Context) (*DispatchPendingResult, error)
}
