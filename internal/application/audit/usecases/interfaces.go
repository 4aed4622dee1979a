package usecases

import "context"

type ListEntriesExecutor interface {
	Execute(ctx context.Context, query ListEntriesQuery) (*ListEntriesResult, error)
}

type VerifyChainExecutor interface {
	Execute(ctx context.Context, query VerifyChainQuery) (*VerifyChainResult, error)
}
