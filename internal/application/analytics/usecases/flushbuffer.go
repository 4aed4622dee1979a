package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// FlushBufferResult reports one drain of the aggregation buffer.
type FlushBufferResult struct {
	Cells  int
	Events int64
}

// FlushBufferUseCase folds the in-memory aggregation buffer into the
// aggregated_events table. Runs on the flush timer, at the buffer
// threshold, and on demand; a failed upsert merges the batch back so no
// counts are lost.
type FlushBufferUseCase struct {
	buffer     *analytics.Buffer
	aggregates analytics.AggregateRepository
	logger     logger.Interface
}

func NewFlushBufferUseCase(
	buffer *analytics.Buffer,
	aggregates analytics.AggregateRepository,
	logger logger.Interface,
) *FlushBufferUseCase {
	return &FlushBufferUseCase{
		buffer:     buffer,
		aggregates: aggregates,
		logger:     logger,
	}
}

func (uc *FlushBufferUseCase) Execute(ctx context.Context) (*FlushBufferResult, error) {
	batch := uc.buffer.Drain()
	if batch == nil {
		return &FlushBufferResult{}, nil
	}

	if err := uc.aggregates.UpsertBatch(ctx, batch); err != nil {
		uc.buffer.Merge(batch)
		uc.logger.Errorw("failed to flush analytics buffer",
			"cells", len(batch), "error", err)
		return nil, apperrors.NewInternalError("failed to flush analytics buffer")
	}

	events := int64(0)
	for _, count := range batch {
		events += count
	}
	uc.logger.Infow("analytics buffer flushed", "cells", len(batch), "events", events)
	return &FlushBufferResult{Cells: len(batch), Events: events}, nil
}
