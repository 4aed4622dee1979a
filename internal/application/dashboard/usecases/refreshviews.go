package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/dashboard"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// ViewRefreshOutcome reports one view rebuild. Error is empty on
// success.
type ViewRefreshOutcome struct {
	View       string `json:"view"`
	RowCount   int64  `json:"row_count"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error"`
}

type RefreshViewsResult struct {
	Views     []ViewRefreshOutcome `json:"views"`
	Refreshed int                  `json:"refreshed"`
	Failed    int                  `json:"failed"`
	RanAt     string               `json:"ran_at"`
}

// RefreshViewsUseCase rebuilds every materialized view and drops the
// cached dashboard responses afterwards. The scheduled job and the admin
// endpoint both run this; the caller holds the run lock.
type RefreshViewsUseCase struct {
	views  dashboard.Repository
	cache  ResponseCacheInvalidator
	logger logger.Interface
}

func NewRefreshViewsUseCase(
	views dashboard.Repository,
	cache ResponseCacheInvalidator,
	logger logger.Interface,
) *RefreshViewsUseCase {
	return &RefreshViewsUseCase{
		views:  views,
		cache:  cache,
		logger: logger,
	}
}

func (uc *RefreshViewsUseCase) Execute(ctx context.Context) (*RefreshViewsResult, error) {
	uc.logger.Infow("executing refresh dashboard views use case")

	outcomes := uc.views.RefreshAll(ctx)

	result := &RefreshViewsResult{
		Views: make([]ViewRefreshOutcome, 0, len(outcomes)),
		RanAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, outcome := range outcomes {
		view := ViewRefreshOutcome{
			View:       outcome.View.String(),
			RowCount:   outcome.RowCount,
			DurationMS: outcome.Duration.Milliseconds(),
		}
		if outcome.Succeeded() {
			result.Refreshed++
		} else {
			result.Failed++
			view.Error = outcome.Err.Error()
			uc.logger.Errorw("materialized view rebuild failed",
				"view", outcome.View.String(),
				"error", outcome.Err)
		}
		result.Views = append(result.Views, view)
	}

	// When nothing was rebuilt the cached responses are still accurate,
	// so the cache is only dropped after at least one successful rebuild.
	// A failed invalidation is tolerated; stale entries expire with the
	// TTL.
	if result.Refreshed > 0 {
		if err := uc.cache.InvalidateAll(ctx); err != nil {
			uc.logger.Warnw("failed to invalidate dashboard cache", "error", err)
		}
	}

	uc.logger.Infow("materialized views refreshed",
		"refreshed", result.Refreshed,
		"failed", result.Failed)

	return result, nil
}
