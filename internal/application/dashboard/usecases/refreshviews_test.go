package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/dashboard"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

func TestRefreshViewsUseCase_RebuildsAndInvalidates(t *testing.T) {
	views := &mockViewRepository{}
	cache := &mockCacheInvalidator{}
	uc := NewRefreshViewsUseCase(views, cache, logger.NewLogger())

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, result.Refreshed)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 1, views.RefreshRuns)
	assert.Equal(t, 1, cache.Calls)

	require.Len(t, result.Views, 4)
	assert.Equal(t, "mv_daily_triage_counts", result.Views[0].View)
	assert.Equal(t, int64(12), result.Views[0].RowCount)
	assert.Empty(t, result.Views[0].Error)

	_, err = time.Parse(time.RFC3339, result.RanAt)
	require.NoError(t, err)
}

func TestRefreshViewsUseCase_ReportsPartialFailure(t *testing.T) {
	views := &mockViewRepository{
		RefreshAllFunc: func(ctx context.Context) []dashboard.RefreshResult {
			return []dashboard.RefreshResult{
				{View: dashboard.ViewDailyTriageCounts, RowCount: 12, Duration: 5 * time.Millisecond},
				{View: dashboard.ViewComplaintsByDistrict, Err: errors.New("disk full")},
				{View: dashboard.ViewSymptomHeatmap, RowCount: 7, Duration: 3 * time.Millisecond},
				{View: dashboard.ViewSLABreachCounts, RowCount: 4, Duration: 2 * time.Millisecond},
			}
		},
	}
	cache := &mockCacheInvalidator{}
	uc := NewRefreshViewsUseCase(views, cache, logger.NewLogger())

	result, err := uc.Execute(context.Background())

	// One failing view does not fail the run; its outcome carries the
	// error and the surviving rebuilds still invalidate the cache.
	require.NoError(t, err)
	assert.Equal(t, 3, result.Refreshed)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, cache.Calls)

	require.Len(t, result.Views, 4)
	assert.Contains(t, result.Views[1].Error, "disk full")
	assert.Empty(t, result.Views[0].Error)
}

func TestRefreshViewsUseCase_SkipsInvalidationWhenNothingRebuilt(t *testing.T) {
	views := &mockViewRepository{
		RefreshAllFunc: func(ctx context.Context) []dashboard.RefreshResult {
			results := make([]dashboard.RefreshResult, 0, 4)
			for _, view := range dashboard.AllViewNames() {
				results = append(results, dashboard.RefreshResult{View: view, Err: errors.New("database is locked")})
			}
			return results
		},
	}
	cache := &mockCacheInvalidator{}
	uc := NewRefreshViewsUseCase(views, cache, logger.NewLogger())

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Refreshed)
	assert.Equal(t, 4, result.Failed)
	assert.Equal(t, 0, cache.Calls)
}

func TestRefreshViewsUseCase_ToleratesCacheFailure(t *testing.T) {
	views := &mockViewRepository{}
	cache := &mockCacheInvalidator{
		InvalidateAllFunc: func(ctx context.Context) error {
			return errors.New("redis unreachable")
		},
	}
	uc := NewRefreshViewsUseCase(views, cache, logger.NewLogger())

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, result.Refreshed)
	assert.Equal(t, 1, cache.Calls)
}
