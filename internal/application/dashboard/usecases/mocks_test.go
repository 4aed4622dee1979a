package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	"github.com/sahay-inc/sahay/internal/domain/dashboard"
)

type mockAggregateRepository struct {
	QueryFunc func(ctx context.Context, filter analytics.QueryFilter) ([]*analytics.Aggregate, error)
	Filters   []analytics.QueryFilter
}

func (m *mockAggregateRepository) UpsertBatch(ctx context.Context, batch analytics.Batch) error {
	return nil
}

func (m *mockAggregateRepository) Query(ctx context.Context, filter analytics.QueryFilter) ([]*analytics.Aggregate, error) {
	m.Filters = append(m.Filters, filter)
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockAggregateRepository) CountCells(ctx context.Context) (int64, error) {
	return 0, nil
}

type mockViewRepository struct {
	RefreshAllFunc           func(ctx context.Context) []dashboard.RefreshResult
	FreshnessAllFunc         func(ctx context.Context) ([]dashboard.Freshness, error)
	DailyTriageCountsFunc    func(ctx context.Context, filter dashboard.TriageCountsFilter) ([]dashboard.DailyTriageRow, error)
	ComplaintsByDistrictFunc func(ctx context.Context, filter dashboard.ComplaintDistrictFilter) ([]dashboard.ComplaintDistrictRow, error)
	SymptomHeatmapFunc       func(ctx context.Context, filter dashboard.HeatmapFilter) ([]dashboard.SymptomHeatmapRow, error)
	SLABreachCountsFunc      func(ctx context.Context, filter dashboard.SLABreachFilter) ([]dashboard.SLABreachRow, error)

	RefreshRuns     int
	TriageFilters   []dashboard.TriageCountsFilter
	DistrictFilters []dashboard.ComplaintDistrictFilter
	HeatmapFilters  []dashboard.HeatmapFilter
	BreachFilters   []dashboard.SLABreachFilter
}

func (m *mockViewRepository) RefreshAll(ctx context.Context) []dashboard.RefreshResult {
	m.RefreshRuns++
	if m.RefreshAllFunc != nil {
		return m.RefreshAllFunc(ctx)
	}
	results := make([]dashboard.RefreshResult, 0, len(dashboard.AllViewNames()))
	for _, view := range dashboard.AllViewNames() {
		results = append(results, dashboard.RefreshResult{
			View:     view,
			RowCount: 12,
			Duration: 5 * time.Millisecond,
		})
	}
	return results
}

func (m *mockViewRepository) FreshnessAll(ctx context.Context) ([]dashboard.Freshness, error) {
	if m.FreshnessAllFunc != nil {
		return m.FreshnessAllFunc(ctx)
	}
	freshness := make([]dashboard.Freshness, 0, len(dashboard.AllViewNames()))
	for _, view := range dashboard.AllViewNames() {
		freshness = append(freshness, dashboard.Freshness{
			View:        view,
			RefreshedAt: time.Now(),
			RowCount:    12,
		})
	}
	return freshness, nil
}

func (m *mockViewRepository) DailyTriageCounts(ctx context.Context, filter dashboard.TriageCountsFilter) ([]dashboard.DailyTriageRow, error) {
	m.TriageFilters = append(m.TriageFilters, filter)
	if m.DailyTriageCountsFunc != nil {
		return m.DailyTriageCountsFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockViewRepository) ComplaintsByDistrict(ctx context.Context, filter dashboard.ComplaintDistrictFilter) ([]dashboard.ComplaintDistrictRow, error) {
	m.DistrictFilters = append(m.DistrictFilters, filter)
	if m.ComplaintsByDistrictFunc != nil {
		return m.ComplaintsByDistrictFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockViewRepository) SymptomHeatmap(ctx context.Context, filter dashboard.HeatmapFilter) ([]dashboard.SymptomHeatmapRow, error) {
	m.HeatmapFilters = append(m.HeatmapFilters, filter)
	if m.SymptomHeatmapFunc != nil {
		return m.SymptomHeatmapFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockViewRepository) SLABreachCounts(ctx context.Context, filter dashboard.SLABreachFilter) ([]dashboard.SLABreachRow, error) {
	m.BreachFilters = append(m.BreachFilters, filter)
	if m.SLABreachCountsFunc != nil {
		return m.SLABreachCountsFunc(ctx, filter)
	}
	return nil, nil
}

type mockCacheInvalidator struct {
	InvalidateAllFunc func(ctx context.Context) error
	Calls             int
}

func (m *mockCacheInvalidator) InvalidateAll(ctx context.Context) error {
	m.Calls++
	if m.InvalidateAllFunc != nil {
		return m.InvalidateAllFunc(ctx)
	}
	return nil
}
