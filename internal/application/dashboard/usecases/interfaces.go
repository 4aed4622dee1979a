package usecases

import (
	"context"
)

// ResponseCacheInvalidator drops every cached dashboard payload. Called
// after a view rebuild so officers stop reading pre-refresh numbers
// before the cache TTL would expire them.
type ResponseCacheInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

// GetOverviewExecutor defines the interface for the dashboard overview.
type GetOverviewExecutor interface {
	Execute(ctx context.Context, query OverviewQuery) (*OverviewResult, error)
}

// GetTimeSeriesExecutor defines the interface for trend-chart reads.
type GetTimeSeriesExecutor interface {
	Execute(ctx context.Context, query TimeSeriesQuery) (*TimeSeriesResult, error)
}

// GetHeatmapExecutor defines the interface for geo heatmap reads.
type GetHeatmapExecutor interface {
	Execute(ctx context.Context, query HeatmapQuery) (*HeatmapResult, error)
}

// GetCategoryBreakdownExecutor defines the interface for category
// distribution reads.
type GetCategoryBreakdownExecutor interface {
	Execute(ctx context.Context, query CategoryBreakdownQuery) (*CategoryBreakdownResult, error)
}

// GetDemographicsExecutor defines the interface for demographic
// distribution reads.
type GetDemographicsExecutor interface {
	Execute(ctx context.Context, query DemographicsQuery) (*DemographicsResult, error)
}

// GetTopRegionsExecutor defines the interface for the region ranking.
type GetTopRegionsExecutor interface {
	Execute(ctx context.Context, query TopRegionsQuery) (*TopRegionsResult, error)
}

// RefreshViewsExecutor defines the interface for one view rebuild run,
// shared by the scheduled job and the admin endpoint.
type RefreshViewsExecutor interface {
	Execute(ctx context.Context) (*RefreshViewsResult, error)
}

// GetViewStatsExecutor defines the interface for view freshness reporting.
type GetViewStatsExecutor interface {
	Execute(ctx context.Context) (*ViewStatsResult, error)
}

// ListTriageCountsExecutor defines the interface for the daily triage
// counts view read.
type ListTriageCountsExecutor interface {
	Execute(ctx context.Context, query TriageCountsQuery) (*TriageCountsResult, error)
}

// ListComplaintsByDistrictExecutor defines the interface for the
// complaint-by-district view read.
type ListComplaintsByDistrictExecutor interface {
	Execute(ctx context.Context, query ComplaintsByDistrictQuery) (*ComplaintsByDistrictResult, error)
}

// ListSymptomHeatmapExecutor defines the interface for the symptom
// heatmap view read.
type ListSymptomHeatmapExecutor interface {
	Execute(ctx context.Context, query SymptomHeatmapQuery) (*SymptomHeatmapResult, error)
}

// ListSLABreachesExecutor defines the interface for the SLA breach
// counts view read.
type ListSLABreachesExecutor interface {
	Execute(ctx context.Context, query SLABreachQuery) (*SLABreachResult, error)
}
