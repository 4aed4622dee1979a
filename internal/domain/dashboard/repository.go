package dashboard

import "context"

// Repository rebuilds and queries the materialized views. The rebuild
// SQL applies the k-anonymity floor, so no query method can return a
// cell below it.
type Repository interface {
	// RefreshAll rebuilds every registered view in order. A failing
	// view is reported in its result and does not stop the others.
	RefreshAll(ctx context.Context) []RefreshResult

	// FreshnessAll reports the recorded refresh state per view.
	FreshnessAll(ctx context.Context) ([]Freshness, error)

	DailyTriageCounts(ctx context.Context, filter TriageCountsFilter) ([]DailyTriageRow, error)
	ComplaintsByDistrict(ctx context.Context, filter ComplaintDistrictFilter) ([]ComplaintDistrictRow, error)
	SymptomHeatmap(ctx context.Context, filter HeatmapFilter) ([]SymptomHeatmapRow, error)
	SLABreachCounts(ctx context.Context, filter SLABreachFilter) ([]SLABreachRow, error)
}
