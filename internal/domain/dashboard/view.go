// Package dashboard defines the materialized dashboard views: the view
// registry, the read-model rows each view serves, and the refresh
// bookkeeping. Views project AggregatedEvent rows only, so the
// k-anonymity floor is already baked into every row they expose.
package dashboard

import (
	"fmt"
	"time"
)

// ViewName identifies one materialized view.
type ViewName string

const (
	ViewDailyTriageCounts    ViewName = "mv_daily_triage_counts"
	ViewComplaintsByDistrict ViewName = "mv_complaint_categories_district"
	ViewSymptomHeatmap       ViewName = "mv_symptom_heatmap"
	ViewSLABreachCounts      ViewName = "mv_sla_breach_counts"
)

// DefaultRefreshInterval is the scheduled rebuild period.
const DefaultRefreshInterval = 10 * time.Minute

// StaleAfter is the freshness objective. A view older than this is
// reported stale to operators.
const StaleAfter = 15 * time.Minute

var viewNames = map[ViewName]struct{}{
	ViewDailyTriageCounts:    {},
	ViewComplaintsByDistrict: {},
	ViewSymptomHeatmap:       {},
	ViewSLABreachCounts:      {},
}

// AllViewNames returns every registered view in refresh order.
func AllViewNames() []ViewName {
	return []ViewName{
		ViewDailyTriageCounts,
		ViewComplaintsByDistrict,
		ViewSymptomHeatmap,
		ViewSLABreachCounts,
	}
}

func NewViewName(name string) (ViewName, error) {
	v := ViewName(name)
	if !v.IsValid() {
		return "", fmt.Errorf("unknown materialized view: %s", name)
	}
	return v, nil
}

func (v ViewName) String() string { return string(v) }

func (v ViewName) IsValid() bool {
	_, ok := viewNames[v]
	return ok
}

// Freshness records when a view was last rebuilt and how many rows it
// holds. Staleness is judged against the recorded refresh time, never
// against wall-clock equality.
type Freshness struct {
	View        ViewName
	RefreshedAt time.Time
	RowCount    int64
}

// IsStale reports whether the view has missed the freshness objective.
// A view that has never been refreshed is always stale.
func (f Freshness) IsStale(now time.Time, maxAge time.Duration) bool {
	if f.RefreshedAt.IsZero() {
		return true
	}
	return now.Sub(f.RefreshedAt) > maxAge
}

// RefreshResult reports the outcome of rebuilding one view.
type RefreshResult struct {
	View     ViewName
	RowCount int64
	Duration time.Duration
	Err      error
}

// Succeeded reports whether the rebuild completed.
func (r RefreshResult) Succeeded() bool { return r.Err == nil }
