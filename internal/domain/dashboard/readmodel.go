package dashboard

// Read-model rows mirror the view columns one to one. Dates are civil
// dates rendered as YYYY-MM-DD strings because the views group by day.

// DailyTriageRow is one cell of the daily triage counts view.
type DailyTriageRow struct {
	Date              string `json:"date"`
	EventType         string `json:"event_type"`
	Category          string `json:"category"`
	GeoCell           string `json:"geo_cell"`
	AgeBucket         string `json:"age_bucket"`
	Gender            string `json:"gender"`
	TotalCount        int64  `json:"total_count"`
	UniqueTimeBuckets int64  `json:"unique_time_buckets"`
	FirstEvent        string `json:"first_event"`
	LastEvent         string `json:"last_event"`
}

// ComplaintDistrictRow is one cell of the complaint-by-district view.
type ComplaintDistrictRow struct {
	GeoCell                string  `json:"geo_cell"`
	Category               string  `json:"category"`
	EventType              string  `json:"event_type"`
	Date                   string  `json:"date"`
	TotalComplaints        int64   `json:"total_complaints"`
	TimePeriods            int64   `json:"time_periods"`
	AvgComplaintsPerPeriod float64 `json:"avg_complaints_per_period"`
	EarliestComplaint      string  `json:"earliest_complaint"`
	LatestComplaint        string  `json:"latest_complaint"`
}

// SymptomHeatmapRow is one cluster cell of the symptom heatmap view.
type SymptomHeatmapRow struct {
	GeoCell         string  `json:"geo_cell"`
	SymptomCategory string  `json:"symptom_category"`
	EventType       string  `json:"event_type"`
	Date            string  `json:"date"`
	EventCount      int64   `json:"event_count"`
	AgeDiversity    int64   `json:"age_diversity"`
	GenderDiversity int64   `json:"gender_diversity"`
	AvgIntensity    float64 `json:"avg_intensity"`
	MaxIntensity    int64   `json:"max_intensity"`
}

// SLABreachRow is one cell of the SLA breach counts view.
type SLABreachRow struct {
	GeoCell           string  `json:"geo_cell"`
	ComplaintCategory string  `json:"complaint_category"`
	Date              string  `json:"date"`
	EscalatedCount    int64   `json:"escalated_count"`
	ResolvedCount     int64   `json:"resolved_count"`
	TotalComplaints   int64   `json:"total_complaints"`
	EscalationRate    float64 `json:"escalation_rate"`
	TimePeriods       int64   `json:"time_periods"`
}

// TriageCountsFilter narrows the daily triage counts query.
type TriageCountsFilter struct {
	StartDate *string
	EndDate   *string
	GeoCell   *string
}

// ComplaintDistrictFilter narrows the complaint-by-district query.
type ComplaintDistrictFilter struct {
	GeoCell  *string
	Category *string
}

// HeatmapFilter narrows the symptom heatmap query to a trailing window.
type HeatmapFilter struct {
	Days int
}

// SLABreachFilter narrows the SLA breach counts query.
type SLABreachFilter struct {
	GeoCell           *string
	MinEscalationRate *float64
}
