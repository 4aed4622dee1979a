package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	"github.com/sahay-inc/sahay/internal/domain/dashboard"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/db"
)

// Views are rebuilt as plain tables with DROP + CREATE TABLE AS SELECT,
// which works identically on MySQL and SQLite. Every SELECT carries a
// HAVING SUM(count) >= ? floor bound to the configured k threshold, so
// suppressed cells never reach a view and raising k in config tightens
// the views on the next refresh.
type viewDefinition struct {
	name dashboard.ViewName
	// windowDays limits the view to a trailing window; 0 means unbounded.
	// Windowed SELECTs bind the cutoff before the k floor.
	windowDays int
	selectSQL  string
	indexes    []string
}

var viewDefinitions = []viewDefinition{
	{
		name: dashboard.ViewDailyTriageCounts,
		selectSQL: `
SELECT
    DATE(time_bucket) AS date,
    event_type,
    category,
    geo_cell,
    age_bucket,
    gender,
    SUM(count) AS total_count,
    COUNT(DISTINCT time_bucket) AS unique_time_buckets,
    MIN(first_seen) AS first_event,
    MAX(last_updated) AS last_event
FROM aggregated_analytics_events
WHERE event_type IN ('triage_completed', 'triage_emergency')
GROUP BY DATE(time_bucket), event_type, category, geo_cell, age_bucket, gender
HAVING SUM(count) >= ?`,
		indexes: []string{
			"CREATE INDEX idx_mv_daily_triage_date ON mv_daily_triage_counts(date)",
			"CREATE INDEX idx_mv_daily_triage_geo ON mv_daily_triage_counts(geo_cell)",
			"CREATE INDEX idx_mv_daily_triage_category ON mv_daily_triage_counts(category)",
		},
	},
	{
		name: dashboard.ViewComplaintsByDistrict,
		selectSQL: `
SELECT
    geo_cell,
    category,
    event_type,
    DATE(time_bucket) AS date,
    SUM(count) AS total_complaints,
    COUNT(DISTINCT time_bucket) AS time_periods,
    AVG(count) AS avg_complaints_per_period,
    MIN(first_seen) AS earliest_complaint,
    MAX(last_updated) AS latest_complaint
FROM aggregated_analytics_events
WHERE event_type IN ('complaint_submitted', 'complaint_resolved', 'complaint_escalated')
GROUP BY geo_cell, category, event_type, DATE(time_bucket)
HAVING SUM(count) >= ?`,
		indexes: []string{
			"CREATE INDEX idx_mv_complaints_geo ON mv_complaint_categories_district(geo_cell)",
			"CREATE INDEX idx_mv_complaints_category ON mv_complaint_categories_district(category)",
			"CREATE INDEX idx_mv_complaints_date ON mv_complaint_categories_district(date)",
		},
	},
	{
		name:       dashboard.ViewSymptomHeatmap,
		windowDays: 30,
		selectSQL: `
SELECT
    geo_cell,
    category AS symptom_category,
    event_type,
    DATE(time_bucket) AS date,
    SUM(count) AS event_count,
    COUNT(DISTINCT age_bucket) AS age_diversity,
    COUNT(DISTINCT gender) AS gender_diversity,
    AVG(count) AS avg_intensity,
    MAX(count) AS max_intensity
FROM aggregated_analytics_events
WHERE event_type IN ('triage_completed', 'triage_emergency')
  AND time_bucket >= ?
GROUP BY geo_cell, category, event_type, DATE(time_bucket)
HAVING SUM(count) >= ?`,
		indexes: []string{
			"CREATE INDEX idx_mv_symptom_geo ON mv_symptom_heatmap(geo_cell)",
			"CREATE INDEX idx_mv_symptom_category ON mv_symptom_heatmap(symptom_category)",
			"CREATE INDEX idx_mv_symptom_date ON mv_symptom_heatmap(date)",
		},
	},
	{
		name:       dashboard.ViewSLABreachCounts,
		windowDays: 90,
		selectSQL: `
SELECT
    geo_cell,
    category AS complaint_category,
    DATE(time_bucket) AS date,
    SUM(CASE WHEN event_type = 'complaint_escalated' THEN count ELSE 0 END) AS escalated_count,
    SUM(CASE WHEN event_type = 'complaint_resolved' THEN count ELSE 0 END) AS resolved_count,
    SUM(count) AS total_complaints,
    SUM(CASE WHEN event_type = 'complaint_escalated' THEN count ELSE 0 END) * 100.0 /
        NULLIF(SUM(count), 0) AS escalation_rate,
    COUNT(DISTINCT time_bucket) AS time_periods
FROM aggregated_analytics_events
WHERE event_type IN ('complaint_submitted', 'complaint_resolved', 'complaint_escalated')
  AND time_bucket >= ?
GROUP BY geo_cell, category, DATE(time_bucket)
HAVING SUM(count) >= ?`,
		indexes: []string{
			"CREATE INDEX idx_mv_sla_geo ON mv_sla_breach_counts(geo_cell)",
			"CREATE INDEX idx_mv_sla_category ON mv_sla_breach_counts(complaint_category)",
			"CREATE INDEX idx_mv_sla_date ON mv_sla_breach_counts(date)",
			"CREATE INDEX idx_mv_sla_escalation_rate ON mv_sla_breach_counts(escalation_rate)",
		},
	},
}

type DashboardRepository struct {
	db *gorm.DB
	// kThreshold is the k-anonymity floor bound into every view SELECT.
	// Config may raise it above the default, never lower it.
	kThreshold int64
}

func NewDashboardRepository(gdb *gorm.DB, kThreshold int64) *DashboardRepository {
	if kThreshold < analytics.DefaultKThreshold {
		kThreshold = analytics.DefaultKThreshold
	}
	return &DashboardRepository{db: gdb, kThreshold: kThreshold}
}

// RefreshAll rebuilds every view in registry order. One view failing does
// not stop the others; each result carries its own error.
func (r *DashboardRepository) RefreshAll(ctx context.Context) []dashboard.RefreshResult {
	results := make([]dashboard.RefreshResult, 0, len(viewDefinitions))
	for _, def := range viewDefinitions {
		results = append(results, r.refreshView(ctx, def))
	}
	return results
}

func (r *DashboardRepository) refreshView(ctx context.Context, def viewDefinition) dashboard.RefreshResult {
	started := time.Now()
	var rowCount int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DROP TABLE IF EXISTS " + def.name.String()).Error; err != nil {
			return fmt.Errorf("failed to drop view table: %w", err)
		}

		createSQL := "CREATE TABLE " + def.name.String() + " AS" + def.selectSQL
		args := make([]interface{}, 0, 2)
		if def.windowDays > 0 {
			args = append(args, started.AddDate(0, 0, -def.windowDays))
		}
		args = append(args, r.kThreshold)
		if err := tx.Exec(createSQL, args...).Error; err != nil {
			return fmt.Errorf("failed to rebuild view table: %w", err)
		}

		for _, indexSQL := range def.indexes {
			if err := tx.Exec(indexSQL).Error; err != nil {
				return fmt.Errorf("failed to index view table: %w", err)
			}
		}

		if err := tx.Raw("SELECT COUNT(*) FROM " + def.name.String()).Scan(&rowCount).Error; err != nil {
			return fmt.Errorf("failed to count view rows: %w", err)
		}

		return recordRefresh(tx, def.name, rowCount)
	})

	return dashboard.RefreshResult{
		View:     def.name,
		RowCount: rowCount,
		Duration: time.Since(started),
		Err:      err,
	}
}

// recordRefresh upserts the per-view refresh log row. Freshness reporting
// reads this recorded time, never the clock at report time.
func recordRefresh(tx *gorm.DB, view dashboard.ViewName, rowCount int64) error {
	now := time.Now()
	row := models.MVRefreshLogModel{
		ViewName:    view.String(),
		RefreshedAt: now,
		RowCount:    rowCount,
		UpdatedAt:   now,
	}

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "view_name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"refreshed_at": now,
			"row_count":    rowCount,
			"updated_at":   now,
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to record view refresh: %w", err)
	}

	return nil
}

func (r *DashboardRepository) FreshnessAll(ctx context.Context) ([]dashboard.Freshness, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.MVRefreshLogModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read view refresh log: %w", err)
	}

	byName := make(map[string]models.MVRefreshLogModel, len(rows))
	for _, row := range rows {
		byName[row.ViewName] = row
	}

	// Views with no log row yet report a zero refresh time, which the
	// domain treats as always stale.
	all := dashboard.AllViewNames()
	freshness := make([]dashboard.Freshness, 0, len(all))
	for _, view := range all {
		f := dashboard.Freshness{View: view}
		if row, ok := byName[view.String()]; ok {
			f.RefreshedAt = row.RefreshedAt
			f.RowCount = row.RowCount
		}
		freshness = append(freshness, f)
	}

	return freshness, nil
}

// Read queries cast date and timestamp columns to CHAR so both MySQL and
// SQLite hand rows back as strings.

func (r *DashboardRepository) DailyTriageCounts(
	ctx context.Context,
	filter dashboard.TriageCountsFilter,
) ([]dashboard.DailyTriageRow, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := `SELECT CAST(date AS CHAR) AS date, event_type, category, geo_cell, age_bucket, gender,
       total_count, unique_time_buckets,
       CAST(first_event AS CHAR) AS first_event, CAST(last_event AS CHAR) AS last_event
FROM mv_daily_triage_counts WHERE 1=1`
	args := make([]interface{}, 0, 3)

	if filter.StartDate != nil {
		query += " AND date >= ?"
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += " AND date <= ?"
		args = append(args, *filter.EndDate)
	}
	if filter.GeoCell != nil {
		query += " AND geo_cell = ?"
		args = append(args, *filter.GeoCell)
	}
	query += " ORDER BY date DESC, total_count DESC"

	var rows []dashboard.DailyTriageRow
	if err := tx.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query daily triage counts: %w", err)
	}

	return rows, nil
}

func (r *DashboardRepository) ComplaintsByDistrict(
	ctx context.Context,
	filter dashboard.ComplaintDistrictFilter,
) ([]dashboard.ComplaintDistrictRow, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := `SELECT geo_cell, category, event_type, CAST(date AS CHAR) AS date,
       total_complaints, time_periods, avg_complaints_per_period,
       CAST(earliest_complaint AS CHAR) AS earliest_complaint,
       CAST(latest_complaint AS CHAR) AS latest_complaint
FROM mv_complaint_categories_district WHERE 1=1`
	args := make([]interface{}, 0, 2)

	if filter.GeoCell != nil {
		query += " AND geo_cell = ?"
		args = append(args, *filter.GeoCell)
	}
	if filter.Category != nil {
		query += " AND category = ?"
		args = append(args, *filter.Category)
	}
	query += " ORDER BY total_complaints DESC"

	var rows []dashboard.ComplaintDistrictRow
	if err := tx.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query complaint categories: %w", err)
	}

	return rows, nil
}

func (r *DashboardRepository) SymptomHeatmap(
	ctx context.Context,
	filter dashboard.HeatmapFilter,
) ([]dashboard.SymptomHeatmapRow, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	days := filter.Days
	if days <= 0 {
		days = 30
	}
	cutoff := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	query := `SELECT geo_cell, symptom_category, event_type, CAST(date AS CHAR) AS date,
       event_count, age_diversity, gender_diversity, avg_intensity, max_intensity
FROM mv_symptom_heatmap
WHERE date >= ?
ORDER BY event_count DESC, geo_cell`

	var rows []dashboard.SymptomHeatmapRow
	if err := tx.Raw(query, cutoff).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query symptom heatmap: %w", err)
	}

	return rows, nil
}

func (r *DashboardRepository) SLABreachCounts(
	ctx context.Context,
	filter dashboard.SLABreachFilter,
) ([]dashboard.SLABreachRow, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := `SELECT geo_cell, complaint_category, CAST(date AS CHAR) AS date,
       escalated_count, resolved_count, total_complaints, escalation_rate, time_periods
FROM mv_sla_breach_counts WHERE 1=1`
	args := make([]interface{}, 0, 2)

	if filter.GeoCell != nil {
		query += " AND geo_cell = ?"
		args = append(args, *filter.GeoCell)
	}
	if filter.MinEscalationRate != nil {
		query += " AND escalation_rate >= ?"
		args = append(args, *filter.MinEscalationRate)
	}
	query += " ORDER BY escalation_rate DESC, total_complaints DESC"

	var rows []dashboard.SLABreachRow
	if err := tx.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query SLA breach counts: %w", err)
	}

	return rows, nil
}
