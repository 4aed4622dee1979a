package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/mappers"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/db"
)

type AnalyticsEventRepository struct {
	db     *gorm.DB
	mapper mappers.AnalyticsMapper
}

func NewAnalyticsEventRepository(gdb *gorm.DB) *AnalyticsEventRepository {
	return &AnalyticsEventRepository{
		db:     gdb,
		mapper: mappers.NewAnalyticsMapper(),
	}
}

func (r *AnalyticsEventRepository) Create(ctx context.Context, event *analytics.StoredEvent) error {
	model := r.mapper.EventToModel(event)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create analytics event: %w", err)
	}

	return event.SetID(model.ID)
}

func (r *AnalyticsEventRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.
		Model(&models.AnalyticsEventModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count analytics events: %w", err)
	}

	return count, nil
}

func (r *AnalyticsEventRepository) AnonymizeByUser(ctx context.Context, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.AnalyticsEventModel{}).
		Where("user_id = ?", userID).
		Update("user_id", nil).Error; err != nil {
		return fmt.Errorf("failed to anonymize analytics events: %w", err)
	}

	return nil
}

type AggregateRepository struct {
	db     *gorm.DB
	mapper mappers.AnalyticsMapper
}

func NewAggregateRepository(gdb *gorm.DB) *AggregateRepository {
	return &AggregateRepository{
		db:     gdb,
		mapper: mappers.NewAnalyticsMapper(),
	}
}

// UpsertBatch folds drained buffer cells into the counter table. Existing
// cells are incremented so replayed flushes stay additive rather than
// overwriting counts.
func (r *AggregateRepository) UpsertBatch(ctx context.Context, batch analytics.Batch) error {
	if len(batch) == 0 {
		return nil
	}

	tx := db.GetTxFromContext(ctx, r.db)
	now := time.Now()

	rows := make([]models.AggregatedEventModel, 0, len(batch))
	for key, count := range batch {
		rows = append(rows, models.AggregatedEventModel{
			EventType:   key.EventType.String(),
			Category:    key.Category,
			TimeBucket:  key.EventTime,
			GeoCell:     key.GeoCell,
			AgeBucket:   key.AgeBucket,
			Gender:      key.Gender,
			Count:       count,
			FirstSeen:   now,
			LastUpdated: now,
		})
	}
	// Deterministic lock order keeps concurrent flushes from deadlocking
	// on the unique index.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].EventType != rows[j].EventType {
			return rows[i].EventType < rows[j].EventType
		}
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		if !rows[i].TimeBucket.Equal(rows[j].TimeBucket) {
			return rows[i].TimeBucket.Before(rows[j].TimeBucket)
		}
		if rows[i].GeoCell != rows[j].GeoCell {
			return rows[i].GeoCell < rows[j].GeoCell
		}
		if rows[i].AgeBucket != rows[j].AgeBucket {
			return rows[i].AgeBucket < rows[j].AgeBucket
		}
		return rows[i].Gender < rows[j].Gender
	})

	// Increments use bind parameters so the same statement works on both
	// MySQL and SQLite.
	for i := range rows {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "event_type"}, {Name: "category"}, {Name: "time_bucket"},
				{Name: "geo_cell"}, {Name: "age_bucket"}, {Name: "gender"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":        gorm.Expr("count + ?", rows[i].Count),
				"last_updated": now,
			}),
		}).Create(&rows[i]).Error
		if err != nil {
			return fmt.Errorf("failed to upsert aggregate cell: %w", err)
		}
	}

	return nil
}

func (r *AggregateRepository) Query(ctx context.Context, filter analytics.QueryFilter) ([]*analytics.Aggregate, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.AggregatedEventModel{})

	if filter.EventType != nil {
		query = query.Where("event_type = ?", filter.EventType.String())
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.GeoCell != nil {
		query = query.Where("geo_cell = ?", *filter.GeoCell)
	}
	if filter.From != nil {
		query = query.Where("time_bucket >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("time_bucket < ?", *filter.To)
	}

	minCount := filter.MinCount
	if minCount < analytics.DefaultKThreshold {
		minCount = analytics.DefaultKThreshold
	}
	query = query.Where("count >= ?", minCount)

	var rows []models.AggregatedEventModel
	if err := query.
		Order("time_bucket ASC, event_type ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query aggregates: %w", err)
	}

	aggregates := make([]*analytics.Aggregate, 0, len(rows))
	for i := range rows {
		aggregate, err := r.mapper.AggregateToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}

func (r *AggregateRepository) CountCells(ctx context.Context) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.
		Model(&models.AggregatedEventModel{}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count aggregate cells: %w", err)
	}

	return count, nil
}
