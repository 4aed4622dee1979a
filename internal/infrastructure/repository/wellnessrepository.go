package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sahay-inc/sahay/internal/domain/wellness"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/mappers"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/db"
)

type WellnessRepository struct {
	db     *gorm.DB
	mapper mappers.WellnessMapper
}

func NewWellnessRepository(gdb *gorm.DB) *WellnessRepository {
	return &WellnessRepository{
		db:     gdb,
		mapper: mappers.NewWellnessMapper(),
	}
}

func (r *WellnessRepository) CreateVitals(ctx context.Context, record *wellness.VitalsRecord) error {
	model := r.mapper.VitalsToModel(record)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create vitals record: %w", err)
	}

	return record.SetID(model.ID)
}

func (r *WellnessRepository) CreateMood(ctx context.Context, record *wellness.MoodRecord) error {
	model := r.mapper.MoodToModel(record)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create mood record: %w", err)
	}

	return record.SetID(model.ID)
}

func (r *WellnessRepository) CreateWater(ctx context.Context, record *wellness.WaterRecord) error {
	model := r.mapper.WaterToModel(record)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create water record: %w", err)
	}

	return record.SetID(model.ID)
}

// Summarize aggregates a user's records inside [from, to) with three
// narrow queries instead of loading rows.
func (r *WellnessRepository) Summarize(
	ctx context.Context,
	userID uint,
	from, to time.Time,
) (*wellness.DailySummary, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var waterTotal struct{ Total int }
	if err := tx.Model(&models.WaterRecordModel{}).
		Select("COALESCE(SUM(amount_ml), 0) AS total").
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
		Scan(&waterTotal).Error; err != nil {
		return nil, fmt.Errorf("failed to sum water intake: %w", err)
	}

	var moodAvg struct{ Avg *float64 }
	if err := tx.Model(&models.MoodRecordModel{}).
		Select("AVG(mood_scale) AS avg").
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
		Scan(&moodAvg).Error; err != nil {
		return nil, fmt.Errorf("failed to average mood: %w", err)
	}

	var vitalsCount int64
	if err := tx.Model(&models.VitalsRecordModel{}).
		Where("user_id = ? AND measured_at >= ? AND measured_at < ?", userID, from, to).
		Count(&vitalsCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count vitals: %w", err)
	}

	return &wellness.DailySummary{
		Date:         from.Format("2006-01-02"),
		WaterTotalML: waterTotal.Total,
		MoodAvg:      moodAvg.Avg,
		VitalsCount:  vitalsCount,
	}, nil
}

func (r *WellnessRepository) ListVitals(
	ctx context.Context,
	userID uint,
	page, pageSize int,
) ([]*wellness.VitalsRecord, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.VitalsRecordModel{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count vitals: %w", err)
	}

	var rows []models.VitalsRecordModel
	if err := query.
		Order("measured_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list vitals: %w", err)
	}

	records := make([]*wellness.VitalsRecord, 0, len(rows))
	for i := range rows {
		record, err := r.mapper.VitalsToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}

	return records, total, nil
}

func (r *WellnessRepository) DeleteByUser(ctx context.Context, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	for _, target := range []any{
		&models.VitalsRecordModel{},
		&models.MoodRecordModel{},
		&models.WaterRecordModel{},
	} {
		if err := tx.Where("user_id = ?", userID).Delete(target).Error; err != nil {
			return fmt.Errorf("failed to delete wellness records: %w", err)
		}
	}

	return nil
}
