package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sahay-inc/sahay/internal/domain/consent"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/mappers"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/db"
)

type ConsentRepository struct {
	db     *gorm.DB
	mapper mappers.ConsentMapper
}

func NewConsentRepository(gdb *gorm.DB) *ConsentRepository {
	return &ConsentRepository{
		db:     gdb,
		mapper: mappers.NewConsentMapper(),
	}
}

func (r *ConsentRepository) Create(ctx context.Context, record *consent.Record) error {
	model := r.mapper.ToModel(record)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create consent record: %w", err)
	}

	return record.SetID(model.ID)
}

// GetCurrent returns the newest receipt for the triple at or before the
// given instant, or nil when the user has never decided.
func (r *ConsentRepository) GetCurrent(
	ctx context.Context,
	userID uint,
	category consent.Category,
	scope consent.Scope,
	at time.Time,
) (*consent.Record, error) {
	var model models.ConsentRecordModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("user_id = ? AND category = ? AND scope = ? AND granted_at <= ?",
			userID, category.String(), scope.String(), at).
		Order("granted_at DESC, id DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find consent record: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ConsentRepository) ListCurrentByUser(ctx context.Context, userID uint) ([]*consent.Record, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	// Newest row per (category, scope). The subquery picks the max id within
	// each triple; granted_at ties resolve by insertion order.
	sub := tx.Model(&models.ConsentRecordModel{}).
		Select("MAX(id)").
		Where("user_id = ?", userID).
		Group("category, scope")

	var rows []models.ConsentRecordModel
	if err := tx.
		Where("id IN (?)", sub).
		Order("category ASC, scope ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list current consents: %w", err)
	}

	records := make([]*consent.Record, 0, len(rows))
	for i := range rows {
		rec, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func (r *ConsentRepository) ListHistoryByUser(
	ctx context.Context,
	userID uint,
	page, pageSize int,
) ([]*consent.Record, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ConsentRecordModel{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count consent history: %w", err)
	}

	var rows []models.ConsentRecordModel
	if err := query.
		Order("granted_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list consent history: %w", err)
	}

	records := make([]*consent.Record, 0, len(rows))
	for i := range rows {
		rec, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}

	return records, total, nil
}

func (r *ConsentRepository) DeleteByUser(ctx context.Context, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("user_id = ?", userID).
		Delete(&models.ConsentRecordModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete consent records: %w", err)
	}

	return nil
}
