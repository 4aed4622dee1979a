package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sahay-inc/sahay/internal/domain/anchor"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/mappers"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/db"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type AnchorRepository struct {
	db     *gorm.DB
	mapper mappers.AnchorMapper
}

func NewAnchorRepository(gdb *gorm.DB) *AnchorRepository {
	return &AnchorRepository{
		db:     gdb,
		mapper: mappers.NewAnchorMapper(),
	}
}

func (r *AnchorRepository) Create(ctx context.Context, record *anchor.Record) error {
	model := r.mapper.ToModel(record)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create anchor record: %w", err)
	}

	return record.SetID(model.ID)
}

func (r *AnchorRepository) GetBySID(ctx context.Context, sid string) (*anchor.Record, error) {
	var model models.AnchorRecordModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("anchor record not found")
		}
		return nil, fmt.Errorf("failed to find anchor record: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *AnchorRepository) GetByComplaintID(ctx context.Context, complaintID uint) (*anchor.Record, error) {
	var model models.AnchorRecordModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("complaint_id = ?", complaintID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("anchor record not found")
		}
		return nil, fmt.Errorf("failed to find anchor record: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *AnchorRepository) Update(ctx context.Context, record *anchor.Record) error {
	model := r.mapper.ToModel(record)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.AnchorRecordModel{}).
		Where("id = ?", model.ID).
		Select(
			"ComplaintHash", "SLAHash", "StatusHash", "StatusNonce", "Operation",
			"Status", "TxHash", "Attempts", "NextAttemptAt", "LastError",
			"AnchoredAt", "UpdatedAtTS", "UpdatedAt",
		).
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update anchor record: %w", result.Error)
	}

	return nil
}

func (r *AnchorRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]*anchor.Record, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.AnchorRecordModel
	if err := tx.
		Where("status = ? AND (next_attempt_at IS NULL OR next_attempt_at <= ?)",
			anchor.StatusPending.String(), now).
		Order("created_at_ts ASC, id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list due anchor records: %w", err)
	}

	records := make([]*anchor.Record, 0, len(rows))
	for i := range rows {
		record, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *AnchorRepository) ListInFlight(ctx context.Context, limit int) ([]*anchor.Record, error) {
	return r.listByStatus(ctx, anchor.StatusInFlight, limit)
}

func (r *AnchorRepository) ListFailed(ctx context.Context, limit int) ([]*anchor.Record, error) {
	return r.listByStatus(ctx, anchor.StatusFailed, limit)
}

func (r *AnchorRepository) listByStatus(ctx context.Context, status anchor.Status, limit int) ([]*anchor.Record, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.AnchorRecordModel
	if err := tx.
		Where("status = ?", status.String()).
		Order("created_at_ts ASC, id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s anchor records: %w", status, err)
	}

	records := make([]*anchor.Record, 0, len(rows))
	for i := range rows {
		record, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *AnchorRepository) CountByStatus(ctx context.Context, status anchor.Status) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.
		Model(&models.AnchorRecordModel{}).
		Where("status = ?", status.String()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count anchor records: %w", err)
	}

	return count, nil
}
