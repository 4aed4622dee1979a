package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sahay-inc/sahay/internal/domain/syncevent"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/mappers"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/db"
)

type SyncEventRepository struct {
	db     *gorm.DB
	mapper mappers.SyncEventMapper
}

func NewSyncEventRepository(gdb *gorm.DB) *SyncEventRepository {
	return &SyncEventRepository{
		db:     gdb,
		mapper: mappers.NewSyncEventMapper(),
	}
}

func (r *SyncEventRepository) Create(ctx context.Context, event *syncevent.Event) error {
	model, err := r.mapper.ToModel(event)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create sync event: %w", err)
	}

	return event.SetID(model.ID)
}

func (r *SyncEventRepository) GetByEventID(ctx context.Context, eventID string) (*syncevent.Event, error) {
	var model models.SyncEventModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("event_id = ?", eventID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find sync event: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *SyncEventRepository) ListByUser(
	ctx context.Context,
	userID uint,
	page, pageSize int,
) ([]*syncevent.Event, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.SyncEventModel{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sync events: %w", err)
	}

	var rows []models.SyncEventModel
	if err := query.
		Order("server_time DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list sync events: %w", err)
	}

	events := make([]*syncevent.Event, 0, len(rows))
	for i := range rows {
		event, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		events = append(events, event)
	}

	return events, total, nil
}

func (r *SyncEventRepository) DeleteByUser(ctx context.Context, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("user_id = ?", userID).
		Delete(&models.SyncEventModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete sync events: %w", err)
	}

	return nil
}
