package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sahay-inc/sahay/internal/domain/outbox"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/mappers"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/db"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type OutboxRepository struct {
	db     *gorm.DB
	mapper mappers.OutboxMapper
}

func NewOutboxRepository(gdb *gorm.DB) *OutboxRepository {
	return &OutboxRepository{
		db:     gdb,
		mapper: mappers.NewOutboxMapper(),
	}
}

func (r *OutboxRepository) Create(ctx context.Context, message *outbox.Message) error {
	model := r.mapper.ToModel(message)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create outbox message: %w", err)
	}

	return message.SetID(model.ID)
}

func (r *OutboxRepository) GetBySID(ctx context.Context, sid string) (*outbox.Message, error) {
	var model models.OutboxMessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("outbox message not found")
		}
		return nil, fmt.Errorf("failed to find outbox message: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *OutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	model := r.mapper.ToModel(message)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.OutboxMessageModel{}).
		Where("id = ?", model.ID).
		Select("Status", "Attempts", "LastError", "SentAt", "UpdatedAt").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update outbox message: %w", result.Error)
	}

	return nil
}

func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.OutboxMessageModel
	if err := tx.
		Where("status = ?", outbox.StatusPending.String()).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending outbox messages: %w", err)
	}

	messages := make([]*outbox.Message, 0, len(rows))
	for i := range rows {
		message, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, nil
}

func (r *OutboxRepository) CountByStatus(ctx context.Context, status outbox.Status) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.
		Model(&models.OutboxMessageModel{}).
		Where("status = ?", status.String()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count outbox messages: %w", err)
	}

	return count, nil
}

func (r *OutboxRepository) DeleteByUser(ctx context.Context, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("user_id = ?", userID).
		Delete(&models.OutboxMessageModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete outbox messages: %w", err)
	}

	return nil
}
