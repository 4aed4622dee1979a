package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sahay-inc/sahay/internal/domain/neuroscreen"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/mappers"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/db"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type NeuroscreenRepository struct {
	db     *gorm.DB
	mapper mappers.NeuroscreenMapper
}

func NewNeuroscreenRepository(gdb *gorm.DB) *NeuroscreenRepository {
	return &NeuroscreenRepository{
		db:     gdb,
		mapper: mappers.NewNeuroscreenMapper(),
	}
}

func (r *NeuroscreenRepository) Create(ctx context.Context, result *neuroscreen.Result) error {
	model := r.mapper.ToModel(result)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create screening result: %w", err)
	}

	return result.SetID(model.ID)
}

func (r *NeuroscreenRepository) GetBySID(ctx context.Context, sid string) (*neuroscreen.Result, error) {
	var model models.NeuroscreenResultModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("screening result not found")
		}
		return nil, fmt.Errorf("failed to find screening result: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *NeuroscreenRepository) DeleteByUser(ctx context.Context, ownerID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("owner_id = ?", ownerID).
		Delete(&models.NeuroscreenResultModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete screening results: %w", err)
	}

	return nil
}
