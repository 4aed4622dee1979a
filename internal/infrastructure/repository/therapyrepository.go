package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sahay-inc/sahay/internal/domain/therapy"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/mappers"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/db"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type TherapyModuleRepository struct {
	db     *gorm.DB
	mapper mappers.TherapyMapper
}

func NewTherapyModuleRepository(gdb *gorm.DB) *TherapyModuleRepository {
	return &TherapyModuleRepository{
		db:     gdb,
		mapper: mappers.NewTherapyMapper(),
	}
}

func (r *TherapyModuleRepository) Create(ctx context.Context, module *therapy.Module) error {
	model := r.mapper.ModuleToModel(module)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create therapy module: %w", err)
	}

	return module.SetID(model.ID)
}

func (r *TherapyModuleRepository) GetBySID(ctx context.Context, sid string) (*therapy.Module, error) {
	var model models.TherapyModuleModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("therapy module not found")
		}
		return nil, fmt.Errorf("failed to find therapy module: %w", err)
	}

	return r.mapper.ModuleToDomain(&model)
}

func (r *TherapyModuleRepository) List(ctx context.Context, filter therapy.ModuleListFilter) ([]*therapy.Module, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TherapyModuleModel{})

	if filter.ModuleType != nil {
		query = query.Where("module_type = ?", *filter.ModuleType)
	}
	if filter.AgeMonths != nil {
		query = query.
			Where("age_range_min IS NULL OR age_range_min <= ?", *filter.AgeMonths).
			Where("age_range_max IS NULL OR age_range_max >= ?", *filter.AgeMonths)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count therapy modules: %w", err)
	}

	var rows []models.TherapyModuleModel
	if err := query.
		Order("created_at DESC, id DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list therapy modules: %w", err)
	}

	modules := make([]*therapy.Module, 0, len(rows))
	for i := range rows {
		module, err := r.mapper.ModuleToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		modules = append(modules, module)
	}

	return modules, total, nil
}

type TherapyPackRepository struct {
	db     *gorm.DB
	mapper mappers.TherapyMapper
}

func NewTherapyPackRepository(gdb *gorm.DB) *TherapyPackRepository {
	return &TherapyPackRepository{
		db:     gdb,
		mapper: mappers.NewTherapyMapper(),
	}
}

func (r *TherapyPackRepository) Create(ctx context.Context, pack *therapy.Pack) error {
	model := r.mapper.PackToModel(pack)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create therapy pack: %w", err)
	}

	return pack.SetID(model.ID)
}

func (r *TherapyPackRepository) GetBySID(ctx context.Context, sid string) (*therapy.Pack, error) {
	var model models.TherapyPackModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("therapy pack not found")
		}
		return nil, fmt.Errorf("failed to find therapy pack: %w", err)
	}

	return r.mapper.PackToDomain(&model)
}
