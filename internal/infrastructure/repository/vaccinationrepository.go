package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sahay-inc/sahay/internal/domain/vaccination"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/mappers"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/db"
)

type VaccinationRepository struct {
	db     *gorm.DB
	mapper mappers.VaccinationMapper
}

func NewVaccinationRepository(gdb *gorm.DB) *VaccinationRepository {
	return &VaccinationRepository{
		db:     gdb,
		mapper: mappers.NewVaccinationMapper(),
	}
}

func (r *VaccinationRepository) Create(ctx context.Context, record *vaccination.Record) error {
	model := r.mapper.ToModel(record)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create vaccination record: %w", err)
	}

	return record.SetID(model.ID)
}

func (r *VaccinationRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*vaccination.Record, error) {
	var rows []models.VaccinationRecordModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("owner_id = ?", ownerID).
		Order("administered_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list vaccination records: %w", err)
	}

	records := make([]*vaccination.Record, 0, len(rows))
	for i := range rows {
		record, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *VaccinationRepository) DeleteByUser(ctx context.Context, ownerID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("owner_id = ?", ownerID).
		Delete(&models.VaccinationRecordModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete vaccination records: %w", err)
	}

	return nil
}
