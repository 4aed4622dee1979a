package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/mappers"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/db"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type AuditRepository struct {
	db     *gorm.DB
	mapper mappers.AuditMapper
}

func NewAuditRepository(gdb *gorm.DB) *AuditRepository {
	return &AuditRepository{
		db:     gdb,
		mapper: mappers.NewAuditMapper(),
	}
}

func (r *AuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	model := r.mapper.ToModel(entry)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}

// Head returns the max sequence and its hash under a row lock, serializing
// concurrent appends within their transactions. A fresh chain reports
// (0, GenesisPrevHash).
func (r *AuditRepository) Head(ctx context.Context) (uint64, string, error) {
	var model models.AuditEntryModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("seq DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, audit.GenesisPrevHash, nil
		}
		return 0, "", fmt.Errorf("failed to read audit chain head: %w", err)
	}

	return model.Seq, model.EntryHash, nil
}

func (r *AuditRepository) GetBySeq(ctx context.Context, seq uint64) (*audit.Entry, error) {
	var model models.AuditEntryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("seq = ?", seq).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("audit entry not found")
		}
		return nil, fmt.Errorf("failed to find audit entry: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *AuditRepository) ListRange(ctx context.Context, fromSeq, toSeq uint64) ([]*audit.Entry, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.AuditEntryModel
	if err := tx.
		Where("seq >= ? AND seq <= ?", fromSeq, toSeq).
		Order("seq ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit range: %w", err)
	}

	entries := make([]*audit.Entry, 0, len(rows))
	for i := range rows {
		entry, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (r *AuditRepository) List(ctx context.Context, filter audit.ListFilter) ([]*audit.Entry, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.AuditEntryModel{})

	if filter.ActorID != "" {
		query = query.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	var rows []models.AuditEntryModel
	if err := query.
		Order("seq DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]*audit.Entry, 0, len(rows))
	for i := range rows {
		entry, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}
