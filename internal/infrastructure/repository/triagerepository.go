package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sahay-inc/sahay/internal/domain/triage"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/mappers"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/db"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type TriageRepository struct {
	db     *gorm.DB
	mapper mappers.TriageMapper
}

func NewTriageRepository(gdb *gorm.DB) *TriageRepository {
	return &TriageRepository{
		db:     gdb,
		mapper: mappers.NewTriageMapper(),
	}
}

func (r *TriageRepository) Create(ctx context.Context, session *triage.Session) error {
	model := r.mapper.ToModel(session)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create triage session: %w", err)
	}

	return session.SetID(model.ID)
}

func (r *TriageRepository) GetBySID(ctx context.Context, sid string) (*triage.Session, error) {
	var model models.TriageSessionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("triage session not found")
		}
		return nil, fmt.Errorf("failed to find triage session: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TriageRepository) List(ctx context.Context, filter triage.ListFilter) ([]*triage.Session, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TriageSessionModel{})

	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", filter.Category.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count triage sessions: %w", err)
	}

	var rows []models.TriageSessionModel
	if err := query.
		Order("created_at DESC, id DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list triage sessions: %w", err)
	}

	sessions := make([]*triage.Session, 0, len(rows))
	for i := range rows {
		session, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, session)
	}

	return sessions, total, nil
}

func (r *TriageRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.TriageSessionModel{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count triage sessions: %w", err)
	}

	return count, nil
}

func (r *TriageRepository) DeleteByUser(ctx context.Context, ownerID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("owner_id = ?", ownerID).
		Delete(&models.TriageSessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete triage sessions: %w", err)
	}

	return nil
}
