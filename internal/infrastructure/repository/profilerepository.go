package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sahay-inc/sahay/internal/domain/user"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/mappers"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/db"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type ProfileRepository struct {
	db     *gorm.DB
	mapper mappers.ProfileMapper
}

func NewProfileRepository(gdb *gorm.DB) *ProfileRepository {
	return &ProfileRepository{
		db:     gdb,
		mapper: mappers.NewProfileMapper(),
	}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *user.Profile) error {
	model := r.mapper.ToModel(profile)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return profile.SetID(model.ID)
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uint) (*user.Profile, error) {
	var model models.ProfileModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("profile not found")
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ProfileRepository) Update(ctx context.Context, profile *user.Profile) error {
	model := r.mapper.ToModel(profile)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ProfileModel{}).
		Where("id = ?", model.ID).
		Select("NameAlias", "DOB", "Sex", "Pincode", "ClientTime", "LastEventID", "UpdatedAt").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}

	return nil
}
