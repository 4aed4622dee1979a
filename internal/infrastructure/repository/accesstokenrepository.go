package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sahay-inc/sahay/internal/domain/user"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/mappers"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
	"github.com/sahay-inc/sahay/internal/shared/db"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

type AccessTokenRepository struct {
	db     *gorm.DB
	mapper mappers.AccessTokenMapper
}

func NewAccessTokenRepository(gdb *gorm.DB) *AccessTokenRepository {
	return &AccessTokenRepository{
		db:     gdb,
		mapper: mappers.NewAccessTokenMapper(),
	}
}

func (r *AccessTokenRepository) Create(ctx context.Context, token *user.AccessToken) error {
	model := r.mapper.ToModel(token)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create access token: %w", err)
	}

	return token.SetID(model.ID)
}

func (r *AccessTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*user.AccessToken, error) {
	var model models.AccessTokenModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("token_hash = ?", tokenHash).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("token not found")
		}
		return nil, fmt.Errorf("failed to find access token: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *AccessTokenRepository) Update(ctx context.Context, token *user.AccessToken) error {
	model := r.mapper.ToModel(token)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.AccessTokenModel{}).
		Where("id = ?", model.ID).
		Select("RevokedAt", "LastUsedAt").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update access token: %w", result.Error)
	}

	return nil
}

func (r *AccessTokenRepository) RevokeAllForUser(ctx context.Context, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.AccessTokenModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now()).Error; err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}

	return nil
}

func (r *AccessTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Where("expires_at < ?", time.Now()).
		Delete(&models.AccessTokenModel{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", result.Error)
	}

	return result.RowsAffected, nil
}
