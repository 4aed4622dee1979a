package mappers

import (
	"github.com/sahay-inc/sahay/internal/domain/user"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
)

// AccessTokenMapper handles the conversion between AccessToken domain entities and persistence models.
type AccessTokenMapper interface {
	ToModel(t *user.AccessToken) *models.AccessTokenModel
	ToDomain(model *models.AccessTokenModel) (*user.AccessToken, error)
}

// AccessTokenMapperImpl is the concrete implementation of AccessTokenMapper.
type AccessTokenMapperImpl struct{}

// NewAccessTokenMapper creates a new AccessTokenMapper.
func NewAccessTokenMapper() AccessTokenMapper {
	return &AccessTokenMapperImpl{}
}

// ToModel converts a token domain entity to a persistence model.
func (m *AccessTokenMapperImpl) ToModel(t *user.AccessToken) *models.AccessTokenModel {
	return &models.AccessTokenModel{
		ID:         t.ID(),
		UserID:     t.UserID(),
		TokenHash:  t.TokenHash(),
		ExpiresAt:  t.ExpiresAt(),
		RevokedAt:  t.RevokedAt(),
		LastUsedAt: t.LastUsedAt(),
		CreatedAt:  t.CreatedAt(),
	}
}

// ToDomain converts a token persistence model to a domain entity.
func (m *AccessTokenMapperImpl) ToDomain(model *models.AccessTokenModel) (*user.AccessToken, error) {
	return user.ReconstructAccessToken(
		model.ID,
		model.UserID,
		model.TokenHash,
		model.ExpiresAt,
		model.RevokedAt,
		model.LastUsedAt,
		model.CreatedAt,
	)
}
