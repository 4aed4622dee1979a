package mappers

import (
	"github.com/sahay-inc/sahay/internal/domain/user"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
)

// ProfileMapper handles the conversion between Profile domain entities and persistence models.
type ProfileMapper interface {
	ToModel(p *user.Profile) *models.ProfileModel
	ToDomain(model *models.ProfileModel) (*user.Profile, error)
}

// ProfileMapperImpl is the concrete implementation of ProfileMapper.
type ProfileMapperImpl struct{}

// NewProfileMapper creates a new ProfileMapper.
func NewProfileMapper() ProfileMapper {
	return &ProfileMapperImpl{}
}

// ToModel converts a profile domain entity to a persistence model.
func (m *ProfileMapperImpl) ToModel(p *user.Profile) *models.ProfileModel {
	return &models.ProfileModel{
		ID:          p.ID(),
		UserID:      p.UserID(),
		NameAlias:   p.NameAlias(),
		DOB:         p.DOB(),
		Sex:         p.Sex(),
		Pincode:     p.Pincode(),
		ClientTime:  p.ClientTime(),
		LastEventID: p.LastEventID(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

// ToDomain converts a profile persistence model to a domain entity.
func (m *ProfileMapperImpl) ToDomain(model *models.ProfileModel) (*user.Profile, error) {
	return user.ReconstructProfile(
		model.ID,
		model.UserID,
		model.NameAlias,
		model.DOB,
		model.Sex,
		model.Pincode,
		model.ClientTime,
		model.LastEventID,
		model.UpdatedAt,
	)
}
