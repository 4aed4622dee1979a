package mappers

import (
	"github.com/sahay-inc/sahay/internal/domain/consent"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
)

// ConsentMapper handles the conversion between consent Record domain entities and persistence models.
type ConsentMapper interface {
	ToModel(r *consent.Record) *models.ConsentRecordModel
	ToDomain(model *models.ConsentRecordModel) (*consent.Record, error)
}

// ConsentMapperImpl is the concrete implementation of ConsentMapper.
type ConsentMapperImpl struct{}

// NewConsentMapper creates a new ConsentMapper.
func NewConsentMapper() ConsentMapper {
	return &ConsentMapperImpl{}
}

// ToModel converts a consent receipt to a persistence model.
func (m *ConsentMapperImpl) ToModel(r *consent.Record) *models.ConsentRecordModel {
	return &models.ConsentRecordModel{
		ID:              r.ID(),
		SID:             r.SID(),
		UserID:          r.UserID(),
		Category:        r.Category().String(),
		Scope:           r.Scope().String(),
		DocumentVersion: r.DocumentVersion(),
		Granted:         r.Granted(),
		GrantedAt:       r.GrantedAt(),
		CreatedAt:       r.CreatedAt(),
	}
}

// ToDomain converts a consent persistence model to a domain entity.
func (m *ConsentMapperImpl) ToDomain(model *models.ConsentRecordModel) (*consent.Record, error) {
	return consent.ReconstructRecord(
		model.ID,
		model.SID,
		model.UserID,
		consent.Category(model.Category),
		consent.Scope(model.Scope),
		model.DocumentVersion,
		model.Granted,
		model.GrantedAt,
		model.CreatedAt,
	)
}
