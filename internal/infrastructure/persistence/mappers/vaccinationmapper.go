package mappers

import (
	"github.com/sahay-inc/sahay/internal/domain/vaccination"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
)

// VaccinationMapper handles the conversion between vaccination Record domain entities and persistence models.
type VaccinationMapper interface {
	ToModel(r *vaccination.Record) *models.VaccinationRecordModel
	ToDomain(model *models.VaccinationRecordModel) (*vaccination.Record, error)
}

// VaccinationMapperImpl is the concrete implementation of VaccinationMapper.
type VaccinationMapperImpl struct{}

// NewVaccinationMapper creates a new VaccinationMapper.
func NewVaccinationMapper() VaccinationMapper {
	return &VaccinationMapperImpl{}
}

// ToModel converts a vaccination record to a persistence model.
func (m *VaccinationMapperImpl) ToModel(r *vaccination.Record) *models.VaccinationRecordModel {
	return &models.VaccinationRecordModel{
		ID:             r.ID(),
		SID:            r.SID(),
		OwnerID:        r.OwnerID(),
		VaccineName:    r.VaccineName(),
		DoseNumber:     r.DoseNumber(),
		AdministeredAt: r.AdministeredAt(),
		CreatedAt:      r.CreatedAt(),
	}
}

// ToDomain converts a vaccination record persistence model to a domain entity.
func (m *VaccinationMapperImpl) ToDomain(model *models.VaccinationRecordModel) (*vaccination.Record, error) {
	return vaccination.ReconstructRecord(
		model.ID,
		model.SID,
		model.OwnerID,
		model.VaccineName,
		model.DoseNumber,
		model.AdministeredAt,
		model.CreatedAt,
	)
}
