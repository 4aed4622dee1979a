package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/sahay-inc/sahay/internal/domain/therapy"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
)

// TherapyMapper handles the conversion between therapy Module and Pack domain entities and persistence models.
type TherapyMapper interface {
	ModuleToModel(m *therapy.Module) *models.TherapyModuleModel
	ModuleToDomain(model *models.TherapyModuleModel) (*therapy.Module, error)
	PackToModel(p *therapy.Pack) *models.TherapyPackModel
	PackToDomain(model *models.TherapyPackModel) (*therapy.Pack, error)
}

// TherapyMapperImpl is the concrete implementation of TherapyMapper.
type TherapyMapperImpl struct{}

// NewTherapyMapper creates a new TherapyMapper.
func NewTherapyMapper() TherapyMapper {
	return &TherapyMapperImpl{}
}

// ModuleToModel converts a therapy module to a persistence model.
func (m *TherapyMapperImpl) ModuleToModel(module *therapy.Module) *models.TherapyModuleModel {
	model := &models.TherapyModuleModel{
		ID:          module.ID(),
		SID:         module.SID(),
		Title:       module.Title(),
		Description: module.Description(),
		ModuleType:  module.ModuleType(),
		AgeRangeMin: module.AgeRangeMin(),
		AgeRangeMax: module.AgeRangeMax(),
		CreatedAt:   module.CreatedAt(),
	}

	raw, _ := json.Marshal(module.Steps())
	model.Steps = datatypes.JSON(raw)

	return model
}

// ModuleToDomain converts a therapy module persistence model to a domain entity.
func (m *TherapyMapperImpl) ModuleToDomain(model *models.TherapyModuleModel) (*therapy.Module, error) {
	var steps []therapy.Step
	if len(model.Steps) > 0 {
		if err := json.Unmarshal(model.Steps, &steps); err != nil {
			return nil, fmt.Errorf("failed to unmarshal therapy steps (id=%d): %w", model.ID, err)
		}
	}

	return therapy.ReconstructModule(
		model.ID,
		model.SID,
		model.Title,
		model.Description,
		model.ModuleType,
		model.AgeRangeMin,
		model.AgeRangeMax,
		steps,
		model.CreatedAt,
	)
}

// PackToModel converts a therapy pack to a persistence model.
func (m *TherapyMapperImpl) PackToModel(p *therapy.Pack) *models.TherapyPackModel {
	return &models.TherapyPackModel{
		ID:          p.ID(),
		SID:         p.SID(),
		ModuleID:    p.ModuleID(),
		Title:       p.Title(),
		Description: p.Description(),
		Version:     p.Version(),
		Checksum:    p.Checksum(),
		ObjectKey:   p.ObjectKey(),
		CreatedAt:   p.CreatedAt(),
	}
}

// PackToDomain converts a therapy pack persistence model to a domain entity.
func (m *TherapyMapperImpl) PackToDomain(model *models.TherapyPackModel) (*therapy.Pack, error) {
	return therapy.ReconstructPack(
		model.ID,
		model.SID,
		model.ModuleID,
		model.Title,
		model.Description,
		model.Version,
		model.Checksum,
		model.ObjectKey,
		model.CreatedAt,
	)
}
