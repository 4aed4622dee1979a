package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/sahay-inc/sahay/internal/domain/neuroscreen"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
)

// NeuroscreenMapper handles the conversion between screening Result domain entities and persistence models.
type NeuroscreenMapper interface {
	ToModel(r *neuroscreen.Result) *models.NeuroscreenResultModel
	ToDomain(model *models.NeuroscreenResultModel) (*neuroscreen.Result, error)
}

// NeuroscreenMapperImpl is the concrete implementation of NeuroscreenMapper.
type NeuroscreenMapperImpl struct{}

// NewNeuroscreenMapper creates a new NeuroscreenMapper.
func NewNeuroscreenMapper() NeuroscreenMapper {
	return &NeuroscreenMapperImpl{}
}

// ToModel converts a screening result to a persistence model.
func (m *NeuroscreenMapperImpl) ToModel(r *neuroscreen.Result) *models.NeuroscreenResultModel {
	model := &models.NeuroscreenResultModel{
		ID:                r.ID(),
		SID:               r.SID(),
		OwnerID:           r.OwnerID(),
		Instrument:        r.InstrumentName(),
		InstrumentVersion: r.InstrumentVersion(),
		RawScore:          r.RawScore(),
		Band:              r.Band().String(),
		GuidanceText:      r.GuidanceText(),
		CreatedAt:         r.CreatedAt(),
	}

	if responses := r.Responses(); len(responses) > 0 {
		raw, _ := json.Marshal(responses)
		model.Responses = datatypes.JSON(raw)
	}

	return model
}

// ToDomain converts a screening result persistence model to a domain entity.
func (m *NeuroscreenMapperImpl) ToDomain(model *models.NeuroscreenResultModel) (*neuroscreen.Result, error) {
	var responses map[string]int
	if len(model.Responses) > 0 {
		if err := json.Unmarshal(model.Responses, &responses); err != nil {
			return nil, fmt.Errorf("failed to unmarshal screening responses (id=%d): %w", model.ID, err)
		}
	}

	return neuroscreen.ReconstructResult(
		model.ID,
		model.SID,
		model.OwnerID,
		model.Instrument,
		model.InstrumentVersion,
		responses,
		model.RawScore,
		neuroscreen.Band(model.Band),
		model.GuidanceText,
		model.CreatedAt,
	)
}
