package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/sahay-inc/sahay/internal/domain/triage"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
)

// TriageMapper handles the conversion between triage Session domain entities and persistence models.
type TriageMapper interface {
	ToModel(s *triage.Session) *models.TriageSessionModel
	ToDomain(model *models.TriageSessionModel) (*triage.Session, error)
}

// TriageMapperImpl is the concrete implementation of TriageMapper.
type TriageMapperImpl struct{}

// NewTriageMapper creates a new TriageMapper.
func NewTriageMapper() TriageMapper {
	return &TriageMapperImpl{}
}

// ToModel converts a triage session to a persistence model.
func (m *TriageMapperImpl) ToModel(s *triage.Session) *models.TriageSessionModel {
	model := &models.TriageSessionModel{
		ID:           s.ID(),
		SID:          s.SID(),
		OwnerID:      s.OwnerID(),
		SymptomsText: s.SymptomsText(),
		Age:          s.Age(),
		Sex:          s.Sex(),
		Pregnancy:    s.Pregnancy(),
		Language:     s.Language(),
		Category:     s.Category().String(),
		GuidanceText: s.GuidanceText(),
		CreatedAt:    s.CreatedAt(),
	}

	if flags := s.RedFlags(); len(flags) > 0 {
		raw, _ := json.Marshal(flags)
		model.RedFlags = datatypes.JSON(raw)
	}

	return model
}

// ToDomain converts a triage session persistence model to a domain entity.
func (m *TriageMapperImpl) ToDomain(model *models.TriageSessionModel) (*triage.Session, error) {
	var redFlags []string
	if len(model.RedFlags) > 0 {
		if err := json.Unmarshal(model.RedFlags, &redFlags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal triage red flags (id=%d): %w", model.ID, err)
		}
	}

	return triage.ReconstructSession(
		model.ID,
		model.SID,
		model.OwnerID,
		model.SymptomsText,
		model.Age,
		model.Sex,
		model.Pregnancy,
		model.Language,
		triage.Category(model.Category),
		redFlags,
		model.GuidanceText,
		model.CreatedAt,
	)
}
