package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/sahay-inc/sahay/internal/domain/telemed"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
)

// TelemedMapper handles the conversion between telemedicine domain entities and persistence models.
type TelemedMapper interface {
	RequestToModel(r *telemed.TeleRequest) *models.TeleRequestModel
	RequestToDomain(model *models.TeleRequestModel) (*telemed.TeleRequest, error)

	PrescriptionToModel(p *telemed.Prescription) (*models.PrescriptionModel, error)
	PrescriptionToDomain(model *models.PrescriptionModel) (*telemed.Prescription, error)
}

// TelemedMapperImpl is the concrete implementation of TelemedMapper.
type TelemedMapperImpl struct{}

// NewTelemedMapper creates a new TelemedMapper.
func NewTelemedMapper() TelemedMapper {
	return &TelemedMapperImpl{}
}

func (m *TelemedMapperImpl) RequestToModel(r *telemed.TeleRequest) *models.TeleRequestModel {
	return &models.TeleRequestModel{
		ID:             r.ID(),
		SID:            r.SID(),
		CitizenID:      r.CitizenID(),
		ClinicianID:    r.ClinicianID(),
		SymptomSummary: r.SymptomSummary(),
		PreferredTime:  r.PreferredTime(),
		Status:         r.Status().String(),
		Version:        r.Version(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
}

func (m *TelemedMapperImpl) RequestToDomain(model *models.TeleRequestModel) (*telemed.TeleRequest, error) {
	return telemed.ReconstructTeleRequest(
		model.ID,
		model.SID,
		model.CitizenID,
		model.ClinicianID,
		model.SymptomSummary,
		model.PreferredTime,
		telemed.Status(model.Status),
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *TelemedMapperImpl) PrescriptionToModel(p *telemed.Prescription) (*models.PrescriptionModel, error) {
	items, err := json.Marshal(p.Items())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prescription items (sid=%s): %w", p.SID(), err)
	}

	return &models.PrescriptionModel{
		ID:            p.ID(),
		SID:           p.SID(),
		TeleRequestID: p.TeleRequestID(),
		CitizenID:     p.CitizenID(),
		ClinicianID:   p.ClinicianID(),
		Items:         datatypes.JSON(items),
		SummaryText:   p.SummaryText(),
		CreatedAt:     p.CreatedAt(),
	}, nil
}

func (m *TelemedMapperImpl) PrescriptionToDomain(model *models.PrescriptionModel) (*telemed.Prescription, error) {
	var items []telemed.PrescriptionItem
	if len(model.Items) > 0 {
		if err := json.Unmarshal(model.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal prescription items (id=%d): %w", model.ID, err)
		}
	}

	return telemed.ReconstructPrescription(
		model.ID,
		model.SID,
		model.TeleRequestID,
		model.CitizenID,
		model.ClinicianID,
		items,
		model.SummaryText,
		model.CreatedAt,
	)
}
