package mappers

import (
	"github.com/sahay-inc/sahay/internal/domain/wellness"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
)

// WellnessMapper handles the conversion between wellness record domain entities and persistence models.
type WellnessMapper interface {
	VitalsToModel(r *wellness.VitalsRecord) *models.VitalsRecordModel
	VitalsToDomain(model *models.VitalsRecordModel) (*wellness.VitalsRecord, error)

	MoodToModel(r *wellness.MoodRecord) *models.MoodRecordModel
	MoodToDomain(model *models.MoodRecordModel) (*wellness.MoodRecord, error)

	WaterToModel(r *wellness.WaterRecord) *models.WaterRecordModel
	WaterToDomain(model *models.WaterRecordModel) (*wellness.WaterRecord, error)
}

// WellnessMapperImpl is the concrete implementation of WellnessMapper.
type WellnessMapperImpl struct{}

// NewWellnessMapper creates a new WellnessMapper.
func NewWellnessMapper() WellnessMapper {
	return &WellnessMapperImpl{}
}

func (m *WellnessMapperImpl) VitalsToModel(r *wellness.VitalsRecord) *models.VitalsRecordModel {
	return &models.VitalsRecordModel{
		ID:            r.ID(),
		UserID:        r.UserID(),
		VitalType:     r.VitalType(),
		Value:         r.Value(),
		Unit:          r.Unit(),
		MeasuredAt:    r.MeasuredAt(),
		SourceEventID: r.SourceEventID(),
		CreatedAt:     r.CreatedAt(),
	}
}

func (m *WellnessMapperImpl) VitalsToDomain(model *models.VitalsRecordModel) (*wellness.VitalsRecord, error) {
	return wellness.ReconstructVitalsRecord(
		model.ID,
		model.UserID,
		model.VitalType,
		model.Value,
		model.Unit,
		model.MeasuredAt,
		model.SourceEventID,
		model.CreatedAt,
	)
}

func (m *WellnessMapperImpl) MoodToModel(r *wellness.MoodRecord) *models.MoodRecordModel {
	return &models.MoodRecordModel{
		ID:            r.ID(),
		UserID:        r.UserID(),
		MoodScale:     r.MoodScale(),
		Notes:         r.Notes(),
		LoggedAt:      r.LoggedAt(),
		SourceEventID: r.SourceEventID(),
		CreatedAt:     r.CreatedAt(),
	}
}

func (m *WellnessMapperImpl) MoodToDomain(model *models.MoodRecordModel) (*wellness.MoodRecord, error) {
	return wellness.ReconstructMoodRecord(
		model.ID,
		model.UserID,
		model.MoodScale,
		model.Notes,
		model.LoggedAt,
		model.SourceEventID,
		model.CreatedAt,
	)
}

func (m *WellnessMapperImpl) WaterToModel(r *wellness.WaterRecord) *models.WaterRecordModel {
	return &models.WaterRecordModel{
		ID:            r.ID(),
		UserID:        r.UserID(),
		AmountML:      r.AmountML(),
		LoggedAt:      r.LoggedAt(),
		SourceEventID: r.SourceEventID(),
		CreatedAt:     r.CreatedAt(),
	}
}

func (m *WellnessMapperImpl) WaterToDomain(model *models.WaterRecordModel) (*wellness.WaterRecord, error) {
	return wellness.ReconstructWaterRecord(
		model.ID,
		model.UserID,
		model.AmountML,
		model.LoggedAt,
		model.SourceEventID,
		model.CreatedAt,
	)
}
