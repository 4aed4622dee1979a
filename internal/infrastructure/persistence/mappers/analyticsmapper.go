package mappers

import (
	"gorm.io/datatypes"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
)

// AnalyticsMapper handles the conversion between analytics domain entities and persistence models.
type AnalyticsMapper interface {
	EventToModel(e *analytics.StoredEvent) *models.AnalyticsEventModel
	EventToDomain(model *models.AnalyticsEventModel) (*analytics.StoredEvent, error)

	AggregateToDomain(model *models.AggregatedEventModel) (*analytics.Aggregate, error)
}

// AnalyticsMapperImpl is the concrete implementation of AnalyticsMapper.
type AnalyticsMapperImpl struct{}

// NewAnalyticsMapper creates a new AnalyticsMapper.
func NewAnalyticsMapper() AnalyticsMapper {
	return &AnalyticsMapperImpl{}
}

func (m *AnalyticsMapperImpl) EventToModel(e *analytics.StoredEvent) *models.AnalyticsEventModel {
	return &models.AnalyticsEventModel{
		ID:        e.ID(),
		SID:       e.SID(),
		UserID:    e.UserID(),
		EventType: e.EventType().String(),
		Payload:   datatypes.JSON(e.PayloadJSON()),
		CreatedAt: e.CreatedAt(),
	}
}

func (m *AnalyticsMapperImpl) EventToDomain(model *models.AnalyticsEventModel) (*analytics.StoredEvent, error) {
	return analytics.ReconstructStoredEvent(
		model.ID,
		model.SID,
		model.UserID,
		analytics.EventType(model.EventType),
		model.Payload,
		model.CreatedAt,
	)
}

// AggregateToDomain converts a counter cell row to a domain entity.
// Aggregates are written through UPSERT SQL, so there is no ToModel path.
func (m *AnalyticsMapperImpl) AggregateToDomain(model *models.AggregatedEventModel) (*analytics.Aggregate, error) {
	return analytics.ReconstructAggregate(
		model.ID,
		analytics.Key{
			EventType: analytics.EventType(model.EventType),
			Category:  model.Category,
			EventTime: model.TimeBucket,
			GeoCell:   model.GeoCell,
			AgeBucket: model.AgeBucket,
			Gender:    model.Gender,
		},
		model.Count,
		model.FirstSeen,
		model.LastUpdated,
	)
}
