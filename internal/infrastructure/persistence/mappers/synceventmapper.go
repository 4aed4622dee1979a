package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/sahay-inc/sahay/internal/domain/syncevent"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
)

// SyncEventMapper handles the conversion between sync Event domain entities and persistence models.
type SyncEventMapper interface {
	ToModel(e *syncevent.Event) (*models.SyncEventModel, error)
	ToDomain(model *models.SyncEventModel) (*syncevent.Event, error)
}

// SyncEventMapperImpl is the concrete implementation of SyncEventMapper.
type SyncEventMapperImpl struct{}

// NewSyncEventMapper creates a new SyncEventMapper.
func NewSyncEventMapper() SyncEventMapper {
	return &SyncEventMapperImpl{}
}

// ToModel converts a sync event to a persistence model.
func (m *SyncEventMapperImpl) ToModel(e *syncevent.Event) (*models.SyncEventModel, error) {
	model := &models.SyncEventModel{
		ID:         e.ID(),
		EventID:    e.EventID(),
		DeviceID:   e.DeviceID(),
		UserID:     e.UserID(),
		EntityType: e.EntityType().String(),
		Operation:  e.Operation().String(),
		ClientTime: e.ClientTime(),
		ServerTime: e.ServerTime(),
		Outcome:    e.Outcome().String(),
		ServerID:   e.ServerID(),
	}

	if payload := e.Payload(); payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal sync event payload (event_id=%s): %w", e.EventID(), err)
		}
		model.Payload = datatypes.JSON(raw)
	}

	return model, nil
}

// ToDomain converts a sync event persistence model to a domain entity.
func (m *SyncEventMapperImpl) ToDomain(model *models.SyncEventModel) (*syncevent.Event, error) {
	var payload map[string]any
	if len(model.Payload) > 0 {
		if err := json.Unmarshal(model.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sync event payload (id=%d): %w", model.ID, err)
		}
	}

	return syncevent.ReconstructEvent(
		model.ID,
		model.EventID,
		model.DeviceID,
		model.UserID,
		syncevent.EntityType(model.EntityType),
		syncevent.Operation(model.Operation),
		model.ClientTime,
		model.ServerTime,
		payload,
		syncevent.Outcome(model.Outcome),
		model.ServerID,
	)
}
