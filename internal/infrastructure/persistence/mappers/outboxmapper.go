package mappers

import (
	"github.com/sahay-inc/sahay/internal/domain/outbox"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
)

// OutboxMapper handles the conversion between outbox Message domain entities and persistence models.
type OutboxMapper interface {
	ToModel(msg *outbox.Message) *models.OutboxMessageModel
	ToDomain(model *models.OutboxMessageModel) (*outbox.Message, error)
}

// OutboxMapperImpl is the concrete implementation of OutboxMapper.
type OutboxMapperImpl struct{}

// NewOutboxMapper creates a new OutboxMapper.
func NewOutboxMapper() OutboxMapper {
	return &OutboxMapperImpl{}
}

// ToModel converts an outbox message to a persistence model.
func (m *OutboxMapperImpl) ToModel(msg *outbox.Message) *models.OutboxMessageModel {
	return &models.OutboxMessageModel{
		ID:        msg.ID(),
		SID:       msg.SID(),
		UserID:    msg.UserID(),
		Channel:   msg.Channel().String(),
		Recipient: msg.Recipient(),
		Payload:   msg.Payload(),
		Status:    msg.Status().String(),
		Attempts:  msg.Attempts(),
		LastError: msg.LastError(),
		SentAt:    msg.SentAt(),
		CreatedAt: msg.CreatedAt(),
		UpdatedAt: msg.UpdatedAt(),
	}
}

// ToDomain converts an outbox persistence model to a domain entity.
func (m *OutboxMapperImpl) ToDomain(model *models.OutboxMessageModel) (*outbox.Message, error) {
	return outbox.ReconstructMessage(
		model.ID,
		model.SID,
		model.UserID,
		outbox.Channel(model.Channel),
		model.Recipient,
		model.Payload,
		outbox.Status(model.Status),
		model.Attempts,
		model.LastError,
		model.SentAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
