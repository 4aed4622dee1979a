package mappers

import (
	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
)

// AuditMapper handles the conversion between audit Entry domain entities and persistence models.
type AuditMapper interface {
	ToModel(e *audit.Entry) *models.AuditEntryModel
	ToDomain(model *models.AuditEntryModel) (*audit.Entry, error)
}

// AuditMapperImpl is the concrete implementation of AuditMapper.
type AuditMapperImpl struct{}

// NewAuditMapper creates a new AuditMapper.
func NewAuditMapper() AuditMapper {
	return &AuditMapperImpl{}
}

// ToModel converts an audit entry to a persistence model.
func (m *AuditMapperImpl) ToModel(e *audit.Entry) *models.AuditEntryModel {
	return &models.AuditEntryModel{
		Seq:           e.Seq(),
		ActorID:       e.ActorID(),
		Action:        e.Action(),
		EntityType:    e.EntityType(),
		EntityID:      e.EntityID(),
		IP:            e.IP(),
		Device:        e.Device(),
		PayloadDigest: e.PayloadDigest(),
		TS:            e.Timestamp(),
		PrevHash:      e.PrevHash(),
		EntryHash:     e.EntryHash(),
	}
}

// ToDomain converts an audit persistence model to a domain entity without
// re-hashing; verification is a separate explicit operation.
func (m *AuditMapperImpl) ToDomain(model *models.AuditEntryModel) (*audit.Entry, error) {
	return audit.ReconstructEntry(
		model.Seq,
		model.ActorID,
		model.Action,
		model.EntityType,
		model.EntityID,
		model.IP,
		model.Device,
		model.PayloadDigest,
		model.TS,
		model.PrevHash,
		model.EntryHash,
	)
}
