package mappers

import (
	"github.com/sahay-inc/sahay/internal/domain/anchor"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
)

// AnchorMapper handles the conversion between anchor Record domain entities and persistence models.
type AnchorMapper interface {
	ToModel(r *anchor.Record) *models.AnchorRecordModel
	ToDomain(model *models.AnchorRecordModel) (*anchor.Record, error)
}

// AnchorMapperImpl is the concrete implementation of AnchorMapper.
type AnchorMapperImpl struct{}

// NewAnchorMapper creates a new AnchorMapper.
func NewAnchorMapper() AnchorMapper {
	return &AnchorMapperImpl{}
}

// ToModel converts an anchor record to a persistence model.
func (m *AnchorMapperImpl) ToModel(r *anchor.Record) *models.AnchorRecordModel {
	return &models.AnchorRecordModel{
		ID:            r.ID(),
		SID:           r.SID(),
		ComplaintID:   r.ComplaintID(),
		ComplaintHash: r.ComplaintHash(),
		SLAHash:       r.SLAHash(),
		StatusHash:    r.StatusHash(),
		StatusNonce:   r.StatusNonce(),
		Operation:     string(r.Operation()),
		Status:        r.Status().String(),
		TxHash:        r.TxHash(),
		Attempts:      r.Attempts(),
		NextAttemptAt: r.NextAttemptAt(),
		LastError:     r.LastError(),
		AnchoredAt:    r.AnchoredAt(),
		CreatedAtTS:   r.CreatedAtTS(),
		UpdatedAtTS:   r.UpdatedAtTS(),
		CreatedAt:     r.CreatedAt(),
		UpdatedAt:     r.UpdatedAt(),
	}
}

// ToDomain converts an anchor persistence model to a domain entity.
func (m *AnchorMapperImpl) ToDomain(model *models.AnchorRecordModel) (*anchor.Record, error) {
	return anchor.ReconstructRecord(
		model.ID,
		model.SID,
		model.ComplaintID,
		model.ComplaintHash,
		model.SLAHash,
		model.StatusHash,
		model.StatusNonce,
		anchor.Operation(model.Operation),
		anchor.Status(model.Status),
		model.TxHash,
		model.Attempts,
		model.NextAttemptAt,
		model.LastError,
		model.AnchoredAt,
		model.CreatedAtTS,
		model.UpdatedAtTS,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
