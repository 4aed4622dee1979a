package mappers

import (
	"github.com/sahay-inc/sahay/internal/domain/complaint"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
)

// ComplaintMapper handles the conversion between complaint domain entities and persistence models.
type ComplaintMapper interface {
	ToModel(c *complaint.Complaint) *models.ComplaintModel
	ToDomain(model *models.ComplaintModel) (*complaint.Complaint, error)

	HistoryToModel(sc *complaint.StatusChange) *models.ComplaintStatusHistoryModel
	HistoryToDomain(model *models.ComplaintStatusHistoryModel) (*complaint.StatusChange, error)

	EvidenceToModel(e *complaint.Evidence) *models.EvidenceModel
	EvidenceToDomain(model *models.EvidenceModel) (*complaint.Evidence, error)

	SLARuleToModel(r *complaint.SLARule) *models.SLARuleModel
	SLARuleToDomain(model *models.SLARuleModel) (*complaint.SLARule, error)
}

// ComplaintMapperImpl is the concrete implementation of ComplaintMapper.
type ComplaintMapperImpl struct{}

// NewComplaintMapper creates a new ComplaintMapper.
func NewComplaintMapper() ComplaintMapper {
	return &ComplaintMapperImpl{}
}

// ToModel converts a complaint to a persistence model.
func (m *ComplaintMapperImpl) ToModel(c *complaint.Complaint) *models.ComplaintModel {
	return &models.ComplaintModel{
		ID:                  c.ID(),
		SID:                 c.SID(),
		SubmitterID:         c.SubmitterID(),
		Category:            c.Category().String(),
		PayloadEncrypted:    c.PayloadEncrypted(),
		Status:              c.Status().String(),
		EscalationLevel:     c.EscalationLevel().String(),
		EscalationExhausted: c.EscalationExhausted(),
		SLADeadline:         c.SLADeadline(),
		ResolutionNote:      c.ResolutionNote(),
		FeedbackRating:      c.FeedbackRating(),
		FeedbackComments:    c.FeedbackComments(),
		FeedbackSubmittedAt: c.FeedbackSubmittedAt(),
		ClosureHash:         c.ClosureHash(),
		ClosedAt:            c.ClosedAt(),
		Version:             c.Version(),
		CreatedAt:           c.CreatedAt(),
		UpdatedAt:           c.UpdatedAt(),
	}
}

// ToDomain converts a complaint persistence model to a domain entity.
func (m *ComplaintMapperImpl) ToDomain(model *models.ComplaintModel) (*complaint.Complaint, error) {
	return complaint.ReconstructComplaint(
		model.ID,
		model.SID,
		model.SubmitterID,
		complaint.Category(model.Category),
		model.PayloadEncrypted,
		complaint.Status(model.Status),
		complaint.EscalationLevel(model.EscalationLevel),
		model.EscalationExhausted,
		model.SLADeadline,
		model.ResolutionNote,
		model.FeedbackRating,
		model.FeedbackComments,
		model.FeedbackSubmittedAt,
		model.ClosureHash,
		model.ClosedAt,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ComplaintMapperImpl) HistoryToModel(sc *complaint.StatusChange) *models.ComplaintStatusHistoryModel {
	return &models.ComplaintStatusHistoryModel{
		ID:               sc.ID(),
		ComplaintID:      sc.ComplaintID(),
		OldStatus:        sc.OldStatus().String(),
		NewStatus:        sc.NewStatus().String(),
		OldLevel:         sc.OldLevel().String(),
		NewLevel:         sc.NewLevel().String(),
		ChangedByUserID:  sc.ChangedByUserID(),
		Reason:           sc.Reason(),
		IsAutoEscalation: sc.IsAutoEscalation(),
		CreatedAt:        sc.CreatedAt(),
	}
}

func (m *ComplaintMapperImpl) HistoryToDomain(model *models.ComplaintStatusHistoryModel) (*complaint.StatusChange, error) {
	return complaint.ReconstructStatusChange(
		model.ID,
		model.ComplaintID,
		complaint.Status(model.OldStatus),
		complaint.Status(model.NewStatus),
		complaint.EscalationLevel(model.OldLevel),
		complaint.EscalationLevel(model.NewLevel),
		model.ChangedByUserID,
		model.Reason,
		model.IsAutoEscalation,
		model.CreatedAt,
	)
}

func (m *ComplaintMapperImpl) EvidenceToModel(e *complaint.Evidence) *models.EvidenceModel {
	return &models.EvidenceModel{
		ID:          e.ID(),
		SID:         e.SID(),
		ComplaintID: e.ComplaintID(),
		ObjectKey:   e.ObjectKey(),
		ContentHash: e.ContentHash(),
		ContentType: e.ContentType(),
		SizeBytes:   e.SizeBytes(),
		CreatedAt:   e.CreatedAt(),
	}
}

func (m *ComplaintMapperImpl) EvidenceToDomain(model *models.EvidenceModel) (*complaint.Evidence, error) {
	return complaint.ReconstructEvidence(
		model.ID,
		model.SID,
		model.ComplaintID,
		model.ObjectKey,
		model.ContentHash,
		model.ContentType,
		model.SizeBytes,
		model.CreatedAt,
	)
}

func (m *ComplaintMapperImpl) SLARuleToModel(r *complaint.SLARule) *models.SLARuleModel {
	return &models.SLARuleModel{
		ID:             r.ID(),
		Category:       r.Category().String(),
		Level:          r.Level().String(),
		TimeLimitHours: r.TimeLimitHours(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
}

func (m *ComplaintMapperImpl) SLARuleToDomain(model *models.SLARuleModel) (*complaint.SLARule, error) {
	return complaint.ReconstructSLARule(
		model.ID,
		complaint.Category(model.Category),
		complaint.EscalationLevel(model.Level),
		model.TimeLimitHours,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
