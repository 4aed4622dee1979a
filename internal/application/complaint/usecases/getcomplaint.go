package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/complaint"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// GetComplaintQuery reads one complaint. Owners see their own; officer
// callers see any. Anonymous complaints have no owner and are officer-only.
type GetComplaintQuery struct {
	CallerID        uint
	CallerIsOfficer bool
	ComplaintSID    string
}

// EvidenceView describes one attachment. Bytes stay in the evidence store;
// the view carries metadata only.
type EvidenceView struct {
	EvidenceSID string `json:"evidence_sid"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	ContentHash string `json:"content_hash"`
	CreatedAt   string `json:"created_at"`
}

type ComplaintView struct {
	ComplaintSID        string         `json:"complaint_sid"`
	Category            string         `json:"category"`
	Description         string         `json:"description"`
	Status              string         `json:"status"`
	EscalationLevel     string         `json:"escalation_level"`
	EscalationExhausted bool           `json:"escalation_exhausted"`
	SLADeadline         string         `json:"sla_deadline"`
	ResolutionNote      *string        `json:"resolution_note,omitempty"`
	FeedbackRating      *int           `json:"feedback_rating,omitempty"`
	FeedbackComments    *string        `json:"feedback_comments,omitempty"`
	ClosureHash         *string        `json:"closure_hash,omitempty"`
	ClosedAt            *string        `json:"closed_at,omitempty"`
	Anonymous           bool           `json:"anonymous"`
	Version             int            `json:"version"`
	CreatedAt           string         `json:"created_at"`
	UpdatedAt           string         `json:"updated_at"`
	Evidence            []EvidenceView `json:"evidence"`
}

type GetComplaintUseCase struct {
	complaints complaint.Repository
	evidences  complaint.EvidenceRepository
	sealer     PayloadSealer
	logger     logger.Interface
}

func NewGetComplaintUseCase(
	complaints complaint.Repository,
	evidences complaint.EvidenceRepository,
	sealer PayloadSealer,
	logger logger.Interface,
) *GetComplaintUseCase {
	return &GetComplaintUseCase{
		complaints: complaints,
		evidences:  evidences,
		sealer:     sealer,
		logger:     logger,
	}
}

func (uc *GetComplaintUseCase) Execute(ctx context.Context, query GetComplaintQuery) (*ComplaintView, error) {
	if query.CallerID == 0 {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}
	if query.ComplaintSID == "" {
		return nil, apperrors.NewValidationError("complaint ID is required")
	}

	grievance, err := uc.complaints.GetBySID(ctx, query.ComplaintSID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.NewInternalError("failed to get complaint")
	}

	if !query.CallerIsOfficer && !grievance.CanBeViewedBy(query.CallerID) {
		return nil, apperrors.NewForbiddenError("access denied")
	}

	plaintext, err := uc.sealer.Open(grievance.PayloadEncrypted())
	if err != nil {
		uc.logger.Errorw("failed to unseal complaint payload",
			"complaint_sid", grievance.SID(), "error", err)
		return nil, apperrors.NewInternalError("failed to read complaint")
	}

	attachments, err := uc.evidences.ListByComplaint(ctx, grievance.ID())
	if err != nil {
		uc.logger.Errorw("failed to list complaint evidence",
			"complaint_sid", grievance.SID(), "error", err)
		return nil, apperrors.NewInternalError("failed to read complaint")
	}

	view := complaintView(grievance, string(plaintext))
	view.Evidence = make([]EvidenceView, 0, len(attachments))
	for _, ev := range attachments {
		view.Evidence = append(view.Evidence, EvidenceView{
			EvidenceSID: ev.SID(),
			ContentType: ev.ContentType(),
			SizeBytes:   ev.SizeBytes(),
			ContentHash: ev.ContentHash(),
			CreatedAt:   ev.CreatedAt().Format(time.RFC3339),
		})
	}
	return view, nil
}

func complaintView(c *complaint.Complaint, description string) *ComplaintView {
	view := &ComplaintView{
		ComplaintSID:        c.SID(),
		Category:            c.Category().String(),
		Description:         description,
		Status:              c.Status().String(),
		EscalationLevel:     c.EscalationLevel().String(),
		EscalationExhausted: c.EscalationExhausted(),
		SLADeadline:         c.SLADeadline().Format(time.RFC3339),
		ResolutionNote:      c.ResolutionNote(),
		FeedbackRating:      c.FeedbackRating(),
		FeedbackComments:    c.FeedbackComments(),
		ClosureHash:         c.ClosureHash(),
		Anonymous:           c.IsAnonymous(),
		Version:             c.Version(),
		CreatedAt:           c.CreatedAt().Format(time.RFC3339),
		UpdatedAt:           c.UpdatedAt().Format(time.RFC3339),
	}
	if closedAt := c.ClosedAt(); closedAt != nil {
		formatted := closedAt.Format(time.RFC3339)
		view.ClosedAt = &formatted
	}
	return view
}
