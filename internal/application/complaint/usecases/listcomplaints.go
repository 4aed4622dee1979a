package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/complaint"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// ListComplaintsQuery pages through complaints. Non-officer callers are
// pinned to their own submissions regardless of filters.
type ListComplaintsQuery struct {
	CallerID        uint
	CallerIsOfficer bool
	Status          string
	Category        string
	EscalationLevel string
	Page            int
	PageSize        int
}

// ComplaintSummary is the list row. The sealed description is not opened
// here; the detail view carries it.
type ComplaintSummary struct {
	ComplaintSID        string `json:"complaint_sid"`
	Category            string `json:"category"`
	Status              string `json:"status"`
	EscalationLevel     string `json:"escalation_level"`
	EscalationExhausted bool   `json:"escalation_exhausted"`
	SLADeadline         string `json:"sla_deadline"`
	Anonymous           bool   `json:"anonymous"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
}

type ListComplaintsResult struct {
	Complaints []ComplaintSummary
	Total      int64
	Page       int
	PageSize   int
}

type ListComplaintsUseCase struct {
	complaints complaint.Repository
	logger     logger.Interface
}

func NewListComplaintsUseCase(complaints complaint.Repository, logger logger.Interface) *ListComplaintsUseCase {
	return &ListComplaintsUseCase{
		complaints: complaints,
		logger:     logger,
	}
}

func (uc *ListComplaintsUseCase) Execute(ctx context.Context, query ListComplaintsQuery) (*ListComplaintsResult, error) {
	if query.CallerID == 0 {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}

	filter := complaint.ListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	if !query.CallerIsOfficer {
		callerID := query.CallerID
		filter.SubmitterID = &callerID
	}

	if query.Status != "" {
		status, err := complaint.NewStatus(query.Status)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if query.Category != "" {
		category, err := complaint.NewCategory(query.Category)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Category = &category
	}
	if query.EscalationLevel != "" {
		level, err := complaint.NewEscalationLevel(query.EscalationLevel)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.EscalationLevel = &level
	}

	complaints, total, err := uc.complaints.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list complaints", "error", err)
		return nil, apperrors.NewInternalError("failed to list complaints")
	}

	summaries := make([]ComplaintSummary, 0, len(complaints))
	for _, c := range complaints {
		summaries = append(summaries, ComplaintSummary{
			ComplaintSID:        c.SID(),
			Category:            c.Category().String(),
			Status:              c.Status().String(),
			EscalationLevel:     c.EscalationLevel().String(),
			EscalationExhausted: c.EscalationExhausted(),
			SLADeadline:         c.SLADeadline().Format(time.RFC3339),
			Anonymous:           c.IsAnonymous(),
			CreatedAt:           c.CreatedAt().Format(time.RFC3339),
			UpdatedAt:           c.UpdatedAt().Format(time.RFC3339),
		})
	}

	return &ListComplaintsResult{
		Complaints: summaries,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}
