package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/complaint"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// GetHistoryQuery reads a complaint's status trail, oldest first.
type GetHistoryQuery struct {
	CallerID        uint
	CallerIsOfficer bool
	ComplaintSID    string
}

// StatusChangeView is one transition. Actor identities are not exposed
// here; the audit log carries them for officer review.
type StatusChangeView struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	OldLevel  string `json:"old_level"`
	NewLevel  string `json:"new_level"`
	Reason    string `json:"reason"`
	Automatic bool   `json:"automatic"`
	CreatedAt string `json:"created_at"`
}

type HistoryResult struct {
	ComplaintSID string             `json:"complaint_sid"`
	Changes      []StatusChangeView `json:"changes"`
}

type GetHistoryUseCase struct {
	complaints complaint.Repository
	histories  complaint.StatusHistoryRepository
	logger     logger.Interface
}

func NewGetHistoryUseCase(
	complaints complaint.Repository,
	histories complaint.StatusHistoryRepository,
	logger logger.Interface,
) *GetHistoryUseCase {
	return &GetHistoryUseCase{
		complaints: complaints,
		histories:  histories,
		logger:     logger,
	}
}

func (uc *GetHistoryUseCase) Execute(ctx context.Context, query GetHistoryQuery) (*HistoryResult, error) {
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

	changes, err := uc.histories.ListByComplaint(ctx, grievance.ID())
	if err != nil {
		uc.logger.Errorw("failed to list complaint history",
			"complaint_sid", grievance.SID(), "error", err)
		return nil, apperrors.NewInternalError("failed to get complaint history")
	}

	views := make([]StatusChangeView, 0, len(changes))
	for _, change := range changes {
		views = append(views, StatusChangeView{
			OldStatus: change.OldStatus().String(),
			NewStatus: change.NewStatus().String(),
			OldLevel:  change.OldLevel().String(),
			NewLevel:  change.NewLevel().String(),
			Reason:    change.Reason(),
			Automatic: change.IsAutoEscalation(),
			CreatedAt: change.CreatedAt().Format(time.RFC3339),
		})
	}

	return &HistoryResult{ComplaintSID: grievance.SID(), Changes: views}, nil
}
