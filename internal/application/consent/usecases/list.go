package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/consent"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// ListConsentsQuery lists the caller's consent state. The default view is
// the newest receipt per (category, scope); History switches to the full
// paginated receipt trail.
type ListConsentsQuery struct {
	UserID   uint
	History  bool
	Page     int
	PageSize int
}

type ConsentView struct {
	ConsentSID      string `json:"consent_sid"`
	Category        string `json:"category"`
	Scope           string `json:"scope"`
	DocumentVersion string `json:"document_version"`
	Granted         bool   `json:"granted"`
	Effective       bool   `json:"effective"`
	GrantedAt       string `json:"granted_at"`
}

type ListConsentsResult struct {
	Consents []ConsentView
	Total    int64
}

type ListConsentsUseCase struct {
	records         consent.Repository
	documentVersion string
	logger          logger.Interface
}

func NewListConsentsUseCase(
	records consent.Repository,
	documentVersion string,
	logger logger.Interface,
) *ListConsentsUseCase {
	return &ListConsentsUseCase{
		records:         records,
		documentVersion: documentVersion,
		logger:          logger,
	}
}

func (uc *ListConsentsUseCase) Execute(ctx context.Context, query ListConsentsQuery) (*ListConsentsResult, error) {
	if query.UserID == 0 {
		return nil, apperrors.NewValidationError("user ID is required")
	}

	if query.History {
		return uc.listHistory(ctx, query)
	}

	records, err := uc.records.ListCurrentByUser(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to list consents", "error", err, "user_id", query.UserID)
		return nil, apperrors.NewInternalError("failed to list consents")
	}

	return &ListConsentsResult{
		Consents: uc.toViews(records),
		Total:    int64(len(records)),
	}, nil
}

func (uc *ListConsentsUseCase) listHistory(ctx context.Context, query ListConsentsQuery) (*ListConsentsResult, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	records, total, err := uc.records.ListHistoryByUser(ctx, query.UserID, page, pageSize)
	if err != nil {
		uc.logger.Errorw("failed to list consent history", "error", err, "user_id", query.UserID)
		return nil, apperrors.NewInternalError("failed to list consents")
	}

	return &ListConsentsResult{
		Consents: uc.toViews(records),
		Total:    total,
	}, nil
}

func (uc *ListConsentsUseCase) toViews(records []*consent.Record) []ConsentView {
	views := make([]ConsentView, 0, len(records))
	for _, record := range records {
		views = append(views, ConsentView{
			ConsentSID:      record.SID(),
			Category:        record.Category().String(),
			Scope:           record.Scope().String(),
			DocumentVersion: record.DocumentVersion(),
			Granted:         record.Granted(),
			Effective:       record.GrantsUnder(uc.documentVersion),
			GrantedAt:       record.GrantedAt().Format(time.RFC3339),
		})
	}
	return views
}
