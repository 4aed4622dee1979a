package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/dashboard"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// ComplaintsByDistrictQuery narrows the complaint-by-district view read.
type ComplaintsByDistrictQuery struct {
	GeoCell  string
	Category string
}

type ComplaintsByDistrictResult struct {
	Rows  []dashboard.ComplaintDistrictRow `json:"rows"`
	Count int                              `json:"count"`
}

// ListComplaintsByDistrictUseCase reads the pre-built complaint
// distribution view.
type ListComplaintsByDistrictUseCase struct {
	views  dashboard.Repository
	logger logger.Interface
}

func NewListComplaintsByDistrictUseCase(views dashboard.Repository, logger logger.Interface) *ListComplaintsByDistrictUseCase {
	return &ListComplaintsByDistrictUseCase{
		views:  views,
		logger: logger,
	}
}

func (uc *ListComplaintsByDistrictUseCase) Execute(ctx context.Context, query ComplaintsByDistrictQuery) (*ComplaintsByDistrictResult, error) {
	uc.logger.Infow("executing list complaints by district use case",
		"geo_cell", query.GeoCell,
		"category", query.Category)

	rows, err := uc.views.ComplaintsByDistrict(ctx, dashboard.ComplaintDistrictFilter{
		GeoCell:  optionalString(query.GeoCell),
		Category: optionalString(query.Category),
	})
	if err != nil {
		uc.logger.Errorw("failed to query complaints by district view", "error", err)
		return nil, apperrors.NewInternalError("failed to query complaints by district")
	}
	if rows == nil {
		rows = []dashboard.ComplaintDistrictRow{}
	}

	return &ComplaintsByDistrictResult{Rows: rows, Count: len(rows)}, nil
}
