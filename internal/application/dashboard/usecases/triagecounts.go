package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/dashboard"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

const civilDateLayout = "2006-01-02"

// TriageCountsQuery narrows the daily triage counts view read. Dates are
// civil YYYY-MM-DD strings; empty fields leave the bound open.
type TriageCountsQuery struct {
	StartDate string
	EndDate   string
	GeoCell   string
}

type TriageCountsResult struct {
	Rows  []dashboard.DailyTriageRow `json:"rows"`
	Count int                        `json:"count"`
}

// ListTriageCountsUseCase reads the pre-built daily triage counts view.
type ListTriageCountsUseCase struct {
	views  dashboard.Repository
	logger logger.Interface
}

func NewListTriageCountsUseCase(views dashboard.Repository, logger logger.Interface) *ListTriageCountsUseCase {
	return &ListTriageCountsUseCase{
		views:  views,
		logger: logger,
	}
}

func (uc *ListTriageCountsUseCase) Execute(ctx context.Context, query TriageCountsQuery) (*TriageCountsResult, error) {
	uc.logger.Infow("executing list triage counts use case", "geo_cell", query.GeoCell)

	filter := dashboard.TriageCountsFilter{GeoCell: optionalString(query.GeoCell)}

	startDate, err := civilDate(query.StartDate, "start_date")
	if err != nil {
		return nil, err
	}
	filter.StartDate = startDate

	endDate, err := civilDate(query.EndDate, "end_date")
	if err != nil {
		return nil, err
	}
	filter.EndDate = endDate

	if filter.StartDate != nil && filter.EndDate != nil && *filter.EndDate < *filter.StartDate {
		return nil, apperrors.NewValidationError("end_date must not precede start_date")
	}

	rows, err := uc.views.DailyTriageCounts(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to query daily triage counts view", "error", err)
		return nil, apperrors.NewInternalError("failed to query daily triage counts")
	}
	if rows == nil {
		rows = []dashboard.DailyTriageRow{}
	}

	return &TriageCountsResult{Rows: rows, Count: len(rows)}, nil
}

// civilDate validates an optional YYYY-MM-DD bound. ISO civil dates
// compare correctly as strings, which the view queries rely on.
func civilDate(raw, field string) (*string, error) {
	if raw == "" {
		return nil, nil
	}
	if _, err := time.Parse(civilDateLayout, raw); err != nil {
		return nil, apperrors.NewValidationError(field + " must be YYYY-MM-DD")
	}
	return &raw, nil
}
