package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/dashboard"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// SymptomHeatmapQuery narrows the symptom heatmap view read to a
// trailing window of whole days. Zero means the default window.
type SymptomHeatmapQuery struct {
	Days int
}

type SymptomHeatmapResult struct {
	Rows  []dashboard.SymptomHeatmapRow `json:"rows"`
	Count int                           `json:"count"`
	Days  int                           `json:"days"`
}

// ListSymptomHeatmapUseCase reads the pre-built symptom cluster view.
type ListSymptomHeatmapUseCase struct {
	views  dashboard.Repository
	logger logger.Interface
}

func NewListSymptomHeatmapUseCase(views dashboard.Repository, logger logger.Interface) *ListSymptomHeatmapUseCase {
	return &ListSymptomHeatmapUseCase{
		views:  views,
		logger: logger,
	}
}

func (uc *ListSymptomHeatmapUseCase) Execute(ctx context.Context, query SymptomHeatmapQuery) (*SymptomHeatmapResult, error) {
	uc.logger.Infow("executing list symptom heatmap use case", "days", query.Days)

	days := query.Days
	if days < 0 {
		return nil, apperrors.NewValidationError("days must not be negative")
	}
	if days == 0 {
		days = defaultHeatmapDays
	}

	rows, err := uc.views.SymptomHeatmap(ctx, dashboard.HeatmapFilter{Days: days})
	if err != nil {
		uc.logger.Errorw("failed to query symptom heatmap view", "error", err)
		return nil, apperrors.NewInternalError("failed to query symptom heatmap")
	}
	if rows == nil {
		rows = []dashboard.SymptomHeatmapRow{}
	}

	return &SymptomHeatmapResult{Rows: rows, Count: len(rows), Days: days}, nil
}
