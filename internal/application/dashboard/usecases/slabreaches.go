package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/dashboard"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// SLABreachQuery narrows the SLA breach counts view read.
// MinEscalationRate is a percentage; nil leaves the bound open.
type SLABreachQuery struct {
	GeoCell           string
	MinEscalationRate *float64
}

type SLABreachResult struct {
	Rows  []dashboard.SLABreachRow `json:"rows"`
	Count int                      `json:"count"`
}

// ListSLABreachesUseCase reads the pre-built SLA breach view for
// accountability tables.
type ListSLABreachesUseCase struct {
	views  dashboard.Repository
	logger logger.Interface
}

func NewListSLABreachesUseCase(views dashboard.Repository, logger logger.Interface) *ListSLABreachesUseCase {
	return &ListSLABreachesUseCase{
		views:  views,
		logger: logger,
	}
}

func (uc *ListSLABreachesUseCase) Execute(ctx context.Context, query SLABreachQuery) (*SLABreachResult, error) {
	uc.logger.Infow("executing list SLA breaches use case", "geo_cell", query.GeoCell)

	if query.MinEscalationRate != nil {
		rate := *query.MinEscalationRate
		if rate < 0 || rate > 100 {
			return nil, apperrors.NewValidationError("min_escalation_rate must be between 0 and 100")
		}
	}

	rows, err := uc.views.SLABreachCounts(ctx, dashboard.SLABreachFilter{
		GeoCell:           optionalString(query.GeoCell),
		MinEscalationRate: query.MinEscalationRate,
	})
	if err != nil {
		uc.logger.Errorw("failed to query SLA breach view", "error", err)
		return nil, apperrors.NewInternalError("failed to query SLA breaches")
	}
	if rows == nil {
		rows = []dashboard.SLABreachRow{}
	}

	return &SLABreachResult{Rows: rows, Count: len(rows)}, nil
}
