package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

const defaultOverviewDays = 30

// OverviewQuery narrows the overview to a trailing window of whole days.
// Zero means the default window.
type OverviewQuery struct {
	Days int
}

// OverviewResult is the high-level counter block at the top of the
// officer dashboard.
type OverviewResult struct {
	TotalEvents    int64            `json:"total_events"`
	UniqueGeoCells int              `json:"unique_geo_cells"`
	EventTypes     map[string]int64 `json:"event_types"`
	Days           int              `json:"days"`
	Window         Window           `json:"window"`
}

// GetOverviewUseCase sums the aggregated cells for the overview header.
// The k-floor is applied per cell in the repository query, so suppressed
// cells never contribute to any total here.
type GetOverviewUseCase struct {
	aggregates analytics.AggregateRepository
	kThreshold int64
	logger     logger.Interface
}

func NewGetOverviewUseCase(
	aggregates analytics.AggregateRepository,
	kThreshold int64,
	logger logger.Interface,
) *GetOverviewUseCase {
	if kThreshold <= 0 {
		kThreshold = analytics.DefaultKThreshold
	}
	return &GetOverviewUseCase{
		aggregates: aggregates,
		kThreshold: kThreshold,
		logger:     logger,
	}
}

func (uc *GetOverviewUseCase) Execute(ctx context.Context, query OverviewQuery) (*OverviewResult, error) {
	uc.logger.Infow("executing get dashboard overview use case", "days", query.Days)

	days := query.Days
	if days < 0 {
		return nil, apperrors.NewValidationError("days must not be negative")
	}
	if days == 0 {
		days = defaultOverviewDays
	}

	to := time.Now()
	from := to.AddDate(0, 0, -days)

	cells, err := uc.aggregates.Query(ctx, analytics.QueryFilter{
		From:     &from,
		To:       &to,
		MinCount: uc.kThreshold,
	})
	if err != nil {
		uc.logger.Errorw("failed to query dashboard overview", "error", err)
		return nil, apperrors.NewInternalError("failed to query dashboard overview")
	}

	result := &OverviewResult{
		EventTypes: make(map[string]int64),
		Days:       days,
		Window:     windowOf(from, to),
	}

	geoCells := make(map[string]struct{})
	for _, cell := range cells {
		result.TotalEvents += cell.Count()
		result.EventTypes[cell.Key().EventType.String()] += cell.Count()
		geoCells[cell.Key().GeoCell] = struct{}{}
	}
	result.UniqueGeoCells = len(geoCells)

	return result, nil
}
