package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

const (
	defaultTopRegionsDays  = 30
	defaultTopRegionsLimit = 10
	maxTopRegionsLimit     = 100
)

// TopRegionsQuery narrows the region ranking. Zero Days or Limit mean
// the defaults; Limit is capped.
type TopRegionsQuery struct {
	EventType string
	Category  string
	Days      int
	Limit     int
}

// RegionRank is one row of the ranking table.
type RegionRank struct {
	Rank    int    `json:"rank"`
	GeoCell string `json:"geo_cell"`
	Count   int64  `json:"count"`
}

type TopRegionsResult struct {
	Regions []RegionRank `json:"regions"`
	Days    int          `json:"days"`
	Limit   int          `json:"limit"`
}

// GetTopRegionsUseCase ranks regions by event volume for allocation
// tables.
type GetTopRegionsUseCase struct {
	aggregates analytics.AggregateRepository
	kThreshold int64
	logger     logger.Interface
}

func NewGetTopRegionsUseCase(
	aggregates analytics.AggregateRepository,
	kThreshold int64,
	logger logger.Interface,
) *GetTopRegionsUseCase {
	if kThreshold <= 0 {
		kThreshold = analytics.DefaultKThreshold
	}
	return &GetTopRegionsUseCase{
		aggregates: aggregates,
		kThreshold: kThreshold,
		logger:     logger,
	}
}

func (uc *GetTopRegionsUseCase) Execute(ctx context.Context, query TopRegionsQuery) (*TopRegionsResult, error) {
	uc.logger.Infow("executing get dashboard top regions use case",
		"event_type", query.EventType,
		"limit", query.Limit)

	eventType, err := eventTypeFilter(query.EventType)
	if err != nil {
		return nil, err
	}
	days := query.Days
	if days < 0 {
		return nil, apperrors.NewValidationError("days must not be negative")
	}
	if days == 0 {
		days = defaultTopRegionsDays
	}
	limit := query.Limit
	if limit < 0 {
		return nil, apperrors.NewValidationError("limit must not be negative")
	}
	if limit == 0 {
		limit = defaultTopRegionsLimit
	}
	if limit > maxTopRegionsLimit {
		limit = maxTopRegionsLimit
	}
	from := time.Now().AddDate(0, 0, -days)

	cells, err := uc.aggregates.Query(ctx, analytics.QueryFilter{
		EventType: eventType,
		Category:  optionalString(query.Category),
		From:      &from,
		MinCount:  uc.kThreshold,
	})
	if err != nil {
		uc.logger.Errorw("failed to query dashboard top regions", "error", err)
		return nil, apperrors.NewInternalError("failed to query dashboard top regions")
	}

	counts := map[string]int64{}
	for _, cell := range cells {
		counts[cell.Key().GeoCell] += cell.Count()
	}

	ranked := make([]RegionRank, 0, len(counts))
	for geoCell, count := range counts {
		ranked = append(ranked, RegionRank{GeoCell: geoCell, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].GeoCell < ranked[j].GeoCell
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return &TopRegionsResult{
		Regions: ranked,
		Days:    days,
		Limit:   limit,
	}, nil
}
