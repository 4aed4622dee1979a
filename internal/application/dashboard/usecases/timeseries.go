package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

const defaultTimeSeriesSpan = 7 * 24 * time.Hour

// TimeSeriesQuery narrows the trend read. From and To are RFC3339; empty
// bounds default to the trailing week.
type TimeSeriesQuery struct {
	EventType string
	Category  string
	From      string
	To        string
}

// TimeSeriesPoint is one plotted point. Points sit on the 15-minute cell
// grid, the finest resolution the aggregates store.
type TimeSeriesPoint struct {
	Time           string `json:"time"`
	EventType      string `json:"event_type"`
	Category       string `json:"category"`
	Count          int64  `json:"count"`
	UniqueGeoCells int    `json:"unique_geo_cells"`
}

type TimeSeriesResult struct {
	Points []TimeSeriesPoint `json:"points"`
	Window Window            `json:"window"`
}

// GetTimeSeriesUseCase reads event counts over time for trend charts.
type GetTimeSeriesUseCase struct {
	aggregates analytics.AggregateRepository
	kThreshold int64
	logger     logger.Interface
}

func NewGetTimeSeriesUseCase(
	aggregates analytics.AggregateRepository,
	kThreshold int64,
	logger logger.Interface,
) *GetTimeSeriesUseCase {
	if kThreshold <= 0 {
		kThreshold = analytics.DefaultKThreshold
	}
	return &GetTimeSeriesUseCase{
		aggregates: aggregates,
		kThreshold: kThreshold,
		logger:     logger,
	}
}

func (uc *GetTimeSeriesUseCase) Execute(ctx context.Context, query TimeSeriesQuery) (*TimeSeriesResult, error) {
	uc.logger.Infow("executing get dashboard time series use case",
		"event_type", query.EventType,
		"category", query.Category)

	eventType, err := eventTypeFilter(query.EventType)
	if err != nil {
		return nil, err
	}
	from, to, err := resolveWindow(query.From, query.To, defaultTimeSeriesSpan)
	if err != nil {
		return nil, err
	}

	cells, err := uc.aggregates.Query(ctx, analytics.QueryFilter{
		EventType: eventType,
		Category:  optionalString(query.Category),
		From:      &from,
		To:        &to,
		MinCount:  uc.kThreshold,
	})
	if err != nil {
		uc.logger.Errorw("failed to query dashboard time series", "error", err)
		return nil, apperrors.NewInternalError("failed to query dashboard time series")
	}

	type pointKey struct {
		at        time.Time
		eventType string
		category  string
	}
	type point struct {
		count    int64
		geoCells map[string]struct{}
	}

	points := map[pointKey]*point{}
	for _, cell := range cells {
		key := pointKey{
			at:        cell.Key().EventTime,
			eventType: cell.Key().EventType.String(),
			category:  cell.Key().Category,
		}
		p, ok := points[key]
		if !ok {
			p = &point{geoCells: map[string]struct{}{}}
			points[key] = p
		}
		p.count += cell.Count()
		p.geoCells[cell.Key().GeoCell] = struct{}{}
	}

	result := &TimeSeriesResult{
		Points: make([]TimeSeriesPoint, 0, len(points)),
		Window: windowOf(from, to),
	}
	for key, p := range points {
		result.Points = append(result.Points, TimeSeriesPoint{
			Time:           key.at.UTC().Format(time.RFC3339),
			EventType:      key.eventType,
			Category:       key.category,
			Count:          p.count,
			UniqueGeoCells: len(p.geoCells),
		})
	}
	sort.Slice(result.Points, func(i, j int) bool {
		if result.Points[i].Time != result.Points[j].Time {
			return result.Points[i].Time < result.Points[j].Time
		}
		if result.Points[i].EventType != result.Points[j].EventType {
			return result.Points[i].EventType < result.Points[j].EventType
		}
		return result.Points[i].Category < result.Points[j].Category
	})

	return result, nil
}
