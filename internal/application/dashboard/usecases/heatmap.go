package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

const defaultHeatmapDays = 30

// HeatmapQuery narrows the geo heatmap read to a trailing window of whole
// days. Zero days means the default window.
type HeatmapQuery struct {
	EventType string
	Category  string
	Days      int
}

// HeatmapCell is one map cell. Density is the mean count per active
// 15-minute bucket, a crude intensity signal for map shading.
type HeatmapCell struct {
	GeoCell   string  `json:"geo_cell"`
	EventType string  `json:"event_type"`
	Category  string  `json:"category"`
	Count     int64   `json:"count"`
	Density   float64 `json:"density"`
}

type HeatmapResult struct {
	Cells            []HeatmapCell `json:"cells"`
	Days             int           `json:"days"`
	PrivacyThreshold int64         `json:"privacy_threshold"`
}

// GetHeatmapUseCase reads per-region event counts for map rendering. The
// k-floor comes from configuration and is never a request parameter.
type GetHeatmapUseCase struct {
	aggregates analytics.AggregateRepository
	kThreshold int64
	logger     logger.Interface
}

func NewGetHeatmapUseCase(
	aggregates analytics.AggregateRepository,
	kThreshold int64,
	logger logger.Interface,
) *GetHeatmapUseCase {
	if kThreshold <= 0 {
		kThreshold = analytics.DefaultKThreshold
	}
	return &GetHeatmapUseCase{
		aggregates: aggregates,
		kThreshold: kThreshold,
		logger:     logger,
	}
}

func (uc *GetHeatmapUseCase) Execute(ctx context.Context, query HeatmapQuery) (*HeatmapResult, error) {
	uc.logger.Infow("executing get dashboard heatmap use case",
		"event_type", query.EventType,
		"days", query.Days)

	eventType, err := eventTypeFilter(query.EventType)
	if err != nil {
		return nil, err
	}
	days := query.Days
	if days < 0 {
		return nil, apperrors.NewValidationError("days must not be negative")
	}
	if days == 0 {
		days = defaultHeatmapDays
	}
	from := time.Now().AddDate(0, 0, -days)

	cells, err := uc.aggregates.Query(ctx, analytics.QueryFilter{
		EventType: eventType,
		Category:  optionalString(query.Category),
		From:      &from,
		MinCount:  uc.kThreshold,
	})
	if err != nil {
		uc.logger.Errorw("failed to query dashboard heatmap", "error", err)
		return nil, apperrors.NewInternalError("failed to query dashboard heatmap")
	}

	type cellKey struct {
		geoCell   string
		eventType string
		category  string
	}
	type mapCell struct {
		count       int64
		timeBuckets map[time.Time]struct{}
	}

	grouped := map[cellKey]*mapCell{}
	for _, cell := range cells {
		key := cellKey{
			geoCell:   cell.Key().GeoCell,
			eventType: cell.Key().EventType.String(),
			category:  cell.Key().Category,
		}
		g, ok := grouped[key]
		if !ok {
			g = &mapCell{timeBuckets: map[time.Time]struct{}{}}
			grouped[key] = g
		}
		g.count += cell.Count()
		g.timeBuckets[cell.Key().EventTime] = struct{}{}
	}

	result := &HeatmapResult{
		Cells:            make([]HeatmapCell, 0, len(grouped)),
		Days:             days,
		PrivacyThreshold: uc.kThreshold,
	}
	for key, g := range grouped {
		result.Cells = append(result.Cells, HeatmapCell{
			GeoCell:   key.geoCell,
			EventType: key.eventType,
			Category:  key.category,
			Count:     g.count,
			Density:   float64(g.count) / float64(len(g.timeBuckets)),
		})
	}
	sort.Slice(result.Cells, func(i, j int) bool {
		if result.Cells[i].Count != result.Cells[j].Count {
			return result.Cells[i].Count > result.Cells[j].Count
		}
		if result.Cells[i].GeoCell != result.Cells[j].GeoCell {
			return result.Cells[i].GeoCell < result.Cells[j].GeoCell
		}
		if result.Cells[i].EventType != result.Cells[j].EventType {
			return result.Cells[i].EventType < result.Cells[j].EventType
		}
		return result.Cells[i].Category < result.Cells[j].Category
	})

	return result, nil
}
