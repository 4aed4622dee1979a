package usecases

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

const defaultBreakdownSpan = 30 * 24 * time.Hour

// CategoryBreakdownQuery narrows the category distribution read. From and
// To are RFC3339; empty bounds default to the trailing thirty days.
type CategoryBreakdownQuery struct {
	EventType string
	From      string
	To        string
}

// CategorySlice is one wedge of the category distribution.
type CategorySlice struct {
	Category   string  `json:"category"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type CategoryBreakdownResult struct {
	Slices      []CategorySlice `json:"slices"`
	TotalEvents int64           `json:"total_events"`
	Window      Window          `json:"window"`
}

// GetCategoryBreakdownUseCase reads the per-category distribution for
// pie and bar charts. Percentages are computed over the cells that
// cleared the k-floor, so they always sum to one hundred.
type GetCategoryBreakdownUseCase struct {
	aggregates analytics.AggregateRepository
	kThreshold int64
	logger     logger.Interface
}

func NewGetCategoryBreakdownUseCase(
	aggregates analytics.AggregateRepository,
	kThreshold int64,
	logger logger.Interface,
) *GetCategoryBreakdownUseCase {
	if kThreshold <= 0 {
		kThreshold = analytics.DefaultKThreshold
	}
	return &GetCategoryBreakdownUseCase{
		aggregates: aggregates,
		kThreshold: kThreshold,
		logger:     logger,
	}
}

func (uc *GetCategoryBreakdownUseCase) Execute(ctx context.Context, query CategoryBreakdownQuery) (*CategoryBreakdownResult, error) {
	uc.logger.Infow("executing get dashboard category breakdown use case", "event_type", query.EventType)

	eventType, err := eventTypeFilter(query.EventType)
	if err != nil {
		return nil, err
	}
	from, to, err := resolveWindow(query.From, query.To, defaultBreakdownSpan)
	if err != nil {
		return nil, err
	}

	cells, err := uc.aggregates.Query(ctx, analytics.QueryFilter{
		EventType: eventType,
		From:      &from,
		To:        &to,
		MinCount:  uc.kThreshold,
	})
	if err != nil {
		uc.logger.Errorw("failed to query dashboard category breakdown", "error", err)
		return nil, apperrors.NewInternalError("failed to query dashboard category breakdown")
	}

	counts := map[string]int64{}
	var total int64
	for _, cell := range cells {
		counts[cell.Key().Category] += cell.Count()
		total += cell.Count()
	}

	result := &CategoryBreakdownResult{
		Slices:      make([]CategorySlice, 0, len(counts)),
		TotalEvents: total,
		Window:      windowOf(from, to),
	}
	for category, count := range counts {
		result.Slices = append(result.Slices, CategorySlice{
			Category:   category,
			Count:      count,
			Percentage: percentage(count, total),
		})
	}
	sort.Slice(result.Slices, func(i, j int) bool {
		if result.Slices[i].Count != result.Slices[j].Count {
			return result.Slices[i].Count > result.Slices[j].Count
		}
		return result.Slices[i].Category < result.Slices[j].Category
	})

	return result, nil
}

// percentage renders a share rounded to two decimal places.
func percentage(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*10000) / 100
}
