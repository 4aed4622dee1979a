package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// GetSummaryQuery narrows the officer summary. From and To are RFC3339;
// empty strings leave the range open. Route-level checks restrict this to
// officers.
type GetSummaryQuery struct {
	EventType string
	From      string
	To        string
}

// SummaryRow aggregates one (event type, category) pair across the cells
// that cleared the k-anonymity floor. Cell dimensions are reported as
// distinct counts, never as values.
type SummaryRow struct {
	EventType        string `json:"event_type"`
	Category         string `json:"category"`
	Count            int64  `json:"count"`
	UniqueGeoCells   int    `json:"unique_geo_cells"`
	UniqueAgeBuckets int    `json:"unique_age_buckets"`
}

type SummaryResult struct {
	Rows             []SummaryRow `json:"rows"`
	TotalEvents      int64        `json:"total_events"`
	PrivacyThreshold int64        `json:"privacy_threshold"`
}

// GetSummaryUseCase reads the aggregated counters. The k-floor is applied
// per cell in the repository query, so every group sum here is built only
// from cells that individually cleared it.
type GetSummaryUseCase struct {
	aggregates analytics.AggregateRepository
	kThreshold int64
	logger     logger.Interface
}

func NewGetSummaryUseCase(
	aggregates analytics.AggregateRepository,
	kThreshold int64,
	logger logger.Interface,
) *GetSummaryUseCase {
	if kThreshold <= 0 {
		kThreshold = analytics.DefaultKThreshold
	}
	return &GetSummaryUseCase{
		aggregates: aggregates,
		kThreshold: kThreshold,
		logger:     logger,
	}
}

func (uc *GetSummaryUseCase) Execute(ctx context.Context, query GetSummaryQuery) (*SummaryResult, error) {
	uc.logger.Infow("executing get analytics summary use case", "event_type", query.EventType)

	filter := analytics.QueryFilter{MinCount: uc.kThreshold}

	if query.EventType != "" {
		eventType := analytics.EventType(query.EventType)
		if !eventType.IsValid() {
			return nil, apperrors.NewValidationError("unknown event type: " + query.EventType)
		}
		filter.EventType = &eventType
	}
	if query.From != "" {
		from, err := time.Parse(time.RFC3339, query.From)
		if err != nil {
			return nil, apperrors.NewValidationError("from must be RFC3339")
		}
		filter.From = &from
	}
	if query.To != "" {
		to, err := time.Parse(time.RFC3339, query.To)
		if err != nil {
			return nil, apperrors.NewValidationError("to must be RFC3339")
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, apperrors.NewValidationError("to must not precede from")
	}

	cells, err := uc.aggregates.Query(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to query analytics aggregates", "error", err)
		return nil, apperrors.NewInternalError("failed to query analytics summary")
	}

	type groupKey struct {
		eventType string
		category  string
	}
	type group struct {
		count      int64
		geoCells   map[string]struct{}
		ageBuckets map[string]struct{}
	}

	groups := map[groupKey]*group{}
	for _, cell := range cells {
		key := groupKey{
			eventType: cell.Key().EventType.String(),
			category:  cell.Key().Category,
		}
		g, ok := groups[key]
		if !ok {
			g = &group{
				geoCells:   map[string]struct{}{},
				ageBuckets: map[string]struct{}{},
			}
			groups[key] = g
		}
		g.count += cell.Count()
		g.geoCells[cell.Key().GeoCell] = struct{}{}
		g.ageBuckets[cell.Key().AgeBucket] = struct{}{}
	}

	result := &SummaryResult{
		Rows:             make([]SummaryRow, 0, len(groups)),
		PrivacyThreshold: uc.kThreshold,
	}
	for key, g := range groups {
		result.Rows = append(result.Rows, SummaryRow{
			EventType:        key.eventType,
			Category:         key.category,
			Count:            g.count,
			UniqueGeoCells:   len(g.geoCells),
			UniqueAgeBuckets: len(g.ageBuckets),
		})
		result.TotalEvents += g.count
	}
	sort.Slice(result.Rows, func(i, j int) bool {
		if result.Rows[i].Count != result.Rows[j].Count {
			return result.Rows[i].Count > result.Rows[j].Count
		}
		if result.Rows[i].EventType != result.Rows[j].EventType {
			return result.Rows[i].EventType < result.Rows[j].EventType
		}
		return result.Rows[i].Category < result.Rows[j].Category
	})

	return result, nil
}
