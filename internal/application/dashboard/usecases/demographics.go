package usecases

import (
	"context"
	"sort"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// DemographicsQuery narrows the demographic distribution read. From and
// To are RFC3339; empty bounds default to the trailing thirty days.
type DemographicsQuery struct {
	EventType string
	Category  string
	From      string
	To        string
}

// DemographicSlice is one wedge of a demographic distribution. Value is
// an age band or a gender bucket, never a raw attribute.
type DemographicSlice struct {
	Value      string  `json:"value"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type DemographicsResult struct {
	AgeBuckets []DemographicSlice `json:"age_buckets"`
	Genders    []DemographicSlice `json:"genders"`
	Window     Window             `json:"window"`
}

// GetDemographicsUseCase reads the age-band and gender distributions.
// Both distributions fold the same k-filtered cells, just along
// different dimensions.
type GetDemographicsUseCase struct {
	aggregates analytics.AggregateRepository
	kThreshold int64
	logger     logger.Interface
}

func NewGetDemographicsUseCase(
	aggregates analytics.AggregateRepository,
	kThreshold int64,
	logger logger.Interface,
) *GetDemographicsUseCase {
	if kThreshold <= 0 {
		kThreshold = analytics.DefaultKThreshold
	}
	return &GetDemographicsUseCase{
		aggregates: aggregates,
		kThreshold: kThreshold,
		logger:     logger,
	}
}

func (uc *GetDemographicsUseCase) Execute(ctx context.Context, query DemographicsQuery) (*DemographicsResult, error) {
	uc.logger.Infow("executing get dashboard demographics use case",
		"event_type", query.EventType,
		"category", query.Category)

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
		Category:  optionalString(query.Category),
		From:      &from,
		To:        &to,
		MinCount:  uc.kThreshold,
	})
	if err != nil {
		uc.logger.Errorw("failed to query dashboard demographics", "error", err)
		return nil, apperrors.NewInternalError("failed to query dashboard demographics")
	}

	ages := map[string]int64{}
	genders := map[string]int64{}
	for _, cell := range cells {
		ages[cell.Key().AgeBucket] += cell.Count()
		genders[cell.Key().Gender] += cell.Count()
	}

	return &DemographicsResult{
		AgeBuckets: demographicSlices(ages),
		Genders:    demographicSlices(genders),
		Window:     windowOf(from, to),
	}, nil
}

func demographicSlices(counts map[string]int64) []DemographicSlice {
	var total int64
	for _, count := range counts {
		total += count
	}

	slices := make([]DemographicSlice, 0, len(counts))
	for value, count := range counts {
		slices = append(slices, DemographicSlice{
			Value:      value,
			Count:      count,
			Percentage: percentage(count, total),
		})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Count != slices[j].Count {
			return slices[i].Count > slices[j].Count
		}
		return slices[i].Value < slices[j].Value
	})

	return slices
}
