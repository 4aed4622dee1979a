package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

func TestGetHeatmapUseCase_ComputesDensity(t *testing.T) {
	earlier := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	later := earlier.Add(15 * time.Minute)
	aggregates := &mockAggregateRepository{
		QueryFunc: func(ctx context.Context, filter analytics.QueryFilter) ([]*analytics.Aggregate, error) {
			return []*analytics.Aggregate{
				aggregateCell(t, analytics.EventTriageCompleted, "phc", earlier, "pincode_560xxx", "19-35", "female", 6),
				aggregateCell(t, analytics.EventTriageCompleted, "phc", later, "pincode_560xxx", "36-60", "male", 9),
				aggregateCell(t, analytics.EventTriageCompleted, "phc", earlier, "pincode_110xxx", "19-35", "female", 5),
			}, nil
		},
	}
	uc := NewGetHeatmapUseCase(aggregates, 5, logger.NewLogger())

	result, err := uc.Execute(context.Background(), HeatmapQuery{})

	require.NoError(t, err)
	require.Len(t, result.Cells, 2)
	assert.Equal(t, 30, result.Days)
	assert.Equal(t, int64(5), result.PrivacyThreshold)

	// Fifteen events across two active buckets.
	assert.Equal(t, "pincode_560xxx", result.Cells[0].GeoCell)
	assert.Equal(t, int64(15), result.Cells[0].Count)
	assert.InDelta(t, 7.5, result.Cells[0].Density, 0.001)

	assert.Equal(t, "pincode_110xxx", result.Cells[1].GeoCell)
	assert.Equal(t, int64(5), result.Cells[1].Count)
	assert.InDelta(t, 5.0, result.Cells[1].Density, 0.001)
}

func TestGetHeatmapUseCase_AppliesFilters(t *testing.T) {
	aggregates := &mockAggregateRepository{}
	uc := NewGetHeatmapUseCase(aggregates, 5, logger.NewLogger())

	result, err := uc.Execute(context.Background(), HeatmapQuery{
		EventType: "triage_emergency",
		Category:  "emergency",
		Days:      7,
	})

	require.NoError(t, err)
	assert.Equal(t, 7, result.Days)
	require.Len(t, aggregates.Filters, 1)
	filter := aggregates.Filters[0]
	require.NotNil(t, filter.EventType)
	assert.Equal(t, analytics.EventTriageEmergency, *filter.EventType)
	require.NotNil(t, filter.Category)
	assert.Equal(t, "emergency", *filter.Category)
	require.NotNil(t, filter.From)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -7), *filter.From, 2*time.Second)
	assert.Nil(t, filter.To)
}

func TestGetHeatmapUseCase_RejectsBadInputs(t *testing.T) {
	tests := []struct {
		name  string
		query HeatmapQuery
	}{
		{"unknown event type", HeatmapQuery{EventType: "login_succeeded"}},
		{"negative days", HeatmapQuery{Days: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aggregates := &mockAggregateRepository{}
			uc := NewGetHeatmapUseCase(aggregates, 5, logger.NewLogger())

			_, err := uc.Execute(context.Background(), tt.query)

			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
			assert.Empty(t, aggregates.Filters)
		})
	}
}

func TestGetHeatmapUseCase_RepositoryFailure(t *testing.T) {
	aggregates := &mockAggregateRepository{
		QueryFunc: func(ctx context.Context, filter analytics.QueryFilter) ([]*analytics.Aggregate, error) {
			return nil, errors.New("connection reset")
		},
	}
	uc := NewGetHeatmapUseCase(aggregates, 5, logger.NewLogger())

	_, err := uc.Execute(context.Background(), HeatmapQuery{})

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
}
