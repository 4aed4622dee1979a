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

// aggregateCell builds one stored counter cell for query mocks.
func aggregateCell(
	t *testing.T,
	eventType analytics.EventType,
	category string,
	at time.Time,
	geoCell, ageBucket, gender string,
	count int64,
) *analytics.Aggregate {
	t.Helper()

	cell, err := analytics.NewAggregate(analytics.Key{
		EventType: eventType,
		Category:  category,
		EventTime: at,
		GeoCell:   geoCell,
		AgeBucket: ageBucket,
		Gender:    gender,
	}, count)
	require.NoError(t, err)
	return cell
}

func TestGetOverviewUseCase_SumsWindowCells(t *testing.T) {
	at := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	aggregates := &mockAggregateRepository{
		QueryFunc: func(ctx context.Context, filter analytics.QueryFilter) ([]*analytics.Aggregate, error) {
			return []*analytics.Aggregate{
				aggregateCell(t, analytics.EventTriageCompleted, "phc", at, "pincode_560xxx", "19-35", "female", 6),
				aggregateCell(t, analytics.EventTriageCompleted, "self_care", at, "pincode_560xxx", "36-60", "male", 9),
				aggregateCell(t, analytics.EventComplaintSubmitted, "service_quality", at, "pincode_110xxx", "19-35", "female", 7),
			}, nil
		},
	}
	uc := NewGetOverviewUseCase(aggregates, 0, logger.NewLogger())

	result, err := uc.Execute(context.Background(), OverviewQuery{})

	require.NoError(t, err)
	assert.Equal(t, int64(22), result.TotalEvents)
	assert.Equal(t, 2, result.UniqueGeoCells)
	assert.Equal(t, int64(15), result.EventTypes["triage_completed"])
	assert.Equal(t, int64(7), result.EventTypes["complaint_submitted"])
	assert.Equal(t, 30, result.Days)

	_, err = time.Parse(time.RFC3339, result.Window.From)
	require.NoError(t, err)
	_, err = time.Parse(time.RFC3339, result.Window.To)
	require.NoError(t, err)

	// A zero threshold falls back to the default k floor.
	require.Len(t, aggregates.Filters, 1)
	filter := aggregates.Filters[0]
	assert.Equal(t, int64(5), filter.MinCount)
	require.NotNil(t, filter.From)
	require.NotNil(t, filter.To)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), *filter.From, 2*time.Second)
}

func TestGetOverviewUseCase_CustomWindow(t *testing.T) {
	aggregates := &mockAggregateRepository{}
	uc := NewGetOverviewUseCase(aggregates, 7, logger.NewLogger())

	result, err := uc.Execute(context.Background(), OverviewQuery{Days: 7})

	require.NoError(t, err)
	assert.Equal(t, 7, result.Days)
	assert.Equal(t, int64(0), result.TotalEvents)
	assert.Equal(t, 0, result.UniqueGeoCells)
	assert.Empty(t, result.EventTypes)

	require.Len(t, aggregates.Filters, 1)
	assert.Equal(t, int64(7), aggregates.Filters[0].MinCount)
	require.NotNil(t, aggregates.Filters[0].From)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -7), *aggregates.Filters[0].From, 2*time.Second)
}

func TestGetOverviewUseCase_NegativeDaysRejected(t *testing.T) {
	aggregates := &mockAggregateRepository{}
	uc := NewGetOverviewUseCase(aggregates, 5, logger.NewLogger())

	_, err := uc.Execute(context.Background(), OverviewQuery{Days: -1})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, aggregates.Filters)
}

func TestGetOverviewUseCase_RepositoryFailure(t *testing.T) {
	aggregates := &mockAggregateRepository{
		QueryFunc: func(ctx context.Context, filter analytics.QueryFilter) ([]*analytics.Aggregate, error) {
			return nil, errors.New("connection reset")
		},
	}
	uc := NewGetOverviewUseCase(aggregates, 5, logger.NewLogger())

	_, err := uc.Execute(context.Background(), OverviewQuery{})

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
}
