package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/dashboard"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

func TestListSymptomHeatmapUseCase_DefaultsWindow(t *testing.T) {
	views := &mockViewRepository{
		SymptomHeatmapFunc: func(ctx context.Context, filter dashboard.HeatmapFilter) ([]dashboard.SymptomHeatmapRow, error) {
			return []dashboard.SymptomHeatmapRow{
				{GeoCell: "pincode_560xxx", SymptomCategory: "phc", EventType: "triage_completed", Date: "2025-08-20", EventCount: 14},
			}, nil
		},
	}
	uc := NewListSymptomHeatmapUseCase(views, logger.NewLogger())

	result, err := uc.Execute(context.Background(), SymptomHeatmapQuery{})

	require.NoError(t, err)
	assert.Equal(t, 30, result.Days)
	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, int64(14), result.Rows[0].EventCount)

	require.Len(t, views.HeatmapFilters, 1)
	assert.Equal(t, 30, views.HeatmapFilters[0].Days)
}

func TestListSymptomHeatmapUseCase_CustomWindow(t *testing.T) {
	views := &mockViewRepository{}
	uc := NewListSymptomHeatmapUseCase(views, logger.NewLogger())

	result, err := uc.Execute(context.Background(), SymptomHeatmapQuery{Days: 7})

	require.NoError(t, err)
	assert.Equal(t, 7, result.Days)
	assert.NotNil(t, result.Rows)
	require.Len(t, views.HeatmapFilters, 1)
	assert.Equal(t, 7, views.HeatmapFilters[0].Days)
}

func TestListSymptomHeatmapUseCase_NegativeDaysRejected(t *testing.T) {
	views := &mockViewRepository{}
	uc := NewListSymptomHeatmapUseCase(views, logger.NewLogger())

	_, err := uc.Execute(context.Background(), SymptomHeatmapQuery{Days: -1})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, views.HeatmapFilters)
}

func TestListSymptomHeatmapUseCase_RepositoryFailure(t *testing.T) {
	views := &mockViewRepository{
		SymptomHeatmapFunc: func(ctx context.Context, filter dashboard.HeatmapFilter) ([]dashboard.SymptomHeatmapRow, error) {
			return nil, errors.New("no such table: mv_symptom_heatmap")
		},
	}
	uc := NewListSymptomHeatmapUseCase(views, logger.NewLogger())

	_, err := uc.Execute(context.Background(), SymptomHeatmapQuery{})

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
}
