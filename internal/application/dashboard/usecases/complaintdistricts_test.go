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

func TestListComplaintsByDistrictUseCase_PassesFilters(t *testing.T) {
	views := &mockViewRepository{
		ComplaintsByDistrictFunc: func(ctx context.Context, filter dashboard.ComplaintDistrictFilter) ([]dashboard.ComplaintDistrictRow, error) {
			return []dashboard.ComplaintDistrictRow{
				{GeoCell: "pincode_560xxx", Category: "service_quality", EventType: "complaint_submitted", Date: "2025-08-20", TotalComplaints: 9},
			}, nil
		},
	}
	uc := NewListComplaintsByDistrictUseCase(views, logger.NewLogger())

	result, err := uc.Execute(context.Background(), ComplaintsByDistrictQuery{
		GeoCell:  "pincode_560xxx",
		Category: "service_quality",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, int64(9), result.Rows[0].TotalComplaints)

	require.Len(t, views.DistrictFilters, 1)
	filter := views.DistrictFilters[0]
	require.NotNil(t, filter.GeoCell)
	assert.Equal(t, "pincode_560xxx", *filter.GeoCell)
	require.NotNil(t, filter.Category)
	assert.Equal(t, "service_quality", *filter.Category)
}

func TestListComplaintsByDistrictUseCase_EmptyFiltersStayUnset(t *testing.T) {
	views := &mockViewRepository{}
	uc := NewListComplaintsByDistrictUseCase(views, logger.NewLogger())

	result, err := uc.Execute(context.Background(), ComplaintsByDistrictQuery{})

	require.NoError(t, err)
	assert.NotNil(t, result.Rows)
	assert.Equal(t, 0, result.Count)

	require.Len(t, views.DistrictFilters, 1)
	assert.Nil(t, views.DistrictFilters[0].GeoCell)
	assert.Nil(t, views.DistrictFilters[0].Category)
}

func TestListComplaintsByDistrictUseCase_RepositoryFailure(t *testing.T) {
	views := &mockViewRepository{
		ComplaintsByDistrictFunc: func(ctx context.Context, filter dashboard.ComplaintDistrictFilter) ([]dashboard.ComplaintDistrictRow, error) {
			return nil, errors.New("no such table: mv_complaint_categories_district")
		},
	}
	uc := NewListComplaintsByDistrictUseCase(views, logger.NewLogger())

	_, err := uc.Execute(context.Background(), ComplaintsByDistrictQuery{})

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
}
