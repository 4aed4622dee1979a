package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/neuroscreen"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

func newSubmitScreeningUC(results *mockResultRepository, auditor *mockAuditor) *SubmitScreeningUseCase {
	return NewSubmitScreeningUseCase(results, &mockTxManager{}, auditor, logger.NewLogger())
}

func TestSubmitScreeningUseCase_Bands(t *testing.T) {
	tests := []struct {
		name      string
		responses map[string]int
		wantScore int
		wantBand  string
	}{
		{
			name:      "low band at threshold",
			responses: map[string]int{"q1": 1, "q2": 1},
			wantScore: 3,
			wantBand:  "low",
		},
		{
			name:      "medium band",
			responses: map[string]int{"q4": 1, "q5": 1},
			wantScore: 5,
			wantBand:  "medium",
		},
		{
			name:      "high band",
			responses: map[string]int{"q4": 2, "q5": 1},
			wantScore: 8,
			wantBand:  "high",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := &mockResultRepository{}
			uc := newSubmitScreeningUC(results, &mockAuditor{})

			res, err := uc.Execute(context.Background(), SubmitScreeningCommand{
				CallerID:  7,
				CallerSID: "user_caller",
				Responses: tt.responses,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantScore, res.RawScore)
			assert.Equal(t, tt.wantBand, res.Band)
			assert.Contains(t, res.GuidanceText, "This is a screening, not a diagnosis.")
			assert.Contains(t, res.ResultSID, "nsr_")
			require.Len(t, results.Created, 1)
		})
	}
}

func TestSubmitScreeningUseCase_Validation(t *testing.T) {
	uc := newSubmitScreeningUC(&mockResultRepository{}, &mockAuditor{})

	t.Run("anonymous caller", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), SubmitScreeningCommand{
			Responses: map[string]int{"q1": 1},
		})
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
	})

	t.Run("missing responses", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), SubmitScreeningCommand{
			CallerID: 7, CallerSID: "user_caller",
		})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("negative answer", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), SubmitScreeningCommand{
			CallerID: 7, CallerSID: "user_caller",
			Responses: map[string]int{"q1": -2},
		})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("oversized questionnaire", func(t *testing.T) {
		responses := make(map[string]int, maxScreeningResponses+1)
		for i := 0; i <= maxScreeningResponses; i++ {
			responses[fmt.Sprintf("q%d", i)] = 1
		}
		_, err := uc.Execute(context.Background(), SubmitScreeningCommand{
			CallerID: 7, CallerSID: "user_caller",
			Responses: responses,
		})
		assert.True(t, apperrors.IsValidationError(err))
	})
}

func TestSubmitScreeningUseCase_Audit(t *testing.T) {
	auditor := &mockAuditor{}
	uc := newSubmitScreeningUC(&mockResultRepository{}, auditor)

	res, err := uc.Execute(context.Background(), SubmitScreeningCommand{
		CallerID:  7,
		CallerSID: "user_caller",
		Responses: map[string]int{"q4": 2, "q5": 1},
		IP:        "10.0.0.1",
	})
	require.NoError(t, err)

	require.Len(t, auditor.Records, 1)
	rec := auditor.Records[0]
	assert.Equal(t, "neuroscreen.result.create", rec.Action)
	assert.Equal(t, "neuroscreen_result", rec.EntityType)
	assert.Equal(t, res.ResultSID, rec.EntityID)
	assert.Equal(t, "user_caller", rec.ActorID)
	assert.Equal(t, "high", rec.Payload["band"])
	assert.Equal(t, 8, rec.Payload["raw_score"])
}

func TestSubmitScreeningUseCase_RepositoryFailure(t *testing.T) {
	results := &mockResultRepository{
		CreateFunc: func(ctx context.Context, result *neuroscreen.Result) error {
			return errors.New("db down")
		},
	}
	uc := newSubmitScreeningUC(results, &mockAuditor{})

	_, err := uc.Execute(context.Background(), SubmitScreeningCommand{
		CallerID: 7, CallerSID: "user_caller",
		Responses: map[string]int{"q1": 1},
	})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
}
