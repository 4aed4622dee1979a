package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/services/sanitize"
)

func newCreateModuleUC(modules *mockModuleRepository, auditor *mockAuditor) *CreateModuleUseCase {
	return NewCreateModuleUseCase(modules, sanitize.NewService(), &mockTxManager{}, auditor, logger.NewLogger())
}

func TestCreateModuleUseCase(t *testing.T) {
	modules := &mockModuleRepository{}
	auditor := &mockAuditor{}
	uc := newCreateModuleUC(modules, auditor)

	minAge := 6
	view, err := uc.Execute(context.Background(), CreateModuleCommand{
		CallerID:    5,
		CallerSID:   "user_clinician",
		Title:       "Speech Basics",
		Description: "Early speech exercises",
		ModuleType:  "speech",
		AgeRangeMin: &minAge,
		Steps: []StepInput{
			{Number: 2, Title: "Repeat sounds", DurationMinutes: 10},
			{Number: 1, Title: "Warm up", DurationMinutes: 5},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, view.ModuleSID, "thm_")
	assert.Equal(t, "Speech Basics", view.Title)
	assert.Equal(t, "speech", view.ModuleType)
	require.Len(t, view.Steps, 2)
	assert.Equal(t, 1, view.Steps[0].Number, "steps come back in step-number order")
	assert.NotNil(t, view.Steps[0].MediaReferences, "media references are never null in responses")
	require.Len(t, modules.Created, 1)

	require.Len(t, auditor.Records, 1)
	rec := auditor.Records[0]
	assert.Equal(t, "therapy.module.create", rec.Action)
	assert.Equal(t, "therapy_module", rec.EntityType)
	assert.Equal(t, view.ModuleSID, rec.EntityID)
	assert.Equal(t, "speech", rec.Payload["module_type"])
	assert.Equal(t, 2, rec.Payload["step_count"])
}

func TestCreateModuleUseCase_SanitizesAuthoredText(t *testing.T) {
	modules := &mockModuleRepository{}
	uc := newCreateModuleUC(modules, &mockAuditor{})

	view, err := uc.Execute(context.Background(), CreateModuleCommand{
		CallerID:   5,
		CallerSID:  "user_clinician",
		Title:      "<script>x</script>Speech Basics",
		ModuleType: "speech",
		Steps: []StepInput{
			{Number: 1, Title: "<b>Warm up</b>"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Speech Basics", view.Title)
	assert.Equal(t, "Warm up", view.Steps[0].Title)
}

func TestCreateModuleUseCase_Validation(t *testing.T) {
	uc := newCreateModuleUC(&mockModuleRepository{}, &mockAuditor{})

	t.Run("anonymous caller", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateModuleCommand{
			Title: "Speech", ModuleType: "speech",
			Steps: []StepInput{{Number: 1, Title: "Warm up"}},
		})
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateModuleCommand{
			CallerID: 5, CallerSID: "user_clinician",
			ModuleType: "speech",
			Steps:      []StepInput{{Number: 1, Title: "Warm up"}},
		})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("duplicate step numbers", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateModuleCommand{
			CallerID: 5, CallerSID: "user_clinician",
			Title: "Speech", ModuleType: "speech",
			Steps: []StepInput{
				{Number: 1, Title: "Warm up"},
				{Number: 1, Title: "Repeat"},
			},
		})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("too many steps", func(t *testing.T) {
		steps := make([]StepInput, maxModuleSteps+1)
		for i := range steps {
			steps[i] = StepInput{Number: i + 1, Title: "Step"}
		}
		_, err := uc.Execute(context.Background(), CreateModuleCommand{
			CallerID: 5, CallerSID: "user_clinician",
			Title: "Speech", ModuleType: "speech",
			Steps: steps,
		})
		assert.True(t, apperrors.IsValidationError(err))
	})
}

func TestListModulesUseCase(t *testing.T) {
	t.Run("normalizes paging", func(t *testing.T) {
		modules := &mockModuleRepository{}
		uc := NewListModulesUseCase(modules, logger.NewLogger())

		res, err := uc.Execute(context.Background(), ListModulesQuery{Page: 0, PageSize: 500})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, maxModulePageSize, res.PageSize)
		assert.NotNil(t, res.Modules)
	})

	t.Run("passes the filter through", func(t *testing.T) {
		modules := &mockModuleRepository{}
		uc := NewListModulesUseCase(modules, logger.NewLogger())

		age := 12
		_, err := uc.Execute(context.Background(), ListModulesQuery{ModuleType: "speech", AgeMonths: &age})
		require.NoError(t, err)
		require.NotNil(t, modules.LastFilter.ModuleType)
		assert.Equal(t, "speech", *modules.LastFilter.ModuleType)
		require.NotNil(t, modules.LastFilter.AgeMonths)
		assert.Equal(t, 12, *modules.LastFilter.AgeMonths)
	})

	t.Run("rejects negative age", func(t *testing.T) {
		uc := NewListModulesUseCase(&mockModuleRepository{}, logger.NewLogger())

		age := -1
		_, err := uc.Execute(context.Background(), ListModulesQuery{AgeMonths: &age})
		assert.True(t, apperrors.IsValidationError(err))
	})
}
