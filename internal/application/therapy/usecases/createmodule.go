package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/therapy"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/services/sanitize"
)

const maxModuleSteps = 50

// StepInput is one authored step of a module.
type StepInput struct {
	Number          int
	Title           string
	Description     string
	MediaReferences []string
	DurationMinutes int
}

// CreateModuleCommand carries one authored therapy module.
type CreateModuleCommand struct {
	CallerID    uint
	CallerSID   string
	Title       string
	Description string
	ModuleType  string
	AgeRangeMin *int
	AgeRangeMax *int
	Steps       []StepInput
	IP          string
	Device      string
}

// StepView is the read shape of a module step.
type StepView struct {
	Number          int      `json:"step_number"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	MediaReferences []string `json:"media_references"`
	DurationMinutes int      `json:"duration_minutes"`
}

// ModuleView is the read shape of a module, steps in order.
type ModuleView struct {
	ModuleSID   string     `json:"module_sid"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ModuleType  string     `json:"module_type"`
	AgeRangeMin *int       `json:"age_range_min"`
	AgeRangeMax *int       `json:"age_range_max"`
	Steps       []StepView `json:"steps"`
	CreatedAt   string     `json:"created_at"`
}

// CreateModuleUseCase validates and stores a clinician-authored module.
type CreateModuleUseCase struct {
	modules   therapy.ModuleRepository
	sanitizer sanitize.Service
	txManager TransactionManager
	auditor   AuditAppender
	logger    logger.Interface
}

func NewCreateModuleUseCase(
	modules therapy.ModuleRepository,
	sanitizer sanitize.Service,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *CreateModuleUseCase {
	return &CreateModuleUseCase{
		modules:   modules,
		sanitizer: sanitizer,
		txManager: txManager,
		auditor:   auditor,
		logger:    logger,
	}
}

func (uc *CreateModuleUseCase) Execute(ctx context.Context, cmd CreateModuleCommand) (*ModuleView, error) {
	uc.logger.Infow("executing create therapy module use case", "caller", cmd.CallerSID)

	if cmd.CallerID == 0 || cmd.CallerSID == "" {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}
	if len(cmd.Steps) > maxModuleSteps {
		return nil, apperrors.NewValidationError("too many steps")
	}

	steps := make([]therapy.Step, 0, len(cmd.Steps))
	for _, in := range cmd.Steps {
		steps = append(steps, therapy.Step{
			Number:          in.Number,
			Title:           uc.sanitizer.PlainText(in.Title),
			Description:     uc.sanitizer.PlainText(in.Description),
			MediaReferences: in.MediaReferences,
			DurationMinutes: in.DurationMinutes,
		})
	}

	module, err := therapy.NewModule(
		uc.sanitizer.PlainText(cmd.Title),
		uc.sanitizer.PlainText(cmd.Description),
		uc.sanitizer.PlainText(cmd.ModuleType),
		cmd.AgeRangeMin,
		cmd.AgeRangeMax,
		steps,
	)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.modules.Create(txCtx, module); err != nil {
			return err
		}
		_, err := uc.auditor.Append(txCtx, audit.Record{
			ActorID:    cmd.CallerSID,
			Action:     "therapy.module.create",
			EntityType: "therapy_module",
			EntityID:   module.SID(),
			IP:         cmd.IP,
			Device:     cmd.Device,
			Payload: map[string]any{
				"module_type": module.ModuleType(),
				"step_count":  len(module.Steps()),
			},
		})
		return err
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create therapy module", "error", err)
		return nil, apperrors.NewInternalError("failed to create therapy module")
	}

	uc.logger.Infow("therapy module created",
		"module_sid", module.SID(), "module_type", module.ModuleType())

	return newModuleView(module), nil
}

func newModuleView(module *therapy.Module) *ModuleView {
	steps := module.Steps()
	views := make([]StepView, 0, len(steps))
	for _, step := range steps {
		refs := step.MediaReferences
		if refs == nil {
			refs = []string{}
		}
		views = append(views, StepView{
			Number:          step.Number,
			Title:           step.Title,
			Description:     step.Description,
			MediaReferences: refs,
			DurationMinutes: step.DurationMinutes,
		})
	}
	return &ModuleView{
		ModuleSID:   module.SID(),
		Title:       module.Title(),
		Description: module.Description(),
		ModuleType:  module.ModuleType(),
		AgeRangeMin: module.AgeRangeMin(),
		AgeRangeMax: module.AgeRangeMax(),
		Steps:       views,
		CreatedAt:   module.CreatedAt().Format(time.RFC3339),
	}
}
