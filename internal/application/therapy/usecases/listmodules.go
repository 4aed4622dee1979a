package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/therapy"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

const (
	defaultModulePageSize = 20
	maxModulePageSize     = 100
)

// ListModulesQuery filters the module catalogue. AgeMonths matches
// modules whose age range covers the given age.
type ListModulesQuery struct {
	ModuleType string
	AgeMonths  *int
	Page       int
	PageSize   int
}

type ListModulesResult struct {
	Modules  []ModuleView `json:"modules"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

type ListModulesUseCase struct {
	modules therapy.ModuleRepository
	logger  logger.Interface
}

func NewListModulesUseCase(modules therapy.ModuleRepository, logger logger.Interface) *ListModulesUseCase {
	return &ListModulesUseCase{modules: modules, logger: logger}
}

func (uc *ListModulesUseCase) Execute(ctx context.Context, query ListModulesQuery) (*ListModulesResult, error) {
	uc.logger.Infow("executing list therapy modules use case", "module_type", query.ModuleType)

	if query.AgeMonths != nil && *query.AgeMonths < 0 {
		return nil, apperrors.NewValidationError("age months cannot be negative")
	}

	filter := therapy.ModuleListFilter{
		AgeMonths: query.AgeMonths,
		Page:      query.Page,
		PageSize:  query.PageSize,
	}
	if query.ModuleType != "" {
		moduleType := query.ModuleType
		filter.ModuleType = &moduleType
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultModulePageSize
	}
	if filter.PageSize > maxModulePageSize {
		filter.PageSize = maxModulePageSize
	}

	modules, total, err := uc.modules.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list therapy modules", "error", err)
		return nil, apperrors.NewInternalError("failed to list therapy modules")
	}

	views := make([]ModuleView, 0, len(modules))
	for _, module := range modules {
		views = append(views, *newModuleView(module))
	}

	return &ListModulesResult{
		Modules:  views,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
