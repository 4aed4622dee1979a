package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/dashboard"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// ViewStat reports one view's recorded freshness. RefreshedAt is empty
// for a view that has never been rebuilt, and such a view is stale.
type ViewStat struct {
	View        string `json:"view"`
	RefreshedAt string `json:"refreshed_at"`
	RowCount    int64  `json:"row_count"`
	Stale       bool   `json:"stale"`
}

type ViewStatsResult struct {
	Views             []ViewStat `json:"views"`
	StaleAfterSeconds int        `json:"stale_after_seconds"`
	CheckedAt         string     `json:"checked_at"`
}

// GetViewStatsUseCase reports view freshness from the recorded refresh
// log. Staleness is judged against the recorded rebuild time, never
// against when the views were queried.
type GetViewStatsUseCase struct {
	views  dashboard.Repository
	logger logger.Interface
}

func NewGetViewStatsUseCase(views dashboard.Repository, logger logger.Interface) *GetViewStatsUseCase {
	return &GetViewStatsUseCase{
		views:  views,
		logger: logger,
	}
}

func (uc *GetViewStatsUseCase) Execute(ctx context.Context) (*ViewStatsResult, error) {
	uc.logger.Infow("executing get view stats use case")

	freshness, err := uc.views.FreshnessAll(ctx)
	if err != nil {
		uc.logger.Errorw("failed to read view freshness", "error", err)
		return nil, apperrors.NewInternalError("failed to read view stats")
	}

	now := time.Now()
	result := &ViewStatsResult{
		Views:             make([]ViewStat, 0, len(freshness)),
		StaleAfterSeconds: int(dashboard.StaleAfter.Seconds()),
		CheckedAt:         now.UTC().Format(time.RFC3339),
	}
	for _, f := range freshness {
		stat := ViewStat{
			View:     f.View.String(),
			RowCount: f.RowCount,
			Stale:    f.IsStale(now, dashboard.StaleAfter),
		}
		if !f.RefreshedAt.IsZero() {
			stat.RefreshedAt = f.RefreshedAt.UTC().Format(time.RFC3339)
		}
		result.Views = append(result.Views, stat)
	}

	return result, nil
}
