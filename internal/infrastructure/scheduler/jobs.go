package scheduler

import (
	"context"
	"fmt"

	analyticsUsecases "github.com/sahay-inc/sahay/internal/application/analytics/usecases"
	anchorUsecases "github.com/sahay-inc/sahay/internal/application/anchor/usecases"
	complaintUsecases "github.com/sahay-inc/sahay/internal/application/complaint/usecases"
	dashboardUsecases "github.com/sahay-inc/sahay/internal/application/dashboard/usecases"
	outboxUsecases "github.com/sahay-inc/sahay/internal/application/outbox/usecases"
)

// SLASweepJob runs the escalation sweep over SLA-breached complaints.
type SLASweepJob struct {
	sweeper complaintUsecases.EscalationSweeper
}

func NewSLASweepJob(sweeper complaintUsecases.EscalationSweeper) *SLASweepJob {
	return &SLASweepJob{sweeper: sweeper}
}

func (j *SLASweepJob) Execute(ctx context.Context) (int, error) {
	result, err := j.sweeper.Execute(ctx)
	if err != nil {
		return 0, err
	}
	return result.Escalated + result.Exhausted, nil
}

// AnchorSubmitJob reclaims stranded anchor records and submits the due ones.
type AnchorSubmitJob struct {
	submitter anchorUsecases.AnchorSubmitter
}

func NewAnchorSubmitJob(submitter anchorUsecases.AnchorSubmitter) *AnchorSubmitJob {
	return &AnchorSubmitJob{submitter: submitter}
}

func (j *AnchorSubmitJob) Execute(ctx context.Context) (int, error) {
	result, err := j.submitter.Execute(ctx)
	if err != nil {
		return 0, err
	}
	return result.Handled(), nil
}

// AnalyticsFlushJob drains the in-memory aggregation buffer into storage.
type AnalyticsFlushJob struct {
	flusher analyticsUsecases.BufferFlusher
}

func NewAnalyticsFlushJob(flusher analyticsUsecases.BufferFlusher) *AnalyticsFlushJob {
	return &AnalyticsFlushJob{flusher: flusher}
}

func (j *AnalyticsFlushJob) Execute(ctx context.Context) (int, error) {
	result, err := j.flusher.Execute(ctx)
	if err != nil {
		return 0, err
	}
	return result.Cells, nil
}

// ViewRefreshJob rebuilds the dashboard materialized views. A run where
// some views fail still reports the refreshed count, with an error so the
// failure is visible in the job log.
type ViewRefreshJob struct {
	refresher dashboardUsecases.RefreshViewsExecutor
}

func NewViewRefreshJob(refresher dashboardUsecases.RefreshViewsExecutor) *ViewRefreshJob {
	return &ViewRefreshJob{refresher: refresher}
}

func (j *ViewRefreshJob) Execute(ctx context.Context) (int, error) {
	result, err := j.refresher.Execute(ctx)
	if err != nil {
		return 0, err
	}
	if result.Failed > 0 {
		return result.Refreshed, fmt.Errorf("%d of %d materialized views failed to refresh", result.Failed, result.Failed+result.Refreshed)
	}
	return result.Refreshed, nil
}

// OutboxDispatchJob delivers pending notification messages.
type OutboxDispatchJob struct {
	dispatcher outboxUsecases.DispatchPendingExecutor
}

func NewOutboxDispatchJob(dispatcher outboxUsecases.DispatchPendingExecutor) *OutboxDispatchJob {
	return &OutboxDispatchJob{dispatcher: dispatcher}
}

func (j *OutboxDispatchJob) Execute(ctx context.Context) (int, error) {
	result, err := j.dispatcher.Execute(ctx)
	if err != nil {
		return 0, err
	}
	return result.Handled(), nil
}
