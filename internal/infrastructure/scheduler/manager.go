// Package scheduler provides unified scheduled job management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/sahay-inc/sahay/internal/infrastructure/cache"
	"github.com/sahay-inc/sahay/internal/shared/biztime"
	"github.com/sahay-inc/sahay/internal/shared/goroutine"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// BatchJob is one scheduled unit of work. Execute processes a batch and
// returns the number of items it handled.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// Lock names for the scheduled jobs. Every instance competes for the lock
// each tick; losers skip the run.
const (
	LockSLASweep       = "sla_sweep"
	LockAnchorRetry    = "anchor_retry"
	LockAnalyticsFlush = "analytics_flush"
	LockViewRefresh    = "view_refresh"
	LockOutboxDispatch = "outbox_dispatch"
)

// Manager owns the gocron scheduler and registers the platform's recurring
// jobs. Jobs run in singleton mode locally and under a Redis lock across
// instances, so every job body must stay idempotent.
type Manager struct {
	scheduler gocron.Scheduler
	lock      *cache.JobLock
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewManager creates a Manager instance scheduling in the business timezone.
func NewManager(lock *cache.JobLock, log logger.Interface) (*Manager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &Manager{
		scheduler: scheduler,
		lock:      lock,
		logger:    log,
	}, nil
}

// RegisterSLASweepJob schedules the escalation sweep over breached
// complaints.
func (m *Manager) RegisterSLASweepJob(job BatchJob, interval time.Duration) error {
	return m.registerBatchJob("sla-escalation-sweep", LockSLASweep, job, interval, "sla")
}

// RegisterAnchorRetryJob schedules re-submission of due anchor records.
func (m *Manager) RegisterAnchorRetryJob(job BatchJob, interval time.Duration) error {
	return m.registerBatchJob("anchor-retry", LockAnchorRetry, job, interval, "anchor")
}

// RegisterAnalyticsFlushJob schedules the aggregation buffer flush.
func (m *Manager) RegisterAnalyticsFlushJob(job BatchJob, interval time.Duration) error {
	return m.registerBatchJob("analytics-flush", LockAnalyticsFlush, job, interval, "analytics")
}

// RegisterViewRefreshJob schedules the dashboard view rebuild.
func (m *Manager) RegisterViewRefreshJob(job BatchJob, interval time.Duration) error {
	return m.registerBatchJob("view-refresh", LockViewRefresh, job, interval, "dashboard")
}

// RegisterOutboxDispatchJob schedules delivery of pending outbox messages.
func (m *Manager) RegisterOutboxDispatchJob(job BatchJob, interval time.Duration) error {
	return m.registerBatchJob("outbox-dispatch", LockOutboxDispatch, job, interval, "outbox")
}

func (m *Manager) registerBatchJob(name, lockName string, job BatchJob, interval time.Duration, tags ...string) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			goroutine.SafeCall(m.logger, name, func() {
				m.runLocked(ctx, name, lockName, interval, job)
			})
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags(tags...),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered scheduled job", "job", name, "interval", interval)
	return nil
}

// runLocked executes the job body while holding the cross-instance lock.
// The lock TTL equals the job interval, matching the run's context timeout.
func (m *Manager) runLocked(ctx context.Context, name, lockName string, ttl time.Duration, job BatchJob) {
	token, acquired, err := m.lock.TryAcquire(ctx, lockName, ttl)
	if err != nil {
		m.logger.Errorw("failed to acquire job lock", "job", name, "error", err)
		return
	}
	if !acquired {
		m.logger.Debugw("job lock held elsewhere, skipping run", "job", name)
		return
	}
	defer func() {
		releaseCtx, releaseCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer releaseCancel()
		if err := m.lock.Release(releaseCtx, lockName, token); err != nil {
			m.logger.Warnw("failed to release job lock", "job", name, "error", err)
		}
	}()

	startTime := biztime.NowUTC()

	count, err := job.Execute(ctx)
	if err != nil {
		// Don't log error if context was cancelled (graceful shutdown)
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("scheduled job failed",
			"job", name,
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if count > 0 {
		m.logger.Infow("scheduled job completed",
			"job", name,
			"count", count,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("scheduled job completed with no work",
			"job", name,
			"duration", time.Since(startTime),
		)
	}
}

// Start starts the scheduler and all registered jobs.
func (m *Manager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler. It waits for running jobs to
// complete before returning.
func (m *Manager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *Manager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *Manager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
