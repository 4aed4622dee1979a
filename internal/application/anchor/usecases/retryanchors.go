package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/anchor"
	"github.com/sahay-inc/sahay/internal/domain/audit"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// lockReleaseTimeout bounds the lock release after the run's own context
// has been spent.
const lockReleaseTimeout = 5 * time.Second

// RetryAnchorsCommand requeues abandoned anchor records and runs one
// submission pass immediately. Route-level checks restrict this to
// national administrators.
type RetryAnchorsCommand struct {
	CallerSID string
	IP        string
	Device    string
}

type RetryAnchorsResult struct {
	Requeued  int `json:"requeued"`
	Reclaimed int `json:"reclaimed"`
	Submitted int `json:"submitted"`
	Confirmed int `json:"confirmed"`
	Deferred  int `json:"deferred"`
	Failed    int `json:"failed"`
}

// RetryAnchorsUseCase is the manual counterpart of the scheduled submission
// job. It competes for the same run lock, so a manual trigger never overlaps
// a scheduled run.
type RetryAnchorsUseCase struct {
	anchors   anchor.Repository
	submitter AnchorSubmitter
	lock      RunLock
	txManager TransactionManager
	auditor   AuditAppender
	logger    logger.Interface
}

func NewRetryAnchorsUseCase(
	anchors anchor.Repository,
	submitter AnchorSubmitter,
	lock RunLock,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *RetryAnchorsUseCase {
	return &RetryAnchorsUseCase{
		anchors:   anchors,
		submitter: submitter,
		lock:      lock,
		txManager: txManager,
		auditor:   auditor,
		logger:    logger,
	}
}

func (uc *RetryAnchorsUseCase) Execute(ctx context.Context, cmd RetryAnchorsCommand) (*RetryAnchorsResult, error) {
	uc.logger.Infow("executing retry anchors use case", "actor", cmd.CallerSID)

	token, acquired, err := uc.lock.TryAcquire(ctx)
	if err != nil {
		uc.logger.Errorw("failed to acquire anchor run lock", "error", err)
		return nil, apperrors.NewInternalError("failed to coordinate anchor retry")
	}
	if !acquired {
		return nil, apperrors.NewConflictError("an anchor submission run is already in progress")
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), lockReleaseTimeout)
		defer cancel()
		if err := uc.lock.Release(releaseCtx, token); err != nil {
			uc.logger.Warnw("failed to release anchor run lock", "error", err)
		}
	}()

	requeued := 0
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		abandoned, err := uc.anchors.ListFailed(txCtx, submitBatchSize)
		if err != nil {
			return err
		}
		for _, record := range abandoned {
			if err := record.RequeueFailed(); err != nil {
				return err
			}
			if err := uc.anchors.Update(txCtx, record); err != nil {
				return err
			}
			requeued++
		}

		_, err = uc.auditor.Append(txCtx, audit.Record{
			ActorID:    cmd.CallerSID,
			Action:     "anchor.retry",
			EntityType: "system",
			EntityID:   "anchor_worker",
			IP:         cmd.IP,
			Device:     cmd.Device,
			Payload: map[string]any{
				"requeued": requeued,
			},
		})
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to requeue abandoned anchor records", "error", err)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.NewInternalError("failed to requeue anchor records")
	}

	stats, err := uc.submitter.Execute(ctx)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("manual anchor retry finished",
		"requeued", requeued, "submitted", stats.Submitted, "confirmed", stats.Confirmed)

	return &RetryAnchorsResult{
		Requeued:  requeued,
		Reclaimed: stats.Reclaimed,
		Submitted: stats.Submitted,
		Confirmed: stats.Confirmed,
		Deferred:  stats.Deferred,
		Failed:    stats.Failed,
	}, nil
}
