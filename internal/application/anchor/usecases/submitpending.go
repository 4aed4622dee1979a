package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/anchor"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils/logutil"
)

const (
	// submitBatchSize bounds the records one run picks up.
	submitBatchSize = 50
	// defaultMaxAttempts bounds transient retries when the configured
	// budget is missing.
	defaultMaxAttempts = 10
)

// SubmitPendingResult reports one submission run.
type SubmitPendingResult struct {
	Reclaimed int
	Submitted int
	Confirmed int
	Deferred  int
	Failed    int
}

// Handled returns the number of records the run touched.
func (r *SubmitPendingResult) Handled() int {
	return r.Reclaimed + r.Submitted
}

// SubmitPendingUseCase drains the anchor queue: due records are claimed,
// submitted to the chain gateway, and confirmed, deferred, or abandoned by
// outcome. Runs hold the cross-instance worker lock, so records found
// in flight were stranded by a crash and are reclaimed first.
type SubmitPendingUseCase struct {
	anchors     anchor.Repository
	chain       anchor.ChainClient
	backoff     anchor.BackoffPolicy
	maxAttempts int
	logger      logger.Interface
}

func NewSubmitPendingUseCase(
	anchors anchor.Repository,
	chain anchor.ChainClient,
	backoff anchor.BackoffPolicy,
	maxAttempts int,
	logger logger.Interface,
) *SubmitPendingUseCase {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &SubmitPendingUseCase{
		anchors:     anchors,
		chain:       chain,
		backoff:     backoff,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

func (uc *SubmitPendingUseCase) Execute(ctx context.Context) (*SubmitPendingResult, error) {
	result := &SubmitPendingResult{}

	stranded, err := uc.anchors.ListInFlight(ctx, submitBatchSize)
	if err != nil {
		uc.logger.Errorw("failed to list stranded anchor records", "error", err)
		return nil, apperrors.NewInternalError("failed to list anchor records")
	}
	for _, record := range stranded {
		if err := record.Reclaim(); err != nil {
			uc.logger.Warnw("failed to reclaim anchor record",
				"anchor_sid", record.SID(), "error", err)
			continue
		}
		if err := uc.anchors.Update(ctx, record); err != nil {
			uc.logger.Warnw("failed to persist reclaimed anchor record",
				"anchor_sid", record.SID(), "error", err)
			continue
		}
		uc.logger.Warnw("reclaimed stranded anchor submission",
			"anchor_sid", record.SID(), "complaint_id", record.ComplaintID())
		result.Reclaimed++
	}

	due, err := uc.anchors.ListDue(ctx, time.Now(), submitBatchSize)
	if err != nil {
		uc.logger.Errorw("failed to list due anchor records", "error", err)
		return nil, apperrors.NewInternalError("failed to list anchor records")
	}

	for _, record := range due {
		if ctx.Err() != nil {
			uc.logger.Warnw("anchor submission run cut short",
				"remaining", len(due)-result.Submitted, "error", ctx.Err())
			break
		}
		result.Submitted++
		uc.submit(ctx, record, result)
	}

	if result.Handled() > 0 {
		uc.logger.Infow("anchor submission run finished",
			"reclaimed", result.Reclaimed,
			"submitted", result.Submitted,
			"confirmed", result.Confirmed,
			"deferred", result.Deferred,
			"failed", result.Failed)
	}
	return result, nil
}

// submit pushes one record through a single claim-call-resolve cycle.
func (uc *SubmitPendingUseCase) submit(ctx context.Context, record *anchor.Record, result *SubmitPendingResult) {
	if err := record.MarkInFlight(); err != nil {
		uc.logger.Warnw("anchor record not claimable", "anchor_sid", record.SID(), "error", err)
		return
	}
	if err := uc.anchors.Update(ctx, record); err != nil {
		uc.logger.Warnw("failed to claim anchor record", "anchor_sid", record.SID(), "error", err)
		return
	}

	txHash, err := uc.call(ctx, record)
	now := time.Now()

	switch {
	case err == nil:
		if err := record.MarkConfirmed(txHash); err != nil {
			uc.logger.Errorw("failed to confirm anchor record",
				"anchor_sid", record.SID(), "tx_hash", logutil.HashPrefix(txHash), "error", err)
			return
		}
		result.Confirmed++
		uc.logger.Infow("anchor confirmed",
			"anchor_sid", record.SID(),
			"operation", string(record.Operation()),
			"nonce", record.StatusNonce(),
			"tx_hash", logutil.HashPrefix(txHash))

	case errors.Is(err, anchor.ErrInvalidNonce):
		if uc.outOfAttempts(record) {
			uc.abandon(record, err)
			result.Failed++
			break
		}
		uc.recoverNonce(ctx, record, now)
		result.Deferred++

	case errors.Is(err, anchor.ErrChainUnavailable):
		if uc.outOfAttempts(record) {
			uc.abandon(record, err)
			result.Failed++
			break
		}
		next := uc.backoff.NextAttempt(now, record.Attempts())
		if err := record.MarkRetry(err.Error(), next); err != nil {
			uc.logger.Errorw("failed to defer anchor record", "anchor_sid", record.SID(), "error", err)
			return
		}
		result.Deferred++
		uc.logger.Warnw("chain unavailable, anchor deferred",
			"anchor_sid", record.SID(), "attempts", record.Attempts(), "next_attempt_at", next)

	default:
		uc.abandon(record, err)
		result.Failed++
	}

	if err := uc.anchors.Update(ctx, record); err != nil {
		uc.logger.Errorw("failed to persist anchor record outcome",
			"anchor_sid", record.SID(), "status", record.Status().String(), "error", err)
	}
}

// call performs the contract operation the record is queued for.
func (uc *SubmitPendingUseCase) call(ctx context.Context, record *anchor.Record) (string, error) {
	switch record.Operation() {
	case anchor.OpCreate:
		req, err := record.CreateRequest()
		if err != nil {
			return "", err
		}
		return uc.chain.CreateAnchor(ctx, req)
	case anchor.OpUpdate:
		req, err := record.UpdateRequest()
		if err != nil {
			return "", err
		}
		return uc.chain.UpdateStatus(ctx, req)
	default:
		return "", fmt.Errorf("unknown anchor operation: %s", record.Operation())
	}
}

// recoverNonce reads the on-chain nonce and requeues the record for an
// immediate retry with onchain+1. A failing read defers with backoff
// instead.
func (uc *SubmitPendingUseCase) recoverNonce(ctx context.Context, record *anchor.Record, now time.Time) {
	onchain, err := uc.chain.CurrentNonce(ctx, record.ComplaintHash())
	if err != nil {
		uc.logger.Warnw("failed to read on-chain nonce",
			"anchor_sid", record.SID(), "error", err)
		if err := record.MarkRetry("invalid nonce: "+err.Error(), uc.backoff.NextAttempt(now, record.Attempts())); err != nil {
			uc.logger.Errorw("failed to defer anchor record", "anchor_sid", record.SID(), "error", err)
		}
		return
	}

	if err := record.AdoptNonce(onchain); err != nil {
		uc.logger.Errorw("failed to adopt on-chain nonce",
			"anchor_sid", record.SID(), "onchain_nonce", onchain, "error", err)
		return
	}
	if err := record.MarkRetry(fmt.Sprintf("invalid nonce, adopted on-chain nonce %d", onchain), now); err != nil {
		uc.logger.Errorw("failed to requeue anchor record", "anchor_sid", record.SID(), "error", err)
		return
	}
	uc.logger.Infow("anchor nonce resynchronized",
		"anchor_sid", record.SID(), "onchain_nonce", onchain, "next_nonce", record.StatusNonce())
}

func (uc *SubmitPendingUseCase) outOfAttempts(record *anchor.Record) bool {
	return record.Attempts()+1 >= uc.maxAttempts
}

func (uc *SubmitPendingUseCase) abandon(record *anchor.Record, cause error) {
	if err := record.MarkFailed(cause.Error()); err != nil {
		uc.logger.Errorw("failed to mark anchor record failed",
			"anchor_sid", record.SID(), "error", err)
		return
	}
	uc.logger.Errorw("anchor submission abandoned",
		"anchor_sid", record.SID(),
		"complaint_id", record.ComplaintID(),
		"attempts", record.Attempts(),
		"error", cause)
}
