package usecases

import (
	"context"
	"fmt"

	"github.com/sahay-inc/sahay/internal/domain/outbox"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

const (
	// dispatchBatchSize bounds the messages one run picks up.
	dispatchBatchSize = 50
	// defaultMaxAttempts bounds delivery retries when the configured
	// budget is missing.
	defaultMaxAttempts = 5
)

// DispatchPendingResult reports one delivery run.
type DispatchPendingResult struct {
	Dispatched int
	Sent       int
	Retried    int
	Failed     int
}

// Handled returns the number of messages the run touched.
func (r *DispatchPendingResult) Handled() int {
	return r.Dispatched
}

// DispatchPendingUseCase drains the outbound message queue oldest first,
// delivering each message over its channel's sender. Delivery is
// at-least-once: a message whose status write fails after a successful
// send is picked up and sent again on the next run.
type DispatchPendingUseCase struct {
	messages    outbox.Repository
	senders     map[outbox.Channel]outbox.Sender
	maxAttempts int
	logger      logger.Interface
}

func NewDispatchPendingUseCase(
	messages outbox.Repository,
	senders map[outbox.Channel]outbox.Sender,
	maxAttempts int,
	logger logger.Interface,
) *DispatchPendingUseCase {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &DispatchPendingUseCase{
		messages:    messages,
		senders:     senders,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

func (uc *DispatchPendingUseCase) Execute(ctx context.Context) (*DispatchPendingResult, error) {
	result := &DispatchPendingResult{}

	pending, err := uc.messages.ListPending(ctx, dispatchBatchSize)
	if err != nil {
		uc.logger.Errorw("failed to list pending messages", "error", err)
		return nil, apperrors.NewInternalError("failed to list pending messages")
	}

	for _, message := range pending {
		if ctx.Err() != nil {
			uc.logger.Warnw("message dispatch run cut short",
				"remaining", len(pending)-result.Dispatched, "error", ctx.Err())
			break
		}
		result.Dispatched++
		uc.dispatch(ctx, message, result)
	}

	if result.Dispatched > 0 {
		uc.logger.Infow("message dispatch run finished",
			"dispatched", result.Dispatched,
			"sent", result.Sent,
			"retried", result.Retried,
			"failed", result.Failed)
	}
	return result, nil
}

// dispatch delivers one message over its channel's sender. A channel with
// no sender registered counts as a delivery failure, so the message burns
// through its attempt budget instead of looping forever.
func (uc *DispatchPendingUseCase) dispatch(ctx context.Context, message *outbox.Message, result *DispatchPendingResult) {
	sender, ok := uc.senders[message.Channel()]
	if !ok {
		uc.record(ctx, message, fmt.Errorf("no sender registered for channel %s", message.Channel()), result)
		return
	}
	uc.record(ctx, message, sender.Send(ctx, message), result)
}

// record applies the delivery outcome to the message and persists it.
func (uc *DispatchPendingUseCase) record(ctx context.Context, message *outbox.Message, deliveryErr error, result *DispatchPendingResult) {
	switch {
	case deliveryErr == nil:
		if err := message.MarkSent(); err != nil {
			uc.logger.Errorw("failed to mark message sent",
				"message_sid", message.SID(), "error", err)
			return
		}
		result.Sent++
		uc.logger.Infow("outbound message delivered",
			"message_sid", message.SID(),
			"channel", message.Channel().String(),
			"attempts", message.Attempts())

	default:
		if err := message.RecordFailure(deliveryErr.Error(), uc.maxAttempts); err != nil {
			uc.logger.Errorw("failed to record delivery failure",
				"message_sid", message.SID(), "error", err)
			return
		}
		if message.Status() == outbox.StatusFailed {
			result.Failed++
			uc.logger.Errorw("outbound message abandoned",
				"message_sid", message.SID(),
				"channel", message.Channel().String(),
				"attempts", message.Attempts(),
				"error", deliveryErr)
		} else {
			result.Retried++
			uc.logger.Warnw("outbound message delivery failed",
				"message_sid", message.SID(),
				"channel", message.Channel().String(),
				"attempts", message.Attempts(),
				"error", deliveryErr)
		}
	}

	if err := uc.messages.Update(ctx, message); err != nil {
		uc.logger.Errorw("failed to persist message outcome",
			"message_sid", message.SID(),
			"status", message.Status().String(),
			"error", err)
	}
}
