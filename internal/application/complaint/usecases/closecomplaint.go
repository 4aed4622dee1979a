package usecases

import (
	"context"
	"fmt"

	"github.com/sahay-inc/sahay/internal/domain/anchor"
	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/complaint"
	"github.com/sahay-inc/sahay/internal/domain/outbox"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/services/sanitize"
)

// CloseComplaintCommand finishes a resolved complaint. The officer records
// the feedback collected from the submitter; closure seals category,
// resolution note, and feedback into the closure hash.
type CloseComplaintCommand struct {
	CallerID     uint
	CallerSID    string
	ComplaintSID string
	Rating       int
	Comments     string
	IP           string
	Device       string
}

type CloseComplaintUseCase struct {
	complaints complaint.Repository
	histories  complaint.StatusHistoryRepository
	anchors    anchor.Repository
	users      UserDirectory
	messages   MessageQueue
	sanitizer  sanitize.Service
	txManager  TransactionManager
	auditor    AuditAppender
	logger     logger.Interface
}

func NewCloseComplaintUseCase(
	complaints complaint.Repository,
	histories complaint.StatusHistoryRepository,
	anchors anchor.Repository,
	users UserDirectory,
	messages MessageQueue,
	sanitizer sanitize.Service,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *CloseComplaintUseCase {
	return &CloseComplaintUseCase{
		complaints: complaints,
		histories:  histories,
		anchors:    anchors,
		users:      users,
		messages:   messages,
		sanitizer:  sanitizer,
		txManager:  txManager,
		auditor:    auditor,
		logger:     logger,
	}
}

func (uc *CloseComplaintUseCase) Execute(ctx context.Context, cmd CloseComplaintCommand) (*StatusUpdateResult, error) {
	uc.logger.Infow("executing close complaint use case", "complaint_sid", cmd.ComplaintSID)

	if cmd.CallerID == 0 {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}
	if cmd.ComplaintSID == "" {
		return nil, apperrors.NewValidationError("complaint ID is required")
	}

	feedback, err := complaint.NewFeedback(cmd.Rating, uc.sanitizer.PlainText(cmd.Comments))
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	grievance, err := uc.complaints.GetBySID(ctx, cmd.ComplaintSID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.NewInternalError("failed to get complaint")
	}

	oldStatus := grievance.Status()
	oldLevel := grievance.EscalationLevel()

	if err := grievance.Close(feedback); err != nil {
		return nil, apperrors.NewStateInvalidError(err.Error())
	}

	recipient := uc.smsRecipient(ctx, grievance.SubmitterID())

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.complaints.Update(txCtx, grievance); err != nil {
			return err
		}

		callerID := cmd.CallerID
		change, err := complaint.NewStatusChange(
			grievance.ID(),
			oldStatus, grievance.Status(),
			oldLevel, grievance.EscalationLevel(),
			&callerID, "closed with submitter feedback", false,
		)
		if err != nil {
			return err
		}
		if err := uc.histories.Create(txCtx, change); err != nil {
			return err
		}

		if err := queueStatusAnchor(txCtx, uc.anchors, grievance, uc.logger); err != nil {
			return err
		}

		if recipient != "" {
			text := fmt.Sprintf("Your complaint %s has been closed. Thank you for your feedback.", grievance.SID())
			message, err := outbox.NewMessage(*grievance.SubmitterID(), outbox.ChannelSMS, recipient, text)
			if err != nil {
				return err
			}
			if err := uc.messages.Create(txCtx, message); err != nil {
				return err
			}
		}

		_, err = uc.auditor.Append(txCtx, audit.Record{
			ActorID:    cmd.CallerSID,
			Action:     "complaint.close",
			EntityType: "complaint",
			EntityID:   grievance.SID(),
			IP:         cmd.IP,
			Device:     cmd.Device,
			Payload: map[string]any{
				"rating":       feedback.Rating(),
				"closure_hash": derefOrEmpty(grievance.ClosureHash()),
			},
		})
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to close complaint",
			"complaint_sid", grievance.SID(), "error", err)
		return nil, apperrors.NewInternalError("failed to close complaint")
	}

	uc.logger.Infow("complaint closed", "complaint_sid", grievance.SID(), "rating", feedback.Rating())

	return statusUpdateResult(grievance), nil
}

// smsRecipient resolves the submitter's phone. Anonymous complaints and
// alias-only accounts get no closure notice.
func (uc *CloseComplaintUseCase) smsRecipient(ctx context.Context, submitterID *uint) string {
	if submitterID == nil {
		return ""
	}
	submitter, err := uc.users.GetByID(ctx, *submitterID)
	if err != nil {
		uc.logger.Warnw("failed to resolve complaint submitter for closure notice",
			"submitter_id", *submitterID, "error", err)
		return ""
	}
	if phone := submitter.Phone(); phone != nil {
		return *phone
	}
	return ""
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
