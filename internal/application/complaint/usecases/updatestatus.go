package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/anchor"
	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/complaint"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/services/sanitize"
)

// maxResolutionNoteLength bounds officer notes in runes.
const maxResolutionNoteLength = 2000

// UpdateStatusCommand moves a complaint through its lifecycle. Officer-only;
// the route guard enforces the role, the use case enforces the transitions.
// Note is required when resolving and otherwise kept as the history reason.
type UpdateStatusCommand struct {
	CallerID     uint
	CallerSID    string
	ComplaintSID string
	Status       string
	Note         string
	IP           string
	Device       string
}

// StatusUpdateResult reflects the complaint after a lifecycle change.
// ClosureHash and ClosedAt are set only by the close operation.
type StatusUpdateResult struct {
	ComplaintSID    string  `json:"complaint_sid"`
	Status          string  `json:"status"`
	EscalationLevel string  `json:"escalation_level"`
	SLADeadline     string  `json:"sla_deadline"`
	ResolutionNote  *string `json:"resolution_note,omitempty"`
	ClosureHash     *string `json:"closure_hash,omitempty"`
	ClosedAt        *string `json:"closed_at,omitempty"`
	Version         int     `json:"version"`
	UpdatedAt       string  `json:"updated_at"`
}

type UpdateStatusUseCase struct {
	complaints complaint.Repository
	histories  complaint.StatusHistoryRepository
	anchors    anchor.Repository
	sanitizer  sanitize.Service
	txManager  TransactionManager
	auditor    AuditAppender
	logger     logger.Interface
}

func NewUpdateStatusUseCase(
	complaints complaint.Repository,
	histories complaint.StatusHistoryRepository,
	anchors anchor.Repository,
	sanitizer sanitize.Service,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		complaints: complaints,
		histories:  histories,
		anchors:    anchors,
		sanitizer:  sanitizer,
		txManager:  txManager,
		auditor:    auditor,
		logger:     logger,
	}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, cmd UpdateStatusCommand) (*StatusUpdateResult, error) {
	uc.logger.Infow("executing update complaint status use case",
		"complaint_sid", cmd.ComplaintSID, "status", cmd.Status)

	if cmd.CallerID == 0 {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}
	if cmd.ComplaintSID == "" {
		return nil, apperrors.NewValidationError("complaint ID is required")
	}
	target, err := complaint.NewStatus(cmd.Status)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	note := uc.sanitizer.PlainText(cmd.Note)
	if len([]rune(note)) > maxResolutionNoteLength {
		return nil, apperrors.NewValidationError("resolution note exceeds maximum length")
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

	if err := uc.transition(grievance, target, note); err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.complaints.Update(txCtx, grievance); err != nil {
			return err
		}

		callerID := cmd.CallerID
		change, err := complaint.NewStatusChange(
			grievance.ID(),
			oldStatus, grievance.Status(),
			oldLevel, grievance.EscalationLevel(),
			&callerID, note, false,
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

		_, err = uc.auditor.Append(txCtx, audit.Record{
			ActorID:    cmd.CallerSID,
			Action:     "complaint.status_change",
			EntityType: "complaint",
			EntityID:   grievance.SID(),
			IP:         cmd.IP,
			Device:     cmd.Device,
			Payload: map[string]any{
				"from":             oldStatus.String(),
				"to":               grievance.Status().String(),
				"escalation_level": grievance.EscalationLevel().String(),
			},
		})
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to update complaint status",
			"complaint_sid", grievance.SID(), "error", err)
		return nil, apperrors.NewInternalError("failed to update complaint status")
	}

	uc.logger.Infow("complaint status updated",
		"complaint_sid", grievance.SID(),
		"from", oldStatus.String(), "to", grievance.Status().String())

	return statusUpdateResult(grievance), nil
}

// transition applies the requested move. Escalated complaints are reassigned
// back into handling; closure and automatic escalation have their own paths.
func (uc *UpdateStatusUseCase) transition(grievance *complaint.Complaint, target complaint.Status, note string) error {
	switch target {
	case complaint.StatusUnderReview:
		if grievance.Status() == complaint.StatusEscalated {
			if err := grievance.Reassign(complaint.StatusUnderReview); err != nil {
				return apperrors.NewStateInvalidError(err.Error())
			}
			return nil
		}
		if err := grievance.StartReview(); err != nil {
			return apperrors.NewStateInvalidError(err.Error())
		}
		return nil
	case complaint.StatusInProgress:
		if grievance.Status() == complaint.StatusEscalated {
			if err := grievance.Reassign(complaint.StatusInProgress); err != nil {
				return apperrors.NewStateInvalidError(err.Error())
			}
			return nil
		}
		if err := grievance.StartProgress(); err != nil {
			return apperrors.NewStateInvalidError(err.Error())
		}
		return nil
	case complaint.StatusResolved:
		if note == "" {
			return apperrors.NewValidationError("a resolution note is required to resolve a complaint")
		}
		if err := grievance.Resolve(note); err != nil {
			return apperrors.NewStateInvalidError(err.Error())
		}
		return nil
	case complaint.StatusClosed:
		return apperrors.NewValidationError("complaints are closed through the close operation with feedback")
	case complaint.StatusEscalated:
		return apperrors.NewStateInvalidError("escalation happens automatically on SLA breach")
	default:
		return apperrors.NewStateInvalidError("cannot move a complaint back to " + target.String())
	}
}

func statusUpdateResult(c *complaint.Complaint) *StatusUpdateResult {
	result := &StatusUpdateResult{
		ComplaintSID:    c.SID(),
		Status:          c.Status().String(),
		EscalationLevel: c.EscalationLevel().String(),
		SLADeadline:     c.SLADeadline().Format(time.RFC3339),
		ResolutionNote:  c.ResolutionNote(),
		ClosureHash:     c.ClosureHash(),
		Version:         c.Version(),
		UpdatedAt:       c.UpdatedAt().Format(time.RFC3339),
	}
	if closedAt := c.ClosedAt(); closedAt != nil {
		formatted := closedAt.Format(time.RFC3339)
		result.ClosedAt = &formatted
	}
	return result
}
