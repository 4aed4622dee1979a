package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/telemed"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// UpdateTeleRequestCommand moves a request along its lifecycle. Scheduling
// assigns the acting clinician; later moves are restricted to that clinician.
type UpdateTeleRequestCommand struct {
	CallerID   uint
	CallerSID  string
	RequestSID string
	Status     string
	IP         string
	Device     string
}

type UpdateTeleRequestUseCase struct {
	requests  telemed.Repository
	txManager TransactionManager
	auditor   AuditAppender
	logger    logger.Interface
}

func NewUpdateTeleRequestUseCase(
	requests telemed.Repository,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *UpdateTeleRequestUseCase {
	return &UpdateTeleRequestUseCase{
		requests:  requests,
		txManager: txManager,
		auditor:   auditor,
		logger:    logger,
	}
}

func (uc *UpdateTeleRequestUseCase) Execute(ctx context.Context, cmd UpdateTeleRequestCommand) (*TeleRequestResult, error) {
	uc.logger.Infow("executing update tele request use case",
		"request_sid", cmd.RequestSID, "status", cmd.Status)

	if cmd.CallerID == 0 || cmd.CallerSID == "" {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}
	if cmd.RequestSID == "" {
		return nil, apperrors.NewValidationError("request ID is required")
	}
	target, err := telemed.NewStatus(cmd.Status)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	request, err := uc.requests.GetBySID(ctx, cmd.RequestSID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load tele request", "request_sid", cmd.RequestSID, "error", err)
		return nil, apperrors.NewInternalError("failed to load tele request")
	}

	from := request.Status()
	if err := uc.transition(request, target, cmd.CallerID); err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.requests.Update(txCtx, request); err != nil {
			return err
		}
		_, err := uc.auditor.Append(txCtx, audit.Record{
			ActorID:    cmd.CallerSID,
			Action:     "tele_request.update",
			EntityType: "tele_request",
			EntityID:   request.SID(),
			IP:         cmd.IP,
			Device:     cmd.Device,
			Payload: map[string]any{
				"from": from.String(),
				"to":   target.String(),
			},
		})
		return err
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to update tele request", "request_sid", cmd.RequestSID, "error", err)
		return nil, apperrors.NewInternalError("failed to update tele request")
	}

	uc.logger.Infow("tele request updated",
		"request_sid", request.SID(), "from", from.String(), "to", target.String())

	return teleRequestResult(request), nil
}

func (uc *UpdateTeleRequestUseCase) transition(request *telemed.TeleRequest, target telemed.Status, clinicianID uint) error {
	switch target {
	case telemed.StatusScheduled:
		if err := request.Schedule(clinicianID); err != nil {
			return apperrors.NewStateInvalidError(err.Error())
		}
	case telemed.StatusInProgress:
		if request.ClinicianID() != nil && !request.IsAssignedTo(clinicianID) {
			return apperrors.NewForbiddenError("request is assigned to another clinician")
		}
		if err := request.Start(); err != nil {
			return apperrors.NewStateInvalidError(err.Error())
		}
	case telemed.StatusCompleted:
		if request.ClinicianID() != nil && !request.IsAssignedTo(clinicianID) {
			return apperrors.NewForbiddenError("request is assigned to another clinician")
		}
		if err := request.Complete(); err != nil {
			return apperrors.NewStateInvalidError(err.Error())
		}
	default:
		return apperrors.NewStateInvalidError("requests cannot move back to requested")
	}
	return nil
}
