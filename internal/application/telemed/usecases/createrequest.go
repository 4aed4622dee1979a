package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/telemed"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/services/sanitize"
)

const maxPreferredTimeLength = 64

// CreateTeleRequestCommand carries a citizen's teleconsultation request.
// PreferredTime is free text so IVR callers can say "tomorrow morning".
type CreateTeleRequestCommand struct {
	CallerID       uint
	CallerSID      string
	SymptomSummary string
	PreferredTime  *string
	IP             string
	Device         string
}

// TeleRequestResult is the shared response shape for request creation and
// clinician status moves.
type TeleRequestResult struct {
	RequestSID     string  `json:"request_sid"`
	SymptomSummary string  `json:"symptom_summary"`
	PreferredTime  *string `json:"preferred_time,omitempty"`
	Status         string  `json:"status"`
	Version        int     `json:"version"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type CreateTeleRequestUseCase struct {
	requests  telemed.Repository
	sanitizer sanitize.Service
	txManager TransactionManager
	auditor   AuditAppender
	logger    logger.Interface
}

func NewCreateTeleRequestUseCase(
	requests telemed.Repository,
	sanitizer sanitize.Service,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *CreateTeleRequestUseCase {
	return &CreateTeleRequestUseCase{
		requests:  requests,
		sanitizer: sanitizer,
		txManager: txManager,
		auditor:   auditor,
		logger:    logger,
	}
}

func (uc *CreateTeleRequestUseCase) Execute(ctx context.Context, cmd CreateTeleRequestCommand) (*TeleRequestResult, error) {
	uc.logger.Infow("executing create tele request use case", "caller", cmd.CallerSID)

	if cmd.CallerID == 0 || cmd.CallerSID == "" {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}

	summary := uc.sanitizer.PlainText(cmd.SymptomSummary)
	if summary == "" {
		return nil, apperrors.NewValidationError("symptom summary is required")
	}
	if cmd.PreferredTime != nil && len(*cmd.PreferredTime) > maxPreferredTimeLength {
		return nil, apperrors.NewValidationError("preferred time is too long")
	}

	request, err := telemed.NewTeleRequest(cmd.CallerID, summary, cmd.PreferredTime)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.requests.Create(txCtx, request); err != nil {
			return err
		}
		_, err := uc.auditor.Append(txCtx, audit.Record{
			ActorID:    cmd.CallerSID,
			Action:     "tele_request.create",
			EntityType: "tele_request",
			EntityID:   request.SID(),
			IP:         cmd.IP,
			Device:     cmd.Device,
			Payload:    map[string]any{"status": request.Status().String()},
		})
		return err
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create tele request", "error", err)
		return nil, apperrors.NewInternalError("failed to create tele request")
	}

	uc.logger.Infow("tele request created", "request_sid", request.SID())

	return teleRequestResult(request), nil
}

func teleRequestResult(request *telemed.TeleRequest) *TeleRequestResult {
	return &TeleRequestResult{
		RequestSID:     request.SID(),
		SymptomSummary: request.SymptomSummary(),
		PreferredTime:  request.PreferredTime(),
		Status:         request.Status().String(),
		Version:        request.Version(),
		CreatedAt:      request.CreatedAt().Format(time.RFC3339),
		UpdatedAt:      request.UpdatedAt().Format(time.RFC3339),
	}
}
