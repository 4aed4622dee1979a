package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/outbox"
	"github.com/sahay-inc/sahay/internal/domain/telemed"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/services/sanitize"
)

// CreatePrescriptionCommand is written by the assigned clinician once the
// consultation is underway.
type CreatePrescriptionCommand struct {
	CallerID   uint
	CallerSID  string
	RequestSID string
	Items      []telemed.PrescriptionItem
	Advice     string
	IP         string
	Device     string
}

type CreatePrescriptionResult struct {
	PrescriptionSID string                     `json:"prescription_sid"`
	RequestSID      string                     `json:"request_sid"`
	Items           []telemed.PrescriptionItem `json:"items"`
	SummaryText     string                     `json:"summary_text"`
	CreatedAt       string                     `json:"created_at"`
}

type CreatePrescriptionUseCase struct {
	requests      telemed.Repository
	prescriptions telemed.PrescriptionRepository
	users         UserDirectory
	messages      MessageQueue
	sanitizer     sanitize.Service
	txManager     TransactionManager
	auditor       AuditAppender
	logger        logger.Interface
}

func NewCreatePrescriptionUseCase(
	requests telemed.Repository,
	prescriptions telemed.PrescriptionRepository,
	users UserDirectory,
	messages MessageQueue,
	sanitizer sanitize.Service,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *CreatePrescriptionUseCase {
	return &CreatePrescriptionUseCase{
		requests:      requests,
		prescriptions: prescriptions,
		users:         users,
		messages:      messages,
		sanitizer:     sanitizer,
		txManager:     txManager,
		auditor:       auditor,
		logger:        logger,
	}
}

func (uc *CreatePrescriptionUseCase) Execute(ctx context.Context, cmd CreatePrescriptionCommand) (*CreatePrescriptionResult, error) {
	uc.logger.Infow("executing create prescription use case", "request_sid", cmd.RequestSID)

	if cmd.CallerID == 0 || cmd.CallerSID == "" {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}
	if cmd.RequestSID == "" {
		return nil, apperrors.NewValidationError("request ID is required")
	}
	if len(cmd.Items) == 0 {
		return nil, apperrors.NewValidationError("at least one prescription item is required")
	}

	request, err := uc.requests.GetBySID(ctx, cmd.RequestSID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load tele request", "request_sid", cmd.RequestSID, "error", err)
		return nil, apperrors.NewInternalError("failed to load tele request")
	}
	if !request.IsAssignedTo(cmd.CallerID) {
		return nil, apperrors.NewForbiddenError("request is assigned to another clinician")
	}
	if request.Status() != telemed.StatusInProgress && request.Status() != telemed.StatusCompleted {
		return nil, apperrors.NewStateInvalidError("prescriptions require a consultation in progress")
	}

	items := uc.sanitizeItems(cmd.Items)
	advice := uc.sanitizer.PlainText(cmd.Advice)

	prescription, err := telemed.NewPrescription(request.ID(), request.CitizenID(), cmd.CallerID, items, advice)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	recipient := uc.smsRecipient(ctx, request.CitizenID())

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.prescriptions.Create(txCtx, prescription); err != nil {
			return err
		}
		if recipient != "" {
			message, err := outbox.NewMessage(request.CitizenID(), outbox.ChannelSMS, recipient, prescription.SummaryText())
			if err != nil {
				return err
			}
			if err := uc.messages.Create(txCtx, message); err != nil {
				return err
			}
		}
		_, err := uc.auditor.Append(txCtx, audit.Record{
			ActorID:    cmd.CallerSID,
			Action:     "prescription.create",
			EntityType: "prescription",
			EntityID:   prescription.SID(),
			IP:         cmd.IP,
			Device:     cmd.Device,
			Payload: map[string]any{
				"tele_request": request.SID(),
				"item_count":   len(items),
			},
		})
		return err
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create prescription", "request_sid", cmd.RequestSID, "error", err)
		return nil, apperrors.NewInternalError("failed to create prescription")
	}

	uc.logger.Infow("prescription created",
		"prescription_sid", prescription.SID(), "request_sid", request.SID(), "sms_queued", recipient != "")

	return &CreatePrescriptionResult{
		PrescriptionSID: prescription.SID(),
		RequestSID:      request.SID(),
		Items:           prescription.Items(),
		SummaryText:     prescription.SummaryText(),
		CreatedAt:       prescription.CreatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *CreatePrescriptionUseCase) sanitizeItems(items []telemed.PrescriptionItem) []telemed.PrescriptionItem {
	clean := make([]telemed.PrescriptionItem, len(items))
	for i, item := range items {
		clean[i] = telemed.PrescriptionItem{
			Drug:      uc.sanitizer.PlainText(item.Drug),
			Dose:      uc.sanitizer.PlainText(item.Dose),
			Frequency: uc.sanitizer.PlainText(item.Frequency),
			Duration:  uc.sanitizer.PlainText(item.Duration),
		}
	}
	return clean
}

// smsRecipient returns the citizen's phone, or "" for alias-only accounts
// that cannot receive SMS.
func (uc *CreatePrescriptionUseCase) smsRecipient(ctx context.Context, citizenID uint) string {
	citizen, err := uc.users.GetByID(ctx, citizenID)
	if err != nil {
		uc.logger.Warnw("failed to resolve prescription recipient", "citizen_id", citizenID, "error", err)
		return ""
	}
	if citizen.Phone() == nil {
		return ""
	}
	return *citizen.Phone()
}
