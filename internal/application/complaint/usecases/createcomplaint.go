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

// maxDescriptionLength bounds the complaint free text in runes.
const maxDescriptionLength = 5000

// CreateComplaintCommand files a grievance. CallerID nil or Anonymous true
// severs the submitter link: the stored row, the audit entry, and the logs
// carry no requester-identifying data for such complaints.
type CreateComplaintCommand struct {
	CallerID    *uint
	CallerSID   string
	Category    string
	Description string
	Anonymous   bool
	IP          string
	Device      string
}

type CreateComplaintResult struct {
	ComplaintSID    string `json:"complaint_sid"`
	Category        string `json:"category"`
	Status          string `json:"status"`
	EscalationLevel string `json:"escalation_level"`
	SLADeadline     string `json:"sla_deadline"`
	Anonymous       bool   `json:"anonymous"`
	Version         int    `json:"version"`
	CreatedAt       string `json:"created_at"`
}

type CreateComplaintUseCase struct {
	complaints complaint.Repository
	slaRules   complaint.SLARuleRepository
	histories  complaint.StatusHistoryRepository
	anchors    anchor.Repository
	sealer     PayloadSealer
	sanitizer  sanitize.Service
	txManager  TransactionManager
	auditor    AuditAppender
	logger     logger.Interface
}

func NewCreateComplaintUseCase(
	complaints complaint.Repository,
	slaRules complaint.SLARuleRepository,
	histories complaint.StatusHistoryRepository,
	anchors anchor.Repository,
	sealer PayloadSealer,
	sanitizer sanitize.Service,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *CreateComplaintUseCase {
	return &CreateComplaintUseCase{
		complaints: complaints,
		slaRules:   slaRules,
		histories:  histories,
		anchors:    anchors,
		sealer:     sealer,
		sanitizer:  sanitizer,
		txManager:  txManager,
		auditor:    auditor,
		logger:     logger,
	}
}

func (uc *CreateComplaintUseCase) Execute(ctx context.Context, cmd CreateComplaintCommand) (*CreateComplaintResult, error) {
	uc.logger.Infow("executing create complaint use case",
		"category", cmd.Category, "anonymous", cmd.Anonymous || cmd.CallerID == nil)

	category, err := complaint.NewCategory(cmd.Category)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	description := uc.sanitizer.PlainText(cmd.Description)
	if description == "" {
		return nil, apperrors.NewValidationError("complaint description is required")
	}
	if len([]rune(description)) > maxDescriptionLength {
		return nil, apperrors.NewValidationError("complaint description exceeds maximum length")
	}

	submitterID := cmd.CallerID
	if cmd.Anonymous {
		submitterID = nil
	}

	sealed, err := uc.sealer.Seal([]byte(description))
	if err != nil {
		uc.logger.Errorw("failed to seal complaint payload", "error", err)
		return nil, apperrors.NewInternalError("failed to store complaint")
	}

	grievance, err := complaint.NewComplaint(submitterID, category, sealed)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	// The filing deadline is anchored to the creation timestamp so the
	// sealed SLA terms can be recomputed during anchor verification.
	deadline := grievance.CreatedAt().Add(uc.slaWindow(ctx, category))
	if err := grievance.Submit(deadline); err != nil {
		return nil, apperrors.NewInternalError("failed to submit complaint")
	}

	inputs := anchorInputs(grievance)
	complaintHash, err := anchor.ComplaintHash(inputs)
	if err != nil {
		uc.logger.Errorw("failed to compute complaint hash", "error", err)
		return nil, apperrors.NewInternalError("failed to prepare complaint anchor")
	}
	slaHash, err := anchor.SLAHash(inputs)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to prepare complaint anchor")
	}
	statusHash, err := anchor.StatusHash(inputs)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to prepare complaint anchor")
	}

	actorSID, actorIP, actorDevice := cmd.CallerSID, cmd.IP, cmd.Device
	if submitterID == nil {
		actorSID, actorIP, actorDevice = "", "", ""
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.complaints.Create(txCtx, grievance); err != nil {
			return err
		}

		change, err := complaint.NewStatusChange(
			grievance.ID(),
			complaint.StatusDraft, complaint.StatusSubmitted,
			complaint.LevelDistrict, complaint.LevelDistrict,
			submitterID, "complaint submitted", false,
		)
		if err != nil {
			return err
		}
		if err := uc.histories.Create(txCtx, change); err != nil {
			return err
		}

		record, err := anchor.NewRecord(grievance.ID(), complaintHash, slaHash, statusHash, grievance.CreatedAt())
		if err != nil {
			return err
		}
		if err := uc.anchors.Create(txCtx, record); err != nil {
			return err
		}

		_, err = uc.auditor.Append(txCtx, audit.Record{
			ActorID:    actorSID,
			Action:     "complaint.create",
			EntityType: "complaint",
			EntityID:   grievance.SID(),
			IP:         actorIP,
			Device:     actorDevice,
			Payload: map[string]any{
				"category":         category.String(),
				"status":           grievance.Status().String(),
				"escalation_level": grievance.EscalationLevel().String(),
				"anonymous":        grievance.IsAnonymous(),
			},
		})
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to create complaint", "error", err)
		return nil, apperrors.NewInternalError("failed to create complaint")
	}

	uc.logger.Infow("complaint filed",
		"complaint_sid", grievance.SID(), "category", category.String(),
		"sla_deadline", grievance.SLADeadline().Format(time.RFC3339))

	return &CreateComplaintResult{
		ComplaintSID:    grievance.SID(),
		Category:        category.String(),
		Status:          grievance.Status().String(),
		EscalationLevel: grievance.EscalationLevel().String(),
		SLADeadline:     grievance.SLADeadline().Format(time.RFC3339),
		Anonymous:       grievance.IsAnonymous(),
		Version:         grievance.Version(),
		CreatedAt:       grievance.CreatedAt().Format(time.RFC3339),
	}, nil
}

// slaWindow resolves the district-level SLA duration for a category,
// falling back to the default window when no rule row exists.
func (uc *CreateComplaintUseCase) slaWindow(ctx context.Context, category complaint.Category) time.Duration {
	rule, err := uc.slaRules.GetByCategoryAndLevel(ctx, category, complaint.LevelDistrict)
	if err != nil {
		if !apperrors.IsNotFoundError(err) {
			uc.logger.Warnw("failed to load SLA rule, using fallback window",
				"category", category.String(), "error", err)
		}
		return complaint.DefaultSLAWindow
	}
	return time.Duration(rule.TimeLimitHours()) * time.Hour
}
