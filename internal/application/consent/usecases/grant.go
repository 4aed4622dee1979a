package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/consent"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// GrantConsentCommand records a consent decision. Granted false is a revoke;
// either way a new receipt row is appended, never an update.
type GrantConsentCommand struct {
	UserID   uint
	ActorSID string
	Category string
	Scope    string
	Granted  bool
	IP       string
	Device   string
}

type GrantConsentResult struct {
	ConsentSID      string `json:"consent_sid"`
	Category        string `json:"category"`
	Scope           string `json:"scope"`
	DocumentVersion string `json:"document_version"`
	Granted         bool   `json:"granted"`
	GrantedAt       string `json:"granted_at"`
}

type GrantConsentUseCase struct {
	records         consent.Repository
	documentVersion string
	txManager       TransactionManager
	auditor         AuditAppender
	logger          logger.Interface
}

func NewGrantConsentUseCase(
	records consent.Repository,
	documentVersion string,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *GrantConsentUseCase {
	return &GrantConsentUseCase{
		records:         records,
		documentVersion: documentVersion,
		txManager:       txManager,
		auditor:         auditor,
		logger:          logger,
	}
}

func (uc *GrantConsentUseCase) Execute(ctx context.Context, cmd GrantConsentCommand) (*GrantConsentResult, error) {
	uc.logger.Infow("executing grant consent use case",
		"category", cmd.Category, "scope", cmd.Scope, "granted", cmd.Granted)

	if cmd.UserID == 0 {
		return nil, apperrors.NewValidationError("user ID is required")
	}
	category, err := consent.NewCategory(cmd.Category)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	scope, err := consent.NewScope(cmd.Scope)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	record, err := consent.NewRecord(cmd.UserID, category, scope, uc.documentVersion, cmd.Granted)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	action := "consent.grant"
	if !cmd.Granted {
		action = "consent.revoke"
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.records.Create(txCtx, record); err != nil {
			return err
		}

		_, err := uc.auditor.Append(txCtx, audit.Record{
			ActorID:    cmd.ActorSID,
			Action:     action,
			EntityType: "consent",
			EntityID:   record.SID(),
			IP:         cmd.IP,
			Device:     cmd.Device,
			Payload: map[string]any{
				"category":         category.String(),
				"scope":            scope.String(),
				"document_version": uc.documentVersion,
				"granted":          cmd.Granted,
			},
		})
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to record consent", "error", err, "user_id", cmd.UserID)
		return nil, apperrors.NewInternalError("failed to record consent")
	}

	uc.logger.Infow("consent recorded", "consent_sid", record.SID(), "granted", cmd.Granted)

	return &GrantConsentResult{
		ConsentSID:      record.SID(),
		Category:        category.String(),
		Scope:           scope.String(),
		DocumentVersion: record.DocumentVersion(),
		Granted:         record.Granted(),
		GrantedAt:       record.GrantedAt().Format(time.RFC3339),
	}, nil
}
