package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/triage"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/services/sanitize"
)

const maxSymptomsLength = 4000

// CreateSessionCommand carries one triage evaluation request.
type CreateSessionCommand struct {
	CallerID     uint
	CallerSID    string
	SymptomsText string
	Age          int
	Sex          string
	Pregnancy    bool
	Language     string
	IP           string
	Device       string
}

// CreateSessionResult echoes the stored session. Category and guidance are
// final; red flags name the rules that fired, in rulebook order.
type CreateSessionResult struct {
	SessionSID   string   `json:"session_sid"`
	Category     string   `json:"category"`
	RedFlags     []string `json:"red_flags"`
	GuidanceText string   `json:"guidance_text"`
	Language     string   `json:"language"`
	CreatedAt    string   `json:"created_at"`
}

// CreateSessionUseCase evaluates symptoms and records the session.
type CreateSessionUseCase struct {
	engine    *triage.Engine
	sessions  triage.Repository
	sanitizer sanitize.Service
	txManager TransactionManager
	auditor   AuditAppender
	logger    logger.Interface
}

func NewCreateSessionUseCase(
	engine *triage.Engine,
	sessions triage.Repository,
	sanitizer sanitize.Service,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *CreateSessionUseCase {
	return &CreateSessionUseCase{
		engine:    engine,
		sessions:  sessions,
		sanitizer: sanitizer,
		txManager: txManager,
		auditor:   auditor,
		logger:    logger,
	}
}

func (uc *CreateSessionUseCase) Execute(ctx context.Context, cmd CreateSessionCommand) (*CreateSessionResult, error) {
	uc.logger.Infow("executing create triage session use case", "caller", cmd.CallerSID)

	if cmd.CallerID == 0 || cmd.CallerSID == "" {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}
	if cmd.Age < 0 || cmd.Age > 120 {
		return nil, apperrors.NewValidationError("age is out of range")
	}

	symptoms := uc.sanitizer.PlainText(cmd.SymptomsText)
	if symptoms == "" {
		return nil, apperrors.NewValidationError("symptoms text is required")
	}
	if len(symptoms) > maxSymptomsLength {
		return nil, apperrors.NewValidationError("symptoms text is too long")
	}

	input := triage.Input{
		SymptomsText: symptoms,
		Age:          cmd.Age,
		Sex:          cmd.Sex,
		Pregnancy:    cmd.Pregnancy,
		Language:     cmd.Language,
	}
	result, err := uc.engine.Evaluate(input)
	if err != nil {
		uc.logger.Errorw("triage evaluation failed", "error", err)
		return nil, apperrors.NewInternalError("failed to evaluate symptoms")
	}

	session, err := triage.NewSession(cmd.CallerID, input, result)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create triage session")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.sessions.Create(txCtx, session); err != nil {
			return err
		}
		_, err := uc.auditor.Append(txCtx, audit.Record{
			ActorID:    cmd.CallerSID,
			Action:     "triage.create",
			EntityType: "triage_session",
			EntityID:   session.SID(),
			IP:         cmd.IP,
			Device:     cmd.Device,
			Payload: map[string]any{
				"category":  result.Category.String(),
				"red_flags": result.RedFlags,
				"language":  result.Language,
			},
		})
		return err
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to record triage session", "error", err)
		return nil, apperrors.NewInternalError("failed to record triage session")
	}

	uc.logger.Infow("triage session created",
		"session_sid", session.SID(), "category", result.Category.String(), "red_flags", len(result.RedFlags))

	return &CreateSessionResult{
		SessionSID:   session.SID(),
		Category:     result.Category.String(),
		RedFlags:     session.RedFlags(),
		GuidanceText: result.GuidanceText,
		Language:     result.Language,
		CreatedAt:    session.CreatedAt().Format(time.RFC3339),
	}, nil
}
