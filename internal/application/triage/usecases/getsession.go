package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/triage"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

type GetSessionQuery struct {
	CallerID   uint
	SessionSID string
}

// SessionView is the owner's read of a stored session, input and outcome.
type SessionView struct {
	SessionSID   string   `json:"session_sid"`
	SymptomsText string   `json:"symptoms_text"`
	Age          int      `json:"age"`
	Sex          string   `json:"sex"`
	Pregnancy    bool     `json:"pregnancy"`
	Category     string   `json:"category"`
	RedFlags     []string `json:"red_flags"`
	GuidanceText string   `json:"guidance_text"`
	Language     string   `json:"language"`
	CreatedAt    string   `json:"created_at"`
}

type GetSessionUseCase struct {
	sessions triage.Repository
	logger   logger.Interface
}

func NewGetSessionUseCase(sessions triage.Repository, logger logger.Interface) *GetSessionUseCase {
	return &GetSessionUseCase{sessions: sessions, logger: logger}
}

func (uc *GetSessionUseCase) Execute(ctx context.Context, query GetSessionQuery) (*SessionView, error) {
	uc.logger.Infow("executing get triage session use case", "session_sid", query.SessionSID)

	if query.CallerID == 0 {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}
	if query.SessionSID == "" {
		return nil, apperrors.NewValidationError("session ID is required")
	}

	session, err := uc.sessions.GetBySID(ctx, query.SessionSID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load triage session", "session_sid", query.SessionSID, "error", err)
		return nil, apperrors.NewInternalError("failed to load triage session")
	}

	if !session.CanBeViewedBy(query.CallerID) {
		return nil, apperrors.NewForbiddenError("access denied")
	}

	return &SessionView{
		SessionSID:   session.SID(),
		SymptomsText: session.SymptomsText(),
		Age:          session.Age(),
		Sex:          session.Sex(),
		Pregnancy:    session.Pregnancy(),
		Category:     session.Category().String(),
		RedFlags:     session.RedFlags(),
		GuidanceText: session.GuidanceText(),
		Language:     session.Language(),
		CreatedAt:    session.CreatedAt().Format(time.RFC3339),
	}, nil
}
