package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/neuroscreen"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

type GetResultQuery struct {
	CallerID  uint
	ResultSID string
}

// ResultView is the owner's read of a stored screening, answers included.
type ResultView struct {
	ResultSID         string         `json:"result_sid"`
	Instrument        string         `json:"instrument"`
	InstrumentVersion string         `json:"instrument_version"`
	Responses         map[string]int `json:"responses"`
	RawScore          int            `json:"raw_score"`
	Band              string         `json:"band"`
	GuidanceText      string         `json:"guidance_text"`
	CreatedAt         string         `json:"created_at"`
}

type GetResultUseCase struct {
	results neuroscreen.Repository
	logger  logger.Interface
}

func NewGetResultUseCase(results neuroscreen.Repository, logger logger.Interface) *GetResultUseCase {
	return &GetResultUseCase{results: results, logger: logger}
}

func (uc *GetResultUseCase) Execute(ctx context.Context, query GetResultQuery) (*ResultView, error) {
	uc.logger.Infow("executing get screening result use case", "result_sid", query.ResultSID)

	if query.CallerID == 0 {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}
	if query.ResultSID == "" {
		return nil, apperrors.NewValidationError("result ID is required")
	}

	result, err := uc.results.GetBySID(ctx, query.ResultSID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load screening result", "result_sid", query.ResultSID, "error", err)
		return nil, apperrors.NewInternalError("failed to load screening result")
	}

	if !result.CanBeViewedBy(query.CallerID) {
		return nil, apperrors.NewForbiddenError("access denied")
	}

	return &ResultView{
		ResultSID:         result.SID(),
		Instrument:        result.InstrumentName(),
		InstrumentVersion: result.InstrumentVersion(),
		Responses:         result.Responses(),
		RawScore:          result.RawScore(),
		Band:              result.Band().String(),
		GuidanceText:      result.GuidanceText(),
		CreatedAt:         result.CreatedAt().Format(time.RFC3339),
	}, nil
}
