package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/neuroscreen"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

const maxScreeningResponses = 50

// SubmitScreeningCommand carries one completed questionnaire. Responses
// map question IDs to answer values.
type SubmitScreeningCommand struct {
	CallerID  uint
	CallerSID string
	Responses map[string]int
	IP        string
	Device    string
}

// SubmitScreeningResult echoes the scored screening. The guidance text
// always carries the screening disclaimer.
type SubmitScreeningResult struct {
	ResultSID         string         `json:"result_sid"`
	Instrument        string         `json:"instrument"`
	InstrumentVersion string         `json:"instrument_version"`
	Responses         map[string]int `json:"responses"`
	RawScore          int            `json:"raw_score"`
	Band              string         `json:"band"`
	GuidanceText      string         `json:"guidance_text"`
	CreatedAt         string         `json:"created_at"`
}

// SubmitScreeningUseCase scores a questionnaire against the active
// instrument and records the result. Scoring is deterministic, so the
// stored band is reproducible from the stored responses.
type SubmitScreeningUseCase struct {
	results   neuroscreen.Repository
	txManager TransactionManager
	auditor   AuditAppender
	logger    logger.Interface
}

func NewSubmitScreeningUseCase(
	results neuroscreen.Repository,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *SubmitScreeningUseCase {
	return &SubmitScreeningUseCase{
		results:   results,
		txManager: txManager,
		auditor:   auditor,
		logger:    logger,
	}
}

func (uc *SubmitScreeningUseCase) Execute(ctx context.Context, cmd SubmitScreeningCommand) (*SubmitScreeningResult, error) {
	uc.logger.Infow("executing submit screening use case", "caller", cmd.CallerSID)

	if cmd.CallerID == 0 || cmd.CallerSID == "" {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}
	if len(cmd.Responses) == 0 {
		return nil, apperrors.NewValidationError("responses are required")
	}
	if len(cmd.Responses) > maxScreeningResponses {
		return nil, apperrors.NewValidationError("too many responses")
	}
	for _, value := range cmd.Responses {
		if value < 0 {
			return nil, apperrors.NewValidationError("response values cannot be negative")
		}
	}

	instrument := neuroscreen.DefaultInstrument()
	result, err := neuroscreen.NewResult(cmd.CallerID, instrument, cmd.Responses)
	if err != nil {
		uc.logger.Errorw("failed to build screening result", "error", err)
		return nil, apperrors.NewInternalError("failed to record screening")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.results.Create(txCtx, result); err != nil {
			return err
		}
		_, err := uc.auditor.Append(txCtx, audit.Record{
			ActorID:    cmd.CallerSID,
			Action:     "neuroscreen.result.create",
			EntityType: "neuroscreen_result",
			EntityID:   result.SID(),
			IP:         cmd.IP,
			Device:     cmd.Device,
			Payload: map[string]any{
				"instrument":         result.InstrumentName(),
				"instrument_version": result.InstrumentVersion(),
				"raw_score":          result.RawScore(),
				"band":               result.Band().String(),
			},
		})
		return err
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to record screening result", "error", err)
		return nil, apperrors.NewInternalError("failed to record screening")
	}

	uc.logger.Infow("screening recorded",
		"result_sid", result.SID(), "band", result.Band().String())

	return &SubmitScreeningResult{
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
