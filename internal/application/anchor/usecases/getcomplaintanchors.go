package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/anchor"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// GetComplaintAnchorsQuery reads the anchor trail of one complaint. Owners
// see their own; officer callers see any.
type GetComplaintAnchorsQuery struct {
	CallerID        uint
	CallerIsOfficer bool
	ComplaintSID    string
}

// AnchorView is one anchor record as exposed to callers. Hashes and the
// transaction reference are public by design; they carry no payload data.
type AnchorView struct {
	AnchorSID     string  `json:"anchor_sid"`
	Operation     string  `json:"operation"`
	ChainStatus   string  `json:"chain_status"`
	StatusNonce   uint64  `json:"status_nonce"`
	ComplaintHash string  `json:"complaint_hash"`
	SLAHash       string  `json:"sla_hash"`
	StatusHash    string  `json:"status_hash"`
	TxHash        *string `json:"tx_hash,omitempty"`
	Attempts      int     `json:"attempts"`
	LastError     *string `json:"last_error,omitempty"`
	NextAttemptAt *string `json:"next_attempt_at,omitempty"`
	AnchoredAt    *string `json:"anchored_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type ComplaintAnchorsResult struct {
	ComplaintSID string       `json:"complaint_sid"`
	Anchors      []AnchorView `json:"anchors"`
}

type GetComplaintAnchorsUseCase struct {
	anchors    anchor.Repository
	complaints ComplaintDirectory
	logger     logger.Interface
}

func NewGetComplaintAnchorsUseCase(
	anchors anchor.Repository,
	complaints ComplaintDirectory,
	logger logger.Interface,
) *GetComplaintAnchorsUseCase {
	return &GetComplaintAnchorsUseCase{
		anchors:    anchors,
		complaints: complaints,
		logger:     logger,
	}
}

func (uc *GetComplaintAnchorsUseCase) Execute(ctx context.Context, query GetComplaintAnchorsQuery) (*ComplaintAnchorsResult, error) {
	if query.CallerID == 0 {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}
	if query.ComplaintSID == "" {
		return nil, apperrors.NewValidationError("complaint ID is required")
	}

	grievance, err := uc.complaints.GetBySID(ctx, query.ComplaintSID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.NewInternalError("failed to get complaint")
	}
	if !query.CallerIsOfficer && !grievance.CanBeViewedBy(query.CallerID) {
		return nil, apperrors.NewForbiddenError("access denied")
	}

	result := &ComplaintAnchorsResult{
		ComplaintSID: grievance.SID(),
		Anchors:      []AnchorView{},
	}

	record, err := uc.anchors.GetByComplaintID(ctx, grievance.ID())
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return result, nil
		}
		uc.logger.Errorw("failed to get anchor record",
			"complaint_sid", grievance.SID(), "error", err)
		return nil, apperrors.NewInternalError("failed to get anchor records")
	}

	result.Anchors = append(result.Anchors, anchorView(record))
	return result, nil
}

func anchorView(record *anchor.Record) AnchorView {
	view := AnchorView{
		AnchorSID:     record.SID(),
		Operation:     string(record.Operation()),
		ChainStatus:   record.Status().String(),
		StatusNonce:   record.StatusNonce(),
		ComplaintHash: record.ComplaintHash(),
		SLAHash:       record.SLAHash(),
		StatusHash:    record.StatusHash(),
		TxHash:        record.TxHash(),
		Attempts:      record.Attempts(),
		LastError:     record.LastError(),
		CreatedAt:     record.CreatedAt().Format(time.RFC3339),
		UpdatedAt:     record.UpdatedAt().Format(time.RFC3339),
	}
	if next := record.NextAttemptAt(); next != nil {
		formatted := next.Format(time.RFC3339)
		view.NextAttemptAt = &formatted
	}
	if anchored := record.AnchoredAt(); anchored != nil {
		formatted := anchored.Format(time.RFC3339)
		view.AnchoredAt = &formatted
	}
	return view
}
