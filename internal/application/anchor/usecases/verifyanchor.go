package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/anchor"
	"github.com/sahay-inc/sahay/internal/domain/complaint"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// VerifyAnchorQuery recomputes a record's hashes from database state and
// compares them with the anchored values. Route-level checks restrict this
// to officers.
type VerifyAnchorQuery struct {
	AnchorSID string
}

type VerifyAnchorResult struct {
	AnchorSID          string  `json:"anchor_sid"`
	ComplaintSID       string  `json:"complaint_sid"`
	ChainStatus        string  `json:"chain_status"`
	TxHash             *string `json:"tx_hash,omitempty"`
	StatusNonce        uint64  `json:"status_nonce"`
	ComplaintHashMatch bool    `json:"complaint_hash_match"`
	SLAHashMatch       bool    `json:"sla_hash_match"`
	StatusHashMatch    bool    `json:"status_hash_match"`
	Valid              bool    `json:"valid"`
	CheckedAt          string  `json:"checked_at"`
}

// VerifyAnchorUseCase checks an anchor record against the complaint it
// seals. The complaint and SLA hashes are recomputed from the filing
// snapshot (submitted at district level, deadline from the rule table), the
// status hash from the complaint's current state. A mismatch means the
// database row drifted from what was sealed, whether by tampering or by a
// rule change since filing.
type VerifyAnchorUseCase struct {
	anchors    anchor.Repository
	complaints ComplaintDirectory
	slaRules   SLARuleDirectory
	logger     logger.Interface
}

func NewVerifyAnchorUseCase(
	anchors anchor.Repository,
	complaints ComplaintDirectory,
	slaRules SLARuleDirectory,
	logger logger.Interface,
) *VerifyAnchorUseCase {
	return &VerifyAnchorUseCase{
		anchors:    anchors,
		complaints: complaints,
		slaRules:   slaRules,
		logger:     logger,
	}
}

func (uc *VerifyAnchorUseCase) Execute(ctx context.Context, query VerifyAnchorQuery) (*VerifyAnchorResult, error) {
	if query.AnchorSID == "" {
		return nil, apperrors.NewValidationError("anchor ID is required")
	}

	record, err := uc.anchors.GetBySID(ctx, query.AnchorSID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.NewInternalError("failed to get anchor record")
	}

	grievance, err := uc.complaints.GetByID(ctx, record.ComplaintID())
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.NewInternalError("failed to get anchored complaint")
	}

	filing := uc.filingInputs(ctx, grievance)
	complaintHash, err := anchor.ComplaintHash(filing)
	if err != nil {
		uc.logger.Errorw("failed to recompute complaint hash",
			"anchor_sid", record.SID(), "error", err)
		return nil, apperrors.NewInternalError("failed to recompute anchor hashes")
	}
	slaHash, err := anchor.SLAHash(filing)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to recompute anchor hashes")
	}
	statusHash, err := anchor.StatusHash(currentInputs(grievance))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to recompute anchor hashes")
	}

	result := &VerifyAnchorResult{
		AnchorSID:          record.SID(),
		ComplaintSID:       grievance.SID(),
		ChainStatus:        record.Status().String(),
		TxHash:             record.TxHash(),
		StatusNonce:        record.StatusNonce(),
		ComplaintHashMatch: complaintHash == record.ComplaintHash(),
		SLAHashMatch:       slaHash == record.SLAHash(),
		StatusHashMatch:    statusHash == record.StatusHash(),
		CheckedAt:          time.Now().Format(time.RFC3339),
	}
	result.Valid = result.ComplaintHashMatch && result.SLAHashMatch && result.StatusHashMatch

	if !result.Valid {
		uc.logger.Warnw("anchor verification mismatch",
			"anchor_sid", record.SID(),
			"complaint_sid", grievance.SID(),
			"complaint_hash_match", result.ComplaintHashMatch,
			"sla_hash_match", result.SLAHashMatch,
			"status_hash_match", result.StatusHashMatch)
	}
	return result, nil
}

// filingInputs rebuilds the snapshot sealed when the complaint was filed:
// submitted at district level, with the deadline the rule table yields for
// the creation timestamp.
func (uc *VerifyAnchorUseCase) filingInputs(ctx context.Context, c *complaint.Complaint) anchor.HashInputs {
	window := complaint.DefaultSLAWindow
	rule, err := uc.slaRules.GetByCategoryAndLevel(ctx, c.Category(), complaint.LevelDistrict)
	if err == nil {
		window = time.Duration(rule.TimeLimitHours()) * time.Hour
	} else if !apperrors.IsNotFoundError(err) {
		uc.logger.Warnw("failed to load SLA rule, verifying with fallback window",
			"category", c.Category().String(), "error", err)
	}

	deadline := c.CreatedAt().Add(window)
	return anchor.HashInputs{
		ComplaintSID: c.SID(),
		Category:     c.Category().String(),
		Status:       complaint.StatusSubmitted.String(),
		Level:        complaint.LevelDistrict.Rank(),
		CreatedAt:    c.CreatedAt(),
		SLADueAt:     &deadline,
	}
}

// currentInputs maps the complaint's present state onto hash inputs. The
// closure timestamp doubles as the resolution timestamp.
func currentInputs(c *complaint.Complaint) anchor.HashInputs {
	deadline := c.SLADeadline()
	return anchor.HashInputs{
		ComplaintSID: c.SID(),
		Category:     c.Category().String(),
		Status:       c.Status().String(),
		Level:        c.EscalationLevel().Rank(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
		SLADueAt:     &deadline,
		ResolvedAt:   c.ClosedAt(),
	}
}
