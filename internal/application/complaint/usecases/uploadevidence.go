package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/complaint"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// maxEvidenceSize bounds a single attachment.
const maxEvidenceSize = 10 << 20

var allowedEvidenceTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
	"audio/mpeg":      true,
	"video/mp4":       true,
}

// UploadEvidenceCommand attaches content to a complaint. The submitter may
// upload to their own complaints; anonymous complaints accept evidence from
// any authenticated caller since nobody owns them.
type UploadEvidenceCommand struct {
	CallerID     uint
	CallerSID    string
	ComplaintSID string
	Content      []byte
	ContentType  string
	IP           string
	Device       string
}

type UploadEvidenceResult struct {
	EvidenceSID  string `json:"evidence_sid"`
	ComplaintSID string `json:"complaint_sid"`
	ContentHash  string `json:"content_hash"`
	ContentType  string `json:"content_type"`
	SizeBytes    int64  `json:"size_bytes"`
	CreatedAt    string `json:"created_at"`
}

type UploadEvidenceUseCase struct {
	complaints complaint.Repository
	evidences  complaint.EvidenceRepository
	store      complaint.EvidenceStore
	txManager  TransactionManager
	auditor    AuditAppender
	logger     logger.Interface
}

func NewUploadEvidenceUseCase(
	complaints complaint.Repository,
	evidences complaint.EvidenceRepository,
	store complaint.EvidenceStore,
	txManager TransactionManager,
	auditor AuditAppender,
	logger logger.Interface,
) *UploadEvidenceUseCase {
	return &UploadEvidenceUseCase{
		complaints: complaints,
		evidences:  evidences,
		store:      store,
		txManager:  txManager,
		auditor:    auditor,
		logger:     logger,
	}
}

func (uc *UploadEvidenceUseCase) Execute(ctx context.Context, cmd UploadEvidenceCommand) (*UploadEvidenceResult, error) {
	uc.logger.Infow("executing upload evidence use case",
		"complaint_sid", cmd.ComplaintSID, "content_type", cmd.ContentType, "size", len(cmd.Content))

	if cmd.CallerID == 0 {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}
	if cmd.ComplaintSID == "" {
		return nil, apperrors.NewValidationError("complaint ID is required")
	}
	if len(cmd.Content) == 0 {
		return nil, apperrors.NewValidationError("evidence content is required")
	}
	if len(cmd.Content) > maxEvidenceSize {
		return nil, apperrors.NewValidationError("evidence exceeds maximum size")
	}
	if !allowedEvidenceTypes[cmd.ContentType] {
		return nil, apperrors.NewValidationError("unsupported evidence content type: " + cmd.ContentType)
	}

	grievance, err := uc.complaints.GetBySID(ctx, cmd.ComplaintSID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.NewInternalError("failed to get complaint")
	}
	if !grievance.IsAnonymous() && !grievance.CanBeViewedBy(cmd.CallerID) {
		return nil, apperrors.NewForbiddenError("access denied")
	}

	objectKey, contentHash, err := uc.store.Put(ctx, cmd.Content)
	if err != nil {
		uc.logger.Errorw("failed to store evidence content",
			"complaint_sid", grievance.SID(), "error", err)
		return nil, apperrors.NewInternalError("failed to store evidence")
	}

	evidence, err := complaint.NewEvidence(grievance.ID(), objectKey, contentHash, cmd.ContentType, int64(len(cmd.Content)))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to record evidence")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.evidences.Create(txCtx, evidence); err != nil {
			return err
		}

		_, err := uc.auditor.Append(txCtx, audit.Record{
			ActorID:    cmd.CallerSID,
			Action:     "complaint.evidence_add",
			EntityType: "evidence",
			EntityID:   evidence.SID(),
			IP:         cmd.IP,
			Device:     cmd.Device,
			Payload: map[string]any{
				"complaint":    grievance.SID(),
				"content_type": evidence.ContentType(),
				"size_bytes":   evidence.SizeBytes(),
				"content_hash": evidence.ContentHash(),
			},
		})
		return err
	})
	if err != nil {
		// Object keys are content-derived and shared across uploads, so the
		// stored bytes are left in place for a later retry.
		uc.logger.Errorw("failed to record evidence",
			"complaint_sid", grievance.SID(), "object_key", objectKey, "error", err)
		return nil, apperrors.NewInternalError("failed to record evidence")
	}

	uc.logger.Infow("evidence attached",
		"complaint_sid", grievance.SID(), "evidence_sid", evidence.SID(), "size_bytes", evidence.SizeBytes())

	return &UploadEvidenceResult{
		EvidenceSID:  evidence.SID(),
		ComplaintSID: grievance.SID(),
		ContentHash:  evidence.ContentHash(),
		ContentType:  evidence.ContentType(),
		SizeBytes:    evidence.SizeBytes(),
		CreatedAt:    evidence.CreatedAt().Format(time.RFC3339),
	}, nil
}
