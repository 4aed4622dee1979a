package usecases

import (
	"context"

	"github.com/sahay-inc/sahay/internal/domain/anchor"
	"github.com/sahay-inc/sahay/internal/domain/complaint"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// anchorInputs maps a complaint onto the identity-free snapshot the anchor
// hashes are computed from. The closure timestamp doubles as the resolution
// timestamp; before closure the field is absent.
func anchorInputs(c *complaint.Complaint) anchor.HashInputs {
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

// queueStatusAnchor re-seals the complaint's status hash after a lifecycle
// change. Confirmed records get a fresh update queued; still-pending records
// have their queued hash replaced in place. In-flight and failed records are
// left alone so the submit job stays the only writer during a submission.
func queueStatusAnchor(ctx context.Context, anchors anchor.Repository, c *complaint.Complaint, log logger.Interface) error {
	record, err := anchors.GetByComplaintID(ctx, c.ID())
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			log.Warnw("complaint has no anchor record, status hash not queued", "complaint_sid", c.SID())
			return nil
		}
		return err
	}

	statusHash, err := anchor.StatusHash(anchorInputs(c))
	if err != nil {
		return err
	}

	switch record.Status() {
	case anchor.StatusConfirmed:
		if err := record.QueueStatusUpdate(statusHash, c.UpdatedAt()); err != nil {
			return err
		}
	case anchor.StatusPending:
		if err := record.RefreshQueued(statusHash, c.UpdatedAt()); err != nil {
			return err
		}
	default:
		log.Warnw("anchor record busy, status hash not queued",
			"complaint_sid", c.SID(), "anchor_status", record.Status().String())
		return nil
	}

	return anchors.Update(ctx, record)
}
