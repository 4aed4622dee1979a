package anchor

import (
	"fmt"
	"time"

	"github.com/sahay-inc/sahay/internal/shared/canonicaljson"
	"github.com/sahay-inc/sahay/internal/shared/constants"
	"github.com/sahay-inc/sahay/internal/shared/privacy"
)

// HashInputs is the non-identifying complaint snapshot the anchor hashes are
// derived from. The short ID is the only reference; no submitter data, free
// text, or contact detail may appear here.
type HashInputs struct {
	ComplaintSID string
	Category     string
	Status       string
	Level        int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	SLADueAt     *time.Time
	ResolvedAt   *time.Time
}

// ComplaintHash seals the complaint's identity-free metadata.
func ComplaintHash(in HashInputs) (string, error) {
	return hashPayload(map[string]any{
		"complaint_ref": in.ComplaintSID,
		"category":      in.Category,
		"status":        in.Status,
		"current_level": in.Level,
		"created_at":    formatTS(in.CreatedAt),
		"sla_due_at":    formatTSPtr(in.SLADueAt),
		"version":       constants.AnchorVersion,
	})
}

// StatusHash seals the complaint's current state for updateStatus calls.
func StatusHash(in HashInputs) (string, error) {
	return hashPayload(map[string]any{
		"complaint_ref": in.ComplaintSID,
		"status":        in.Status,
		"current_level": in.Level,
		"updated_at":    formatTS(in.UpdatedAt),
		"resolved_at":   formatTSPtr(in.ResolvedAt),
		"version":       constants.AnchorVersion,
	})
}

// SLAHash seals the SLA parameters in force for the complaint.
func SLAHash(in HashInputs) (string, error) {
	return hashPayload(map[string]any{
		"complaint_ref": in.ComplaintSID,
		"category":      in.Category,
		"current_level": in.Level,
		"sla_due_at":    formatTSPtr(in.SLADueAt),
		"created_at":    formatTS(in.CreatedAt),
		"version":       constants.AnchorVersion,
	})
}

func hashPayload(payload map[string]any) (string, error) {
	if err := privacy.ValidatePayloadKeys(payload); err != nil {
		return "", fmt.Errorf("refusing to hash payload: %w", err)
	}
	digest, err := canonicaljson.HashHex(payload)
	if err != nil {
		return "", fmt.Errorf("failed to hash anchor payload: %w", err)
	}
	return digest, nil
}

func formatTS(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTSPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTS(*t)
}
