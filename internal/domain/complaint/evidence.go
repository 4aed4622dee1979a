package complaint

import (
	"fmt"
	"regexp"
	"time"

	"github.com/sahay-inc/sahay/internal/shared/id"
)

var sha256HexPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Evidence is one uploaded attachment on a complaint. The file itself lives
// in object storage under a non-guessable key; the record keeps the SHA-256
// of the content for integrity checks.
type Evidence struct {
	id          uint
	sid         string
	complaintID uint
	objectKey   string
	contentHash string
	contentType string
	sizeBytes   int64
	createdAt   time.Time
}

// NewEvidence registers an uploaded attachment.
func NewEvidence(complaintID uint, objectKey, contentHash, contentType string, sizeBytes int64) (*Evidence, error) {
	if complaintID == 0 {
		return nil, fmt.Errorf("complaint ID is required")
	}
	if objectKey == "" {
		return nil, fmt.Errorf("object key is required")
	}
	if !sha256HexPattern.MatchString(contentHash) {
		return nil, fmt.Errorf("content hash must be a lowercase SHA-256 hex digest")
	}
	if sizeBytes <= 0 {
		return nil, fmt.Errorf("size must be positive, got %d", sizeBytes)
	}

	sid, err := id.NewEvidenceID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate evidence ID: %w", err)
	}

	return &Evidence{
		sid:         sid,
		complaintID: complaintID,
		objectKey:   objectKey,
		contentHash: contentHash,
		contentType: contentType,
		sizeBytes:   sizeBytes,
		createdAt:   time.Now(),
	}, nil
}

// ReconstructEvidence reconstructs an evidence record from persistence.
func ReconstructEvidence(
	internalID uint,
	sid string,
	complaintID uint,
	objectKey, contentHash, contentType string,
	sizeBytes int64,
	createdAt time.Time,
) (*Evidence, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("evidence ID cannot be zero")
	}
	return &Evidence{
		id:          internalID,
		sid:         sid,
		complaintID: complaintID,
		objectKey:   objectKey,
		contentHash: contentHash,
		contentType: contentType,
		sizeBytes:   sizeBytes,
		createdAt:   createdAt,
	}, nil
}

func (e *Evidence) ID() uint             { return e.id }
func (e *Evidence) SID() string          { return e.sid }
func (e *Evidence) ComplaintID() uint    { return e.complaintID }
func (e *Evidence) ObjectKey() string    { return e.objectKey }
func (e *Evidence) ContentHash() string  { return e.contentHash }
func (e *Evidence) ContentType() string  { return e.contentType }
func (e *Evidence) SizeBytes() int64     { return e.sizeBytes }
func (e *Evidence) CreatedAt() time.Time { return e.createdAt }

// SetID sets the evidence ID (only for persistence layer use).
func (e *Evidence) SetID(internalID uint) error {
	if e.id != 0 {
		return fmt.Errorf("evidence ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("evidence ID cannot be zero")
	}
	e.id = internalID
	return nil
}

// Matches verifies a computed digest against the stored content hash.
func (e *Evidence) Matches(contentHash string) bool {
	return e.contentHash == contentHash
}
