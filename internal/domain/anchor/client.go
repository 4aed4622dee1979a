// Package anchor models hash-only blockchain anchoring of complaints.
// Everything that reaches the chain is a 32-byte digest; the off-chain
// workflow never blocks on chain availability.
package anchor

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Chain errors the retry worker distinguishes. Infrastructure adapters map
// transport and contract failures onto these.
var (
	// ErrInvalidNonce means the contract rejected the submitted nonce.
	// The caller should read the on-chain nonce and retry with onchain+1.
	ErrInvalidNonce = errors.New("anchor: invalid nonce")
	// ErrChainUnavailable means the chain gateway cannot be reached.
	ErrChainUnavailable = errors.New("anchor: chain unavailable")
	// ErrAnchorNotFound means no anchor exists on-chain for the hash.
	ErrAnchorNotFound = errors.New("anchor: not found on chain")
)

const (
	// CreatedAtMaxAge bounds how far in the past an anchor createdAt may lie.
	CreatedAtMaxAge = 30 * 24 * time.Hour
	// CreatedAtMaxSkew bounds how far in the future an anchor createdAt may lie.
	CreatedAtMaxSkew = time.Hour
)

var hashHexPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// ValidHash reports whether s is a lowercase hex encoding of 32 bytes.
func ValidHash(s string) bool {
	return hashHexPattern.MatchString(s)
}

// CreateRequest carries the createAnchor contract call parameters.
type CreateRequest struct {
	ComplaintHash string
	SLAHash       string
	StatusHash    string
	CreatedAt     time.Time
	Nonce         uint64
}

// Validate checks hash formats and the createdAt window against now.
func (r CreateRequest) Validate(now time.Time) error {
	if !ValidHash(r.ComplaintHash) {
		return fmt.Errorf("complaint hash must be 32 bytes hex")
	}
	if !ValidHash(r.SLAHash) {
		return fmt.Errorf("sla hash must be 32 bytes hex")
	}
	if !ValidHash(r.StatusHash) {
		return fmt.Errorf("status hash must be 32 bytes hex")
	}
	if r.Nonce == 0 {
		return fmt.Errorf("nonce must be positive")
	}
	if r.CreatedAt.Before(now.Add(-CreatedAtMaxAge)) {
		return fmt.Errorf("createdAt is older than %s", CreatedAtMaxAge)
	}
	if r.CreatedAt.After(now.Add(CreatedAtMaxSkew)) {
		return fmt.Errorf("createdAt is more than %s in the future", CreatedAtMaxSkew)
	}
	return nil
}

// UpdateRequest carries the updateStatus contract call parameters.
type UpdateRequest struct {
	ComplaintHash string
	StatusHash    string
	UpdatedAt     time.Time
	Nonce         uint64
}

// Validate checks hash formats and the nonce.
func (r UpdateRequest) Validate() error {
	if !ValidHash(r.ComplaintHash) {
		return fmt.Errorf("complaint hash must be 32 bytes hex")
	}
	if !ValidHash(r.StatusHash) {
		return fmt.Errorf("status hash must be 32 bytes hex")
	}
	if r.Nonce == 0 {
		return fmt.Errorf("nonce must be positive")
	}
	if r.UpdatedAt.IsZero() {
		return fmt.Errorf("updatedAt is required")
	}
	return nil
}

// ChainClient is the port to the anchor contract gateway.
type ChainClient interface {
	CreateAnchor(ctx context.Context, req CreateRequest) (txHash string, err error)
	UpdateStatus(ctx context.Context, req UpdateRequest) (txHash string, err error)
	// CurrentNonce reads the on-chain nonce for a complaint hash, used to
	// recover from ErrInvalidNonce.
	CurrentNonce(ctx context.Context, complaintHash string) (uint64, error)
}
