// Package consent models versioned consent receipts. A change of mind is a
// new record, never an update; the current state for a (user, category, scope)
// triple is its newest record. Checks always read committed rows so a revoke
// is visible on the very next check.
package consent

import (
	"fmt"
	"time"

	"github.com/sahay-inc/sahay/internal/shared/id"
)

// Record is one immutable consent receipt.
type Record struct {
	id              uint
	sid             string
	userID          uint
	category        Category
	scope           Scope
	documentVersion string
	granted         bool
	grantedAt       time.Time
	createdAt       time.Time
}

// NewRecord creates a consent receipt for a grant or revoke decision.
func NewRecord(userID uint, category Category, scope Scope, documentVersion string, granted bool) (*Record, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid consent category: %s", category)
	}
	if !scope.IsValid() {
		return nil, fmt.Errorf("invalid consent scope: %s", scope)
	}
	if documentVersion == "" {
		return nil, fmt.Errorf("document version is required")
	}

	sid, err := id.NewConsentID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate consent ID: %w", err)
	}

	now := time.Now()
	return &Record{
		sid:             sid,
		userID:          userID,
		category:        category,
		scope:           scope,
		documentVersion: documentVersion,
		granted:         granted,
		grantedAt:       now,
		createdAt:       now,
	}, nil
}

// ReconstructRecord reconstructs a consent receipt from persistence.
func ReconstructRecord(
	internalID uint,
	sid string,
	userID uint,
	category Category,
	scope Scope,
	documentVersion string,
	granted bool,
	grantedAt time.Time,
	createdAt time.Time,
) (*Record, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("consent record ID cannot be zero")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid consent category: %s", category)
	}
	if !scope.IsValid() {
		return nil, fmt.Errorf("invalid consent scope: %s", scope)
	}
	return &Record{
		id:              internalID,
		sid:             sid,
		userID:          userID,
		category:        category,
		scope:           scope,
		documentVersion: documentVersion,
		granted:         granted,
		grantedAt:       grantedAt,
		createdAt:       createdAt,
	}, nil
}

func (r *Record) ID() uint                { return r.id }
func (r *Record) SID() string             { return r.sid }
func (r *Record) UserID() uint            { return r.userID }
func (r *Record) Category() Category      { return r.category }
func (r *Record) Scope() Scope            { return r.scope }
func (r *Record) DocumentVersion() string { return r.documentVersion }
func (r *Record) Granted() bool           { return r.granted }
func (r *Record) GrantedAt() time.Time    { return r.grantedAt }
func (r *Record) CreatedAt() time.Time    { return r.createdAt }

// SetID sets the record ID (only for persistence layer use).
func (r *Record) SetID(internalID uint) error {
	if r.id != 0 {
		return fmt.Errorf("consent record ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("consent record ID cannot be zero")
	}
	r.id = internalID
	return nil
}

// GrantsUnder reports whether this receipt represents an effective grant
// under the given consent document version. Receipts taken under an older
// document version no longer count; the user must re-consent.
func (r *Record) GrantsUnder(currentDocumentVersion string) bool {
	return r.granted && r.documentVersion == currentDocumentVersion
}
