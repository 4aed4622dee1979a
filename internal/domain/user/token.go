package user

import (
	"fmt"
	"time"
)

// AccessToken is an opaque, revocable bearer token. Only the SHA-256 hash is
// stored; the plain token is shown once at issue time.
type AccessToken struct {
	id         uint
	userID     uint
	tokenHash  string
	expiresAt  time.Time
	revokedAt  *time.Time
	lastUsedAt *time.Time
	createdAt  time.Time
}

// NewAccessToken creates a token record for a freshly issued bearer token.
func NewAccessToken(userID uint, tokenHash string, expiresAt time.Time) (*AccessToken, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if tokenHash == "" {
		return nil, fmt.Errorf("token hash is required")
	}
	if expiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("expiry must be in the future")
	}

	return &AccessToken{
		userID:    userID,
		tokenHash: tokenHash,
		expiresAt: expiresAt,
		createdAt: time.Now(),
	}, nil
}

// ReconstructAccessToken reconstructs a token from persistence.
func ReconstructAccessToken(
	internalID uint,
	userID uint,
	tokenHash string,
	expiresAt time.Time,
	revokedAt, lastUsedAt *time.Time,
	createdAt time.Time,
) (*AccessToken, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("token ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return &AccessToken{
		id:         internalID,
		userID:     userID,
		tokenHash:  tokenHash,
		expiresAt:  expiresAt,
		revokedAt:  revokedAt,
		lastUsedAt: lastUsedAt,
		createdAt:  createdAt,
	}, nil
}

func (t *AccessToken) ID() uint               { return t.id }
func (t *AccessToken) UserID() uint           { return t.userID }
func (t *AccessToken) TokenHash() string      { return t.tokenHash }
func (t *AccessToken) ExpiresAt() time.Time   { return t.expiresAt }
func (t *AccessToken) RevokedAt() *time.Time  { return t.revokedAt }
func (t *AccessToken) LastUsedAt() *time.Time { return t.lastUsedAt }
func (t *AccessToken) CreatedAt() time.Time   { return t.createdAt }

// SetID sets the token ID (only for persistence layer use).
func (t *AccessToken) SetID(internalID uint) error {
	if t.id != 0 {
		return fmt.Errorf("token ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("token ID cannot be zero")
	}
	t.id = internalID
	return nil
}

// IsValid reports whether the token is usable at the given instant.
func (t *AccessToken) IsValid(now time.Time) bool {
	if t.revokedAt != nil {
		return false
	}
	return now.Before(t.expiresAt)
}

// Revoke invalidates the token. Revoking twice is a no-op.
func (t *AccessToken) Revoke() {
	if t.revokedAt != nil {
		return
	}
	now := time.Now()
	t.revokedAt = &now
}

// Touch records token use for idle-session reporting.
func (t *AccessToken) Touch(now time.Time) {
	t.lastUsedAt = &now
}
