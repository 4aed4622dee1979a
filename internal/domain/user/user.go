package user

import (
	"fmt"
	"time"

	"github.com/sahay-inc/sahay/internal/shared/id"
)

// User represents the user aggregate root (pure domain model without persistence concerns).
// Identity is a phone number or, for assisted registrations, an alias handle.
type User struct {
	id           uint
	sid          string
	phone        *string
	alias        string
	passwordHash string
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
	version      int
}

// NewUser creates a new user aggregate with initial values.
// Either phone or alias must be present; phone-less users are assisted
// registrations created by an ASHA worker.
func NewUser(phone *string, alias string, passwordHash string) (*User, error) {
	if (phone == nil || *phone == "") && alias == "" {
		return nil, fmt.Errorf("phone or alias is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	sid, err := id.NewUserID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	now := time.Now()
	return &User{
		sid:          sid,
		phone:        phone,
		alias:        alias,
		passwordHash: passwordHash,
		status:       StatusActive,
		createdAt:    now,
		updatedAt:    now,
		version:      1,
	}, nil
}

// ReconstructUser reconstructs a user from persistence.
func ReconstructUser(
	internalID uint,
	sid string,
	phone *string,
	alias string,
	passwordHash string,
	status Status,
	createdAt, updatedAt time.Time,
	version int,
) (*User, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("user SID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &User{
		id:           internalID,
		sid:          sid,
		phone:        phone,
		alias:        alias,
		passwordHash: passwordHash,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		version:      version,
	}, nil
}

func (u *User) ID() uint             { return u.id }
func (u *User) SID() string          { return u.sid }
func (u *User) Alias() string        { return u.alias }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Status() Status       { return u.status }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
func (u *User) Version() int         { return u.version }

// Phone returns the user's phone number, or nil for alias-only users.
func (u *User) Phone() *string {
	if u.phone == nil {
		return nil
	}
	p := *u.phone
	return &p
}

// SetID sets the user ID (only for persistence layer use).
func (u *User) SetID(internalID uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = internalID
	return nil
}

// ChangePassword replaces the stored password hash.
func (u *User) ChangePassword(newHash string) error {
	if newHash == "" {
		return fmt.Errorf("password hash cannot be empty")
	}
	u.passwordHash = newHash
	u.updatedAt = time.Now()
	u.version++
	return nil
}

// Deactivate disables the account without destroying any data.
func (u *User) Deactivate() error {
	if err := u.status.TransitionTo(StatusDeactivated); err != nil {
		return err
	}
	u.updatedAt = time.Now()
	u.version++
	return nil
}

// Reactivate re-enables a deactivated account.
func (u *User) Reactivate() error {
	if err := u.status.TransitionTo(StatusActive); err != nil {
		return err
	}
	u.updatedAt = time.Now()
	u.version++
	return nil
}

// Erase applies the right to erasure: identifying fields are scrubbed and the
// account becomes terminal. Owned rows cascade at the persistence layer;
// de-identified analytics rows are retained.
func (u *User) Erase() error {
	if u.status.IsErased() {
		return fmt.Errorf("user is already erased")
	}
	u.phone = nil
	u.alias = ""
	u.passwordHash = ""
	u.status = StatusErased
	u.updatedAt = time.Now()
	u.version++
	return nil
}

// CanAuthenticate reports whether login is currently allowed for this account.
func (u *User) CanAuthenticate() bool {
	return u.status.IsActive() && u.passwordHash != ""
}
