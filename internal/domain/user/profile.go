package user

import (
	"fmt"
	"strings"
	"time"
)

// Profile holds the citizen-editable profile fields synced from devices.
// Concurrent writes resolve by last-write-wins on the client-asserted
// timestamp, with the event ID as a stable tie-break, so every replica
// converges on the same winner regardless of arrival order.
type Profile struct {
	id          uint
	userID      uint
	nameAlias   string
	dob         string
	sex         string
	pincode     string
	clientTime  time.Time
	lastEventID string
	updatedAt   time.Time
}

// NewProfile creates an empty profile for a freshly registered user.
func NewProfile(userID uint) (*Profile, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return &Profile{
		userID:    userID,
		updatedAt: time.Now(),
	}, nil
}

// ReconstructProfile reconstructs a profile from persistence.
func ReconstructProfile(
	internalID uint,
	userID uint,
	nameAlias, dob, sex, pincode string,
	clientTime time.Time,
	lastEventID string,
	updatedAt time.Time,
) (*Profile, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("profile ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return &Profile{
		id:          internalID,
		userID:      userID,
		nameAlias:   nameAlias,
		dob:         dob,
		sex:         sex,
		pincode:     pincode,
		clientTime:  clientTime,
		lastEventID: lastEventID,
		updatedAt:   updatedAt,
	}, nil
}

func (p *Profile) ID() uint              { return p.id }
func (p *Profile) UserID() uint          { return p.userID }
func (p *Profile) NameAlias() string     { return p.nameAlias }
func (p *Profile) DOB() string           { return p.dob }
func (p *Profile) Sex() string           { return p.sex }
func (p *Profile) Pincode() string       { return p.pincode }
func (p *Profile) ClientTime() time.Time { return p.clientTime }
func (p *Profile) LastEventID() string   { return p.lastEventID }
func (p *Profile) UpdatedAt() time.Time  { return p.updatedAt }

// SetID sets the profile ID (only for persistence layer use).
func (p *Profile) SetID(internalID uint) error {
	if p.id != 0 {
		return fmt.Errorf("profile ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("profile ID cannot be zero")
	}
	p.id = internalID
	return nil
}

// ProfileUpdate carries the synced fields of a profile write.
type ProfileUpdate struct {
	NameAlias string
	DOB       string
	Sex       string
	Pincode   string
}

// Accepts reports whether a write stamped with clientTime/eventID wins over
// the current state. A strictly newer clientTime always wins; an equal
// clientTime falls back to lexicographic comparison of event IDs so replays
// and races resolve identically everywhere.
func (p *Profile) Accepts(clientTime time.Time, eventID string) bool {
	if clientTime.After(p.clientTime) {
		return true
	}
	if clientTime.Equal(p.clientTime) {
		return strings.Compare(eventID, p.lastEventID) > 0
	}
	return false
}

// Apply applies a winning write. Callers must check Accepts first;
// a losing write returns an error and leaves the profile unchanged.
func (p *Profile) Apply(update ProfileUpdate, clientTime time.Time, eventID string) error {
	if !p.Accepts(clientTime, eventID) {
		return fmt.Errorf("stale profile write: client time %s does not supersede %s",
			clientTime.Format(time.RFC3339), p.clientTime.Format(time.RFC3339))
	}
	p.nameAlias = update.NameAlias
	p.dob = update.DOB
	p.sex = update.Sex
	p.pincode = update.Pincode
	p.clientTime = clientTime
	p.lastEventID = eventID
	p.updatedAt = time.Now()
	return nil
}

// Scrub blanks identifying fields during right-to-erasure.
func (p *Profile) Scrub() {
	p.nameAlias = ""
	p.dob = ""
	p.sex = ""
	p.pincode = ""
	p.updatedAt = time.Now()
}
