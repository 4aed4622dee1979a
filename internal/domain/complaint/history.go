package complaint

import (
	"fmt"
	"time"
)

// StatusChange is one entry in a complaint's status history. Automatic
// escalations carry a nil actor.
type StatusChange struct {
	id               uint
	complaintID      uint
	oldStatus        Status
	newStatus        Status
	oldLevel         EscalationLevel
	newLevel         EscalationLevel
	changedByUserID  *uint
	reason           string
	isAutoEscalation bool
	createdAt        time.Time
}

// NewStatusChange records a status or level transition.
func NewStatusChange(
	complaintID uint,
	oldStatus, newStatus Status,
	oldLevel, newLevel EscalationLevel,
	changedByUserID *uint,
	reason string,
	isAutoEscalation bool,
) (*StatusChange, error) {
	if complaintID == 0 {
		return nil, fmt.Errorf("complaint ID is required")
	}
	if !oldStatus.IsValid() || !newStatus.IsValid() {
		return nil, fmt.Errorf("invalid status in change record")
	}
	if !oldLevel.IsValid() || !newLevel.IsValid() {
		return nil, fmt.Errorf("invalid escalation level in change record")
	}
	if isAutoEscalation && changedByUserID != nil {
		return nil, fmt.Errorf("automatic escalations cannot carry an actor")
	}

	return &StatusChange{
		complaintID:      complaintID,
		oldStatus:        oldStatus,
		newStatus:        newStatus,
		oldLevel:         oldLevel,
		newLevel:         newLevel,
		changedByUserID:  changedByUserID,
		reason:           reason,
		isAutoEscalation: isAutoEscalation,
		createdAt:        time.Now(),
	}, nil
}

// ReconstructStatusChange reconstructs a history entry from persistence.
func ReconstructStatusChange(
	internalID uint,
	complaintID uint,
	oldStatus, newStatus Status,
	oldLevel, newLevel EscalationLevel,
	changedByUserID *uint,
	reason string,
	isAutoEscalation bool,
	createdAt time.Time,
) (*StatusChange, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("status change ID cannot be zero")
	}
	return &StatusChange{
		id:               internalID,
		complaintID:      complaintID,
		oldStatus:        oldStatus,
		newStatus:        newStatus,
		oldLevel:         oldLevel,
		newLevel:         newLevel,
		changedByUserID:  changedByUserID,
		reason:           reason,
		isAutoEscalation: isAutoEscalation,
		createdAt:        createdAt,
	}, nil
}

func (s *StatusChange) ID() uint                  { return s.id }
func (s *StatusChange) ComplaintID() uint         { return s.complaintID }
func (s *StatusChange) OldStatus() Status         { return s.oldStatus }
func (s *StatusChange) NewStatus() Status         { return s.newStatus }
func (s *StatusChange) OldLevel() EscalationLevel { return s.oldLevel }
func (s *StatusChange) NewLevel() EscalationLevel { return s.newLevel }
func (s *StatusChange) ChangedByUserID() *uint    { return s.changedByUserID }
func (s *StatusChange) Reason() string            { return s.reason }
func (s *StatusChange) IsAutoEscalation() bool    { return s.isAutoEscalation }
func (s *StatusChange) CreatedAt() time.Time      { return s.createdAt }

// SetID sets the entry ID (only for persistence layer use).
func (s *StatusChange) SetID(internalID uint) error {
	if s.id != 0 {
		return fmt.Errorf("status change ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("status change ID cannot be zero")
	}
	s.id = internalID
	return nil
}
