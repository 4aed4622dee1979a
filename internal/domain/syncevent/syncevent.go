// Package syncevent models the offline-first ingestion log. Every envelope a
// device uploads is recorded exactly once, keyed by its globally unique event
// ID; replays are answered from the log without touching domain state.
package syncevent

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EntityType is a syncable entity kind.
type EntityType string

const (
	EntityProfile EntityType = "profile"
	EntityVitals  EntityType = "vitals"
	EntityMood    EntityType = "mood"
	EntityWater   EntityType = "water"
)

var validEntityTypes = map[EntityType]bool{
	EntityProfile: true,
	EntityVitals:  true,
	EntityMood:    true,
	EntityWater:   true,
}

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool { return validEntityTypes[e] }

// IsAppendOnly reports whether the entity accepts only CREATE operations.
func (e EntityType) IsAppendOnly() bool {
	return e == EntityVitals || e == EntityMood || e == EntityWater
}

// Operation is the requested mutation kind.
type Operation string

const (
	OpCreate Operation = "CREATE"
	OpUpdate Operation = "UPDATE"
	OpDelete Operation = "DELETE"
)

var validOperations = map[Operation]bool{
	OpCreate: true,
	OpUpdate: true,
	OpDelete: true,
}

func (o Operation) String() string { return string(o) }

func (o Operation) IsValid() bool { return validOperations[o] }

// Event is one persisted sync envelope with its processing outcome.
type Event struct {
	id         uint
	eventID    string
	deviceID   string
	userID     uint
	entityType EntityType
	operation  Operation
	clientTime time.Time
	serverTime time.Time
	payload    map[string]any
	outcome    Outcome
	serverID   string
}

// NewEvent records an incoming envelope. The outcome is set after the
// operation is applied (or rejected) in the same transaction.
func NewEvent(
	eventID string,
	deviceID string,
	userID uint,
	entityType EntityType,
	operation Operation,
	clientTime time.Time,
	payload map[string]any,
) (*Event, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return nil, fmt.Errorf("event ID must be a UUID: %w", err)
	}
	if deviceID == "" {
		return nil, fmt.Errorf("device ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !entityType.IsValid() {
		return nil, fmt.Errorf("unsupported entity type: %s", entityType)
	}
	if !operation.IsValid() {
		return nil, fmt.Errorf("unsupported operation: %s", operation)
	}
	if clientTime.IsZero() {
		return nil, fmt.Errorf("client time is required")
	}

	return &Event{
		eventID:    eventID,
		deviceID:   deviceID,
		userID:     userID,
		entityType: entityType,
		operation:  operation,
		clientTime: clientTime.UTC(),
		serverTime: time.Now().UTC(),
		payload:    payload,
	}, nil
}

// ReconstructEvent reconstructs a sync event from persistence.
func ReconstructEvent(
	internalID uint,
	eventID string,
	deviceID string,
	userID uint,
	entityType EntityType,
	operation Operation,
	clientTime time.Time,
	serverTime time.Time,
	payload map[string]any,
	outcome Outcome,
	serverID string,
) (*Event, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("sync event ID cannot be zero")
	}
	return &Event{
		id:         internalID,
		eventID:    eventID,
		deviceID:   deviceID,
		userID:     userID,
		entityType: entityType,
		operation:  operation,
		clientTime: clientTime,
		serverTime: serverTime,
		payload:    payload,
		outcome:    outcome,
		serverID:   serverID,
	}, nil
}

func (e *Event) ID() uint               { return e.id }
func (e *Event) EventID() string        { return e.eventID }
func (e *Event) DeviceID() string       { return e.deviceID }
func (e *Event) UserID() uint           { return e.userID }
func (e *Event) EntityType() EntityType { return e.entityType }
func (e *Event) Operation() Operation   { return e.operation }
func (e *Event) ClientTime() time.Time  { return e.clientTime }
func (e *Event) ServerTime() time.Time  { return e.serverTime }
func (e *Event) Outcome() Outcome       { return e.outcome }
func (e *Event) ServerID() string       { return e.serverID }

// Payload returns a copy of the envelope payload.
func (e *Event) Payload() map[string]any {
	if e.payload == nil {
		return nil
	}
	cp := make(map[string]any, len(e.payload))
	for k, v := range e.payload {
		cp[k] = v
	}
	return cp
}

// SetID sets the event ID (only for persistence layer use).
func (e *Event) SetID(internalID uint) error {
	if e.id != 0 {
		return fmt.Errorf("sync event ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("sync event ID cannot be zero")
	}
	e.id = internalID
	return nil
}

// Resolve records the processing outcome. serverID identifies the domain row
// an accepted CREATE produced; it is empty for rejections.
func (e *Event) Resolve(outcome Outcome, serverID string) error {
	if e.outcome != "" {
		return fmt.Errorf("outcome is already set")
	}
	if !outcome.IsValid() {
		return fmt.Errorf("invalid outcome: %s", outcome)
	}
	e.outcome = outcome
	e.serverID = serverID
	return nil
}
