// Package analytics implements the de-identified event pipeline: payload
// validation against the privacy policy, demographic bucketing, in-memory
// aggregation, and the k-anonymity floor applied to every read.
package analytics

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sahay-inc/sahay/internal/shared/constants"
	"github.com/sahay-inc/sahay/internal/shared/id"
	"github.com/sahay-inc/sahay/internal/shared/privacy"
)

// EventType enumerates the closed set of emittable analytics events.
type EventType string

const (
	EventTriageCompleted           EventType = "triage_completed"
	EventTriageEmergency           EventType = "triage_emergency"
	EventComplaintSubmitted        EventType = "complaint_submitted"
	EventComplaintResolved         EventType = "complaint_resolved"
	EventComplaintEscalated        EventType = "complaint_escalated"
	EventVaccinationRecorded       EventType = "vaccination_recorded"
	EventNeuroscreenCompleted      EventType = "neuroscreen_completed"
	EventDailyWellnessLogged       EventType = "daily_wellness_logged"
	EventTeleRequestCreated        EventType = "tele_request_created"
	EventTeleConsultationCompleted EventType = "tele_consultation_completed"
)

var triageCategories = []string{"self_care", "phc", "emergency"}

var complaintCategories = []string{
	"medication_error", "discrimination", "service_quality",
	"staff_behavior", "facility_issues", "billing_dispute", "other",
}

var neuroscreenBands = []string{"low", "medium", "high"}

// allowedCategories maps each event type to the categories it may carry.
// UnknownBucket is always accepted for events emitted without a category.
var allowedCategories = map[EventType][]string{
	EventTriageCompleted:           triageCategories,
	EventTriageEmergency:           triageCategories,
	EventComplaintSubmitted:        complaintCategories,
	EventComplaintResolved:         complaintCategories,
	EventComplaintEscalated:        complaintCategories,
	EventVaccinationRecorded:       {},
	EventNeuroscreenCompleted:      neuroscreenBands,
	EventDailyWellnessLogged:       {},
	EventTeleRequestCreated:        {},
	EventTeleConsultationCompleted: {},
}

func (t EventType) String() string { return string(t) }

func (t EventType) IsValid() bool {
	_, ok := allowedCategories[t]
	return ok
}

// AllowsCategory reports whether the category may appear on this event type.
func (t EventType) AllowsCategory(category string) bool {
	if category == UnknownBucket {
		return true
	}
	for _, allowed := range allowedCategories[t] {
		if allowed == category {
			return true
		}
	}
	return false
}

// AllEventTypes returns the emission allow-list.
func AllEventTypes() []EventType {
	return []EventType{
		EventTriageCompleted,
		EventTriageEmergency,
		EventComplaintSubmitted,
		EventComplaintResolved,
		EventComplaintEscalated,
		EventVaccinationRecorded,
		EventNeuroscreenCompleted,
		EventDailyWellnessLogged,
		EventTeleRequestCreated,
		EventTeleConsultationCompleted,
	}
}

// Demographics is the profile slice the pipeline buckets before anything
// else sees it. Raw values never reach a payload.
type Demographics struct {
	Age     *int
	Sex     string
	Pincode string
}

// Payload is one fully de-identified analytics event. Construction is the
// only way to obtain one, so every payload in the system has passed the
// privacy checks.
type Payload struct {
	EventType     EventType      `json:"event_type"`
	Category      string         `json:"category"`
	EventTime     time.Time      `json:"event_time"`
	GeoCell       string         `json:"geo_cell"`
	AgeBucket     string         `json:"age_bucket"`
	Gender        string         `json:"gender"`
	Count         int64          `json:"count"`
	Metadata      map[string]any `json:"metadata"`
	SchemaVersion string         `json:"schema_version"`
}

// NewPayload validates and de-identifies one event emission.
func NewPayload(
	eventType EventType,
	category string,
	at time.Time,
	demo Demographics,
	metadata map[string]any,
) (Payload, error) {
	if !eventType.IsValid() {
		return Payload{}, fmt.Errorf("event type is not in the allow-list: %s", eventType)
	}
	if category == "" {
		category = UnknownBucket
	}
	if !eventType.AllowsCategory(category) {
		return Payload{}, fmt.Errorf("category %q is not allowed for event type %s", category, eventType)
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	if err := privacy.ValidatePayloadKeys(metadata); err != nil {
		return Payload{}, err
	}

	return Payload{
		EventType:     eventType,
		Category:      category,
		EventTime:     TimeBucket(at),
		GeoCell:       GeoCell(demo.Pincode),
		AgeBucket:     AgeBucket(demo.Age),
		Gender:        Gender(demo.Sex),
		Count:         1,
		Metadata:      metadata,
		SchemaVersion: constants.AnalyticsSchemaVersion,
	}, nil
}

// StoredEvent is the audit-trail row behind an emission. The user link
// exists for audit only and is severed on erasure; the payload itself is
// already de-identified.
type StoredEvent struct {
	id          uint
	sid         string
	userID      *uint
	eventType   EventType
	payloadJSON []byte
	createdAt   time.Time
}

// NewStoredEvent captures an emitted payload for the audit trail.
func NewStoredEvent(userID uint, payload Payload) (*StoredEvent, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	sid, err := id.NewAnalyticsEventID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate event ID: %w", err)
	}

	uid := userID
	return &StoredEvent{
		sid:         sid,
		userID:      &uid,
		eventType:   payload.EventType,
		payloadJSON: raw,
		createdAt:   time.Now(),
	}, nil
}

// ReconstructStoredEvent reconstructs an event row from persistence.
func ReconstructStoredEvent(
	internalID uint,
	sid string,
	userID *uint,
	eventType EventType,
	payloadJSON []byte,
	createdAt time.Time,
) (*StoredEvent, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("event ID cannot be zero")
	}
	return &StoredEvent{
		id:          internalID,
		sid:         sid,
		userID:      userID,
		eventType:   eventType,
		payloadJSON: payloadJSON,
		createdAt:   createdAt,
	}, nil
}

func (e *StoredEvent) ID() uint             { return e.id }
func (e *StoredEvent) SID() string          { return e.sid }
func (e *StoredEvent) UserID() *uint        { return e.userID }
func (e *StoredEvent) EventType() EventType { return e.eventType }
func (e *StoredEvent) CreatedAt() time.Time { return e.createdAt }

// PayloadJSON returns a copy of the encoded payload.
func (e *StoredEvent) PayloadJSON() []byte {
	raw := make([]byte, len(e.payloadJSON))
	copy(raw, e.payloadJSON)
	return raw
}

// SetID sets the event ID (only for persistence layer use).
func (e *StoredEvent) SetID(internalID uint) error {
	if e.id != 0 {
		return fmt.Errorf("event ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("event ID cannot be zero")
	}
	e.id = internalID
	return nil
}
