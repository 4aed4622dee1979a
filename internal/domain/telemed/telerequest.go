// Package telemed models teleconsultation requests and the prescriptions
// written against them.
package telemed

import (
	"fmt"
	"time"

	"github.com/sahay-inc/sahay/internal/shared/id"
)

// TeleRequest is a citizen's request for a remote consultation. It moves
// strictly requested -> scheduled -> in_progress -> completed; scheduling
// assigns the clinician.
type TeleRequest struct {
	id             uint
	sid            string
	citizenID      uint
	clinicianID    *uint
	symptomSummary string
	preferredTime  *string
	status         Status
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

// NewTeleRequest creates a request in the requested state.
func NewTeleRequest(citizenID uint, symptomSummary string, preferredTime *string) (*TeleRequest, error) {
	if citizenID == 0 {
		return nil, fmt.Errorf("citizen ID is required")
	}
	if len(symptomSummary) == 0 {
		return nil, fmt.Errorf("symptom summary is required")
	}
	if len(symptomSummary) > 2000 {
		return nil, fmt.Errorf("symptom summary exceeds maximum length of 2000 characters")
	}

	sid, err := id.NewTeleRequestID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tele request ID: %w", err)
	}

	now := time.Now()
	return &TeleRequest{
		sid:            sid,
		citizenID:      citizenID,
		symptomSummary: symptomSummary,
		preferredTime:  preferredTime,
		status:         StatusRequested,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructTeleRequest reconstructs a request from persistence.
func ReconstructTeleRequest(
	internalID uint,
	sid string,
	citizenID uint,
	clinicianID *uint,
	symptomSummary string,
	preferredTime *string,
	status Status,
	version int,
	createdAt, updatedAt time.Time,
) (*TeleRequest, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("tele request ID cannot be zero")
	}
	if citizenID == 0 {
		return nil, fmt.Errorf("citizen ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid tele request status: %s", status)
	}
	return &TeleRequest{
		id:             internalID,
		sid:            sid,
		citizenID:      citizenID,
		clinicianID:    clinicianID,
		symptomSummary: symptomSummary,
		preferredTime:  preferredTime,
		status:         status,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (r *TeleRequest) ID() uint               { return r.id }
func (r *TeleRequest) SID() string            { return r.sid }
func (r *TeleRequest) CitizenID() uint        { return r.citizenID }
func (r *TeleRequest) ClinicianID() *uint     { return r.clinicianID }
func (r *TeleRequest) SymptomSummary() string { return r.symptomSummary }
func (r *TeleRequest) PreferredTime() *string { return r.preferredTime }
func (r *TeleRequest) Status() Status         { return r.status }
func (r *TeleRequest) Version() int           { return r.version }
func (r *TeleRequest) CreatedAt() time.Time   { return r.createdAt }
func (r *TeleRequest) UpdatedAt() time.Time   { return r.updatedAt }

// SetID sets the request ID (only for persistence layer use).
func (r *TeleRequest) SetID(internalID uint) error {
	if r.id != 0 {
		return fmt.Errorf("tele request ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("tele request ID cannot be zero")
	}
	r.id = internalID
	return nil
}

// Schedule assigns a clinician and moves the request to scheduled.
func (r *TeleRequest) Schedule(clinicianID uint) error {
	if clinicianID == 0 {
		return fmt.Errorf("clinician ID is required")
	}
	if !r.status.CanTransitionTo(StatusScheduled) {
		return fmt.Errorf("cannot schedule request in status %s", r.status)
	}
	r.clinicianID = &clinicianID
	r.status = StatusScheduled
	r.touch()
	return nil
}

// Start moves a scheduled request to in_progress.
func (r *TeleRequest) Start() error {
	if !r.status.CanTransitionTo(StatusInProgress) {
		return fmt.Errorf("cannot start request in status %s", r.status)
	}
	r.status = StatusInProgress
	r.touch()
	return nil
}

// Complete moves an in_progress request to completed.
func (r *TeleRequest) Complete() error {
	if !r.status.CanTransitionTo(StatusCompleted) {
		return fmt.Errorf("cannot complete request in status %s", r.status)
	}
	r.status = StatusCompleted
	r.touch()
	return nil
}

func (r *TeleRequest) touch() {
	r.updatedAt = time.Now()
	r.version++
}

// CanBeViewedBy allows the requesting citizen and the assigned clinician.
func (r *TeleRequest) CanBeViewedBy(userID uint) bool {
	if r.citizenID == userID {
		return true
	}
	return r.clinicianID != nil && *r.clinicianID == userID
}

// IsAssignedTo reports whether the request is assigned to the clinician.
func (r *TeleRequest) IsAssignedTo(clinicianID uint) bool {
	return r.clinicianID != nil && *r.clinicianID == clinicianID
}
