// Package vaccination tracks administered doses against the immunization
// schedule. Records are append-only; the schedule itself is a fixed table
// of due ages counted in days from birth.
package vaccination

import (
	"fmt"
	"strings"
	"time"

	"github.com/sahay-inc/sahay/internal/shared/id"
)

// Record is one administered dose owned by a single user.
type Record struct {
	id             uint
	sid            string
	ownerID        uint
	vaccineName    string
	doseNumber     int
	administeredAt time.Time
	createdAt      time.Time
}

// NewRecord records an administered dose against its owner.
func NewRecord(ownerID uint, vaccineName string, doseNumber int, administeredAt time.Time) (*Record, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	vaccineName = strings.TrimSpace(vaccineName)
	if vaccineName == "" {
		return nil, fmt.Errorf("vaccine name is required")
	}
	if doseNumber < 1 {
		return nil, fmt.Errorf("dose number must be at least 1")
	}
	if administeredAt.IsZero() {
		return nil, fmt.Errorf("administration time is required")
	}

	sid, err := id.NewVaccinationRecordID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate record ID: %w", err)
	}

	return &Record{
		sid:            sid,
		ownerID:        ownerID,
		vaccineName:    vaccineName,
		doseNumber:     doseNumber,
		administeredAt: administeredAt,
		createdAt:      time.Now(),
	}, nil
}

// ReconstructRecord reconstructs a record from persistence.
func ReconstructRecord(
	internalID uint,
	sid string,
	ownerID uint,
	vaccineName string,
	doseNumber int,
	administeredAt time.Time,
	createdAt time.Time,
) (*Record, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("record ID cannot be zero")
	}
	return &Record{
		id:             internalID,
		sid:            sid,
		ownerID:        ownerID,
		vaccineName:    vaccineName,
		doseNumber:     doseNumber,
		administeredAt: administeredAt,
		createdAt:      createdAt,
	}, nil
}

func (r *Record) ID() uint                  { return r.id }
func (r *Record) SID() string               { return r.sid }
func (r *Record) OwnerID() uint             { return r.ownerID }
func (r *Record) VaccineName() string       { return r.vaccineName }
func (r *Record) DoseNumber() int           { return r.doseNumber }
func (r *Record) AdministeredAt() time.Time { return r.administeredAt }
func (r *Record) CreatedAt() time.Time      { return r.createdAt }

// Dose identifies the dose this record covers.
func (r *Record) Dose() Dose {
	return Dose{VaccineName: r.vaccineName, DoseNumber: r.doseNumber}
}

// SetID sets the internal database ID after persistence.
func (r *Record) SetID(internalID uint) error {
	if r.id != 0 {
		return fmt.Errorf("record ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("record ID cannot be zero")
	}
	r.id = internalID
	return nil
}
