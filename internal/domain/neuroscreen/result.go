package neuroscreen

import (
	"fmt"
	"time"

	"github.com/sahay-inc/sahay/internal/shared/id"
)

// Result is one completed screening owned by a single user. Results are
// immutable once created; the instrument name and version are stored with
// the result so old results stay interpretable after the instrument moves on.
type Result struct {
	id                uint
	sid               string
	ownerID           uint
	instrumentName    string
	instrumentVersion string
	responses         map[string]int
	rawScore          int
	band              Band
	guidanceText      string
	createdAt         time.Time
}

// NewResult scores the responses against the instrument and records the
// outcome for its owner.
func NewResult(ownerID uint, instrument Instrument, responses map[string]int) (*Result, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if len(responses) == 0 {
		return nil, fmt.Errorf("responses are required")
	}
	for question, value := range responses {
		if value < 0 {
			return nil, fmt.Errorf("response for %s cannot be negative", question)
		}
	}

	sid, err := id.NewNeuroscreenResultID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate result ID: %w", err)
	}

	copied := make(map[string]int, len(responses))
	for question, value := range responses {
		copied[question] = value
	}

	rawScore, band := instrument.Score(copied)

	return &Result{
		sid:               sid,
		ownerID:           ownerID,
		instrumentName:    instrument.Name,
		instrumentVersion: instrument.Version,
		responses:         copied,
		rawScore:          rawScore,
		band:              band,
		guidanceText:      Guidance(band),
		createdAt:         time.Now(),
	}, nil
}

// ReconstructResult reconstructs a result from persistence.
func ReconstructResult(
	internalID uint,
	sid string,
	ownerID uint,
	instrumentName string,
	instrumentVersion string,
	responses map[string]int,
	rawScore int,
	band Band,
	guidanceText string,
	createdAt time.Time,
) (*Result, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("result ID cannot be zero")
	}
	if !band.IsValid() {
		return nil, fmt.Errorf("invalid screening band: %s", band)
	}
	if responses == nil {
		responses = map[string]int{}
	}
	return &Result{
		id:                internalID,
		sid:               sid,
		ownerID:           ownerID,
		instrumentName:    instrumentName,
		instrumentVersion: instrumentVersion,
		responses:         responses,
		rawScore:          rawScore,
		band:              band,
		guidanceText:      guidanceText,
		createdAt:         createdAt,
	}, nil
}

func (r *Result) ID() uint                  { return r.id }
func (r *Result) SID() string               { return r.sid }
func (r *Result) OwnerID() uint             { return r.ownerID }
func (r *Result) InstrumentName() string    { return r.instrumentName }
func (r *Result) InstrumentVersion() string { return r.instrumentVersion }
func (r *Result) RawScore() int             { return r.rawScore }
func (r *Result) Band() Band                { return r.band }
func (r *Result) GuidanceText() string      { return r.guidanceText }
func (r *Result) CreatedAt() time.Time      { return r.createdAt }

// Responses returns a copy of the recorded answers.
func (r *Result) Responses() map[string]int {
	copied := make(map[string]int, len(r.responses))
	for question, value := range r.responses {
		copied[question] = value
	}
	return copied
}

// CanBeViewedBy reports whether the caller may read this result. Only the
// owner can; caregiver and clinician access is not granted here.
func (r *Result) CanBeViewedBy(callerID uint) bool {
	return callerID != 0 && callerID == r.ownerID
}

// SetID sets the internal database ID after persistence.
func (r *Result) SetID(internalID uint) error {
	if r.id != 0 {
		return fmt.Errorf("result ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("result ID cannot be zero")
	}
	r.id = internalID
	return nil
}
