// Package wellness models the daily self-tracking records synced from
// devices. All record kinds are append-only: a correction is a new row,
// never an update, which keeps offline replays trivially idempotent.
package wellness

import (
	"fmt"
	"time"
)

// VitalsRecord is one measurement (blood pressure, pulse, temperature, ...).
type VitalsRecord struct {
	id            uint
	userID        uint
	vitalType     string
	value         float64
	unit          string
	measuredAt    time.Time
	sourceEventID string
	createdAt     time.Time
}

// NewVitalsRecord creates a vitals measurement row.
func NewVitalsRecord(userID uint, vitalType string, value float64, unit string, measuredAt time.Time, sourceEventID string) (*VitalsRecord, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if vitalType == "" {
		return nil, fmt.Errorf("vital type is required")
	}
	if unit == "" {
		return nil, fmt.Errorf("unit is required")
	}
	if measuredAt.IsZero() {
		return nil, fmt.Errorf("measurement time is required")
	}

	return &VitalsRecord{
		userID:        userID,
		vitalType:     vitalType,
		value:         value,
		unit:          unit,
		measuredAt:    measuredAt.UTC(),
		sourceEventID: sourceEventID,
		createdAt:     time.Now(),
	}, nil
}

// ReconstructVitalsRecord reconstructs a vitals row from persistence.
func ReconstructVitalsRecord(internalID, userID uint, vitalType string, value float64, unit string, measuredAt time.Time, sourceEventID string, createdAt time.Time) (*VitalsRecord, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("vitals record ID cannot be zero")
	}
	return &VitalsRecord{
		id:            internalID,
		userID:        userID,
		vitalType:     vitalType,
		value:         value,
		unit:          unit,
		measuredAt:    measuredAt,
		sourceEventID: sourceEventID,
		createdAt:     createdAt,
	}, nil
}

func (v *VitalsRecord) ID() uint              { return v.id }
func (v *VitalsRecord) UserID() uint          { return v.userID }
func (v *VitalsRecord) VitalType() string     { return v.vitalType }
func (v *VitalsRecord) Value() float64        { return v.value }
func (v *VitalsRecord) Unit() string          { return v.unit }
func (v *VitalsRecord) MeasuredAt() time.Time { return v.measuredAt }
func (v *VitalsRecord) SourceEventID() string { return v.sourceEventID }
func (v *VitalsRecord) CreatedAt() time.Time  { return v.createdAt }

// SetID sets the record ID (only for persistence layer use).
func (v *VitalsRecord) SetID(internalID uint) error {
	if v.id != 0 {
		return fmt.Errorf("vitals record ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("vitals record ID cannot be zero")
	}
	v.id = internalID
	return nil
}

// MoodRecord is one mood log on a 1-5 scale.
type MoodRecord struct {
	id            uint
	userID        uint
	moodScale     int
	notes         string
	loggedAt      time.Time
	sourceEventID string
	createdAt     time.Time
}

// NewMoodRecord creates a mood log row.
func NewMoodRecord(userID uint, moodScale int, notes string, loggedAt time.Time, sourceEventID string) (*MoodRecord, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if moodScale < 1 || moodScale > 5 {
		return nil, fmt.Errorf("mood scale must be between 1 and 5")
	}
	if loggedAt.IsZero() {
		return nil, fmt.Errorf("log time is required")
	}

	return &MoodRecord{
		userID:        userID,
		moodScale:     moodScale,
		notes:         notes,
		loggedAt:      loggedAt.UTC(),
		sourceEventID: sourceEventID,
		createdAt:     time.Now(),
	}, nil
}

// ReconstructMoodRecord reconstructs a mood row from persistence.
func ReconstructMoodRecord(internalID, userID uint, moodScale int, notes string, loggedAt time.Time, sourceEventID string, createdAt time.Time) (*MoodRecord, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("mood record ID cannot be zero")
	}
	return &MoodRecord{
		id:            internalID,
		userID:        userID,
		moodScale:     moodScale,
		notes:         notes,
		loggedAt:      loggedAt,
		sourceEventID: sourceEventID,
		createdAt:     createdAt,
	}, nil
}

func (m *MoodRecord) ID() uint              { return m.id }
func (m *MoodRecord) UserID() uint          { return m.userID }
func (m *MoodRecord) MoodScale() int        { return m.moodScale }
func (m *MoodRecord) Notes() string         { return m.notes }
func (m *MoodRecord) LoggedAt() time.Time   { return m.loggedAt }
func (m *MoodRecord) SourceEventID() string { return m.sourceEventID }
func (m *MoodRecord) CreatedAt() time.Time  { return m.createdAt }

// SetID sets the record ID (only for persistence layer use).
func (m *MoodRecord) SetID(internalID uint) error {
	if m.id != 0 {
		return fmt.Errorf("mood record ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("mood record ID cannot be zero")
	}
	m.id = internalID
	return nil
}

// WaterRecord is one water intake log in milliliters.
type WaterRecord struct {
	id            uint
	userID        uint
	amountML      int
	loggedAt      time.Time
	sourceEventID string
	createdAt     time.Time
}

// NewWaterRecord creates a water intake row.
func NewWaterRecord(userID uint, amountML int, loggedAt time.Time, sourceEventID string) (*WaterRecord, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if amountML <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if loggedAt.IsZero() {
		return nil, fmt.Errorf("log time is required")
	}

	return &WaterRecord{
		userID:        userID,
		amountML:      amountML,
		loggedAt:      loggedAt.UTC(),
		sourceEventID: sourceEventID,
		createdAt:     time.Now(),
	}, nil
}

// ReconstructWaterRecord reconstructs a water row from persistence.
func ReconstructWaterRecord(internalID, userID uint, amountML int, loggedAt time.Time, sourceEventID string, createdAt time.Time) (*WaterRecord, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("water record ID cannot be zero")
	}
	return &WaterRecord{
		id:            internalID,
		userID:        userID,
		amountML:      amountML,
		loggedAt:      loggedAt,
		sourceEventID: sourceEventID,
		createdAt:     createdAt,
	}, nil
}

func (w *WaterRecord) ID() uint              { return w.id }
func (w *WaterRecord) UserID() uint          { return w.userID }
func (w *WaterRecord) AmountML() int         { return w.amountML }
func (w *WaterRecord) LoggedAt() time.Time   { return w.loggedAt }
func (w *WaterRecord) SourceEventID() string { return w.sourceEventID }
func (w *WaterRecord) CreatedAt() time.Time  { return w.createdAt }

// SetID sets the record ID (only for persistence layer use).
func (w *WaterRecord) SetID(internalID uint) error {
	if w.id != 0 {
		return fmt.Errorf("water record ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("water record ID cannot be zero")
	}
	w.id = internalID
	return nil
}

// DailySummary aggregates one day of wellness records for the citizen's own view.
type DailySummary struct {
	Date         string   `json:"date"`
	WaterTotalML int      `json:"water_total_ml"`
	MoodAvg      *float64 `json:"mood_avg"`
	VitalsCount  int64    `json:"vitals_count"`
}
