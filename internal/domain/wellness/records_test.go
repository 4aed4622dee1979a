package wellness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVitalsRecord(t *testing.T) {
	measuredAt := time.Date(2026, 2, 1, 7, 30, 0, 0, time.UTC)

	v, err := NewVitalsRecord(1, "bp_systolic", 128, "mmHg", measuredAt, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, "bp_systolic", v.VitalType())
	assert.Equal(t, 128.0, v.Value())

	_, err = NewVitalsRecord(0, "bp_systolic", 128, "mmHg", measuredAt, "")
	assert.Error(t, err)

	_, err = NewVitalsRecord(1, "", 128, "mmHg", measuredAt, "")
	assert.Error(t, err)

	_, err = NewVitalsRecord(1, "bp_systolic", 128, "", measuredAt, "")
	assert.Error(t, err)

	_, err = NewVitalsRecord(1, "bp_systolic", 128, "mmHg", time.Time{}, "")
	assert.Error(t, err)
}

func TestNewMoodRecord_ScaleBounds(t *testing.T) {
	loggedAt := time.Now().UTC()

	for scale := 1; scale <= 5; scale++ {
		_, err := NewMoodRecord(1, scale, "", loggedAt, "evt-1")
		assert.NoError(t, err, "scale %d should be accepted", scale)
	}

	_, err := NewMoodRecord(1, 0, "", loggedAt, "evt-1")
	assert.Error(t, err)
	_, err = NewMoodRecord(1, 6, "", loggedAt, "evt-1")
	assert.Error(t, err)
}

func TestNewWaterRecord(t *testing.T) {
	loggedAt := time.Now().UTC()

	w, err := NewWaterRecord(1, 250, loggedAt, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, 250, w.AmountML())

	_, err = NewWaterRecord(1, 0, loggedAt, "evt-1")
	assert.Error(t, err)
	_, err = NewWaterRecord(1, -100, loggedAt, "evt-1")
	assert.Error(t, err)
}
