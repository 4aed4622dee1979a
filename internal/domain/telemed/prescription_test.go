package telemed

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/shared/constants"
)

func TestNewPrescription(t *testing.T) {
	items := []PrescriptionItem{
		{Drug: "Paracetamol", Dose: "500mg", Frequency: "twice daily", Duration: "3 days"},
	}

	rx, err := NewPrescription(3, 5, 9, items, "rest and drink fluids")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rx.SID(), "rx_"))
	assert.Equal(t, uint(3), rx.TeleRequestID())
	assert.Equal(t, uint(5), rx.CitizenID())
	assert.Equal(t, uint(9), rx.ClinicianID())
	assert.Len(t, rx.Items(), 1)
	assert.Contains(t, rx.SummaryText(), "Paracetamol 500mg")

	length := utf8.RuneCountInString(rx.SummaryText())
	assert.GreaterOrEqual(t, length, constants.PrescriptionSummaryMin)
	assert.LessOrEqual(t, length, constants.PrescriptionSummaryMax)
}

func TestNewPrescriptionValidation(t *testing.T) {
	items := []PrescriptionItem{{Drug: "Paracetamol", Dose: "500mg"}}

	tests := []struct {
		name          string
		teleRequestID uint
		citizenID     uint
		clinicianID   uint
		items         []PrescriptionItem
		wantErr       string
	}{
		{name: "missing tele request", citizenID: 5, clinicianID: 9, items: items, wantErr: "tele request ID is required"},
		{name: "missing citizen", teleRequestID: 3, clinicianID: 9, items: items, wantErr: "citizen ID is required"},
		{name: "missing clinician", teleRequestID: 3, citizenID: 5, items: items, wantErr: "clinician ID is required"},
		{name: "no items", teleRequestID: 3, citizenID: 5, clinicianID: 9, items: nil, wantErr: "at least one prescription item"},
		{name: "blank drug name", teleRequestID: 3, citizenID: 5, clinicianID: 9, items: []PrescriptionItem{{Drug: "  "}}, wantErr: "no drug name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPrescription(tt.teleRequestID, tt.citizenID, tt.clinicianID, tt.items, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPrescriptionItemsAreCopied(t *testing.T) {
	items := []PrescriptionItem{{Drug: "Paracetamol", Dose: "500mg"}}
	rx, err := NewPrescription(3, 5, 9, items, "")
	require.NoError(t, err)

	items[0].Drug = "tampered"
	got := rx.Items()
	got[0].Drug = "tampered"
	assert.Equal(t, "Paracetamol", rx.Items()[0].Drug)
}

func TestPrescriptionVisibility(t *testing.T) {
	rx, err := NewPrescription(3, 5, 9, []PrescriptionItem{{Drug: "ORS", Dose: "1 sachet"}}, "")
	require.NoError(t, err)

	assert.True(t, rx.CanBeViewedBy(5))
	assert.True(t, rx.CanBeViewedBy(9))
	assert.False(t, rx.CanBeViewedBy(7))
}

func TestRenderSummaryBounds(t *testing.T) {
	tests := []struct {
		name   string
		items  []PrescriptionItem
		advice string
	}{
		{
			name:  "short content gets padded",
			items: []PrescriptionItem{{Drug: "ORS", Dose: "1 sachet"}},
		},
		{
			name: "long content gets truncated",
			items: []PrescriptionItem{
				{Drug: strings.Repeat("Amoxicillin-Clavulanate", 4), Dose: "625mg"},
				{Drug: strings.Repeat("Chlorpheniramine-Maleate", 4), Dose: "4mg"},
				{Drug: strings.Repeat("Dextromethorphan", 6), Dose: "10ml"},
			},
			advice: strings.Repeat("take with food and plenty of water ", 10),
		},
		{
			name:   "advice only",
			items:  nil,
			advice: "steam inhalation twice a day",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := RenderSummary(tt.items, tt.advice)
			length := utf8.RuneCountInString(summary)
			assert.GreaterOrEqual(t, length, constants.PrescriptionSummaryMin)
			assert.LessOrEqual(t, length, constants.PrescriptionSummaryMax)
		})
	}
}

func TestRenderSummaryContent(t *testing.T) {
	items := []PrescriptionItem{
		{Drug: "Paracetamol", Dose: "500mg"},
		{Drug: "Cetirizine", Dose: "10mg"},
		{Drug: "ORS", Dose: "1 sachet"},
		{Drug: "Ibuprofen", Dose: "400mg"},
	}

	summary := RenderSummary(items, "plenty of fluids")

	// Only the first three drugs make the SMS.
	assert.Contains(t, summary, "Paracetamol 500mg")
	assert.Contains(t, summary, "Cetirizine 10mg")
	assert.Contains(t, summary, "ORS 1 sachet")
	assert.NotContains(t, summary, "Ibuprofen")
	assert.Contains(t, summary, "Advice: plenty of fluids")
}

func TestRenderSummaryClipsAdvice(t *testing.T) {
	advice := strings.Repeat("x", 120)
	summary := RenderSummary([]PrescriptionItem{{Drug: "ORS", Dose: "1 sachet"}}, advice)
	assert.Contains(t, summary, "Advice: "+strings.Repeat("x", 80))
	assert.NotContains(t, summary, strings.Repeat("x", 81))
}

func TestRenderSummaryTruncationEndsWithEllipsis(t *testing.T) {
	advice := strings.Repeat("very long advice ", 30)
	items := []PrescriptionItem{
		{Drug: strings.Repeat("Longdrugname", 8), Dose: "10mg"},
		{Drug: strings.Repeat("Otherdrugname", 8), Dose: "20mg"},
	}

	summary := RenderSummary(items, advice)
	assert.Equal(t, constants.PrescriptionSummaryMax, utf8.RuneCountInString(summary))
	assert.True(t, strings.HasSuffix(summary, "..."))
}
