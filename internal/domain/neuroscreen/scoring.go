// Package neuroscreen implements deterministic developmental screening.
// Scoring is a weighted sum over the instrument's questions mapped to a
// likelihood band; guidance always carries the screening disclaimer.
package neuroscreen

// Band is the screening likelihood band a raw score falls into.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

func (b Band) String() string { return string(b) }

func (b Band) IsValid() bool {
	return b == BandLow || b == BandMedium || b == BandHigh
}

// ScoreRange is the inclusive raw-score interval a band covers.
type ScoreRange struct {
	Min int
	Max int
}

// Instrument is one versioned screening questionnaire: per-question
// weights and the band thresholds the weighted sum is matched against.
// Scoring is pure arithmetic so the same responses always produce the
// same band on every device and on the server.
type Instrument struct {
	Name    string
	Version string
	Weights map[string]int
	Bands   map[Band]ScoreRange
}

// DefaultInstrument returns the active screening instrument.
func DefaultInstrument() Instrument {
	return Instrument{
		Name:    "Autism Screening",
		Version: "1",
		Weights: map[string]int{
			"q1": 1,
			"q2": 2,
			"q3": 1,
			"q4": 3,
			"q5": 2,
		},
		Bands: map[Band]ScoreRange{
			BandLow:    {Min: 0, Max: 3},
			BandMedium: {Min: 4, Max: 7},
			BandHigh:   {Min: 8, Max: 100},
		},
	}
}

// Score computes the weighted sum and its band. Questions the instrument
// does not weight are ignored; unanswered questions count as zero. A score
// outside every band range falls back to the low band.
func (ins Instrument) Score(responses map[string]int) (int, Band) {
	raw := 0
	for question, weight := range ins.Weights {
		raw += responses[question] * weight
	}

	for _, band := range []Band{BandLow, BandMedium, BandHigh} {
		r, ok := ins.Bands[band]
		if ok && raw >= r.Min && raw <= r.Max {
			return raw, band
		}
	}
	return raw, BandLow
}

// Guidance returns the safe-language guidance for a band. Every message
// ends with the screening disclaimer; nothing here is a diagnosis.
func Guidance(band Band) string {
	switch band {
	case BandHigh:
		return "Results indicate higher likelihood. We recommend a professional evaluation for comprehensive assessment. " +
			"This is a screening, not a diagnosis."
	case BandMedium:
		return "Results indicate moderate likelihood. Consider consulting a specialist for further evaluation. " +
			"This is a screening, not a diagnosis."
	default:
		return "Results indicate lower likelihood based on this screening. Continue monitoring developmental progress. " +
			"This is a screening, not a diagnosis."
	}
}
