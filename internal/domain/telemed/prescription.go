package telemed

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sahay-inc/sahay/internal/shared/constants"
	"github.com/sahay-inc/sahay/internal/shared/id"
)

// PrescriptionItem is one line of a prescription.
type PrescriptionItem struct {
	Drug      string `json:"drug"`
	Dose      string `json:"dose"`
	Frequency string `json:"frequency,omitempty"`
	Duration  string `json:"duration,omitempty"`
}

// Prescription is the record a clinician writes at the end of a consultation.
// The summary text is SMS-deliverable and stays inside the length bounds.
type Prescription struct {
	id            uint
	sid           string
	teleRequestID uint
	citizenID     uint
	clinicianID   uint
	items         []PrescriptionItem
	summaryText   string
	createdAt     time.Time
}

// NewPrescription creates a prescription with a rendered SMS summary.
func NewPrescription(
	teleRequestID uint,
	citizenID uint,
	clinicianID uint,
	items []PrescriptionItem,
	advice string,
) (*Prescription, error) {
	if teleRequestID == 0 {
		return nil, fmt.Errorf("tele request ID is required")
	}
	if citizenID == 0 {
		return nil, fmt.Errorf("citizen ID is required")
	}
	if clinicianID == 0 {
		return nil, fmt.Errorf("clinician ID is required")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one prescription item is required")
	}
	for i, item := range items {
		if strings.TrimSpace(item.Drug) == "" {
			return nil, fmt.Errorf("prescription item %d has no drug name", i)
		}
	}

	sid, err := id.NewPrescriptionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate prescription ID: %w", err)
	}

	itemsCopy := make([]PrescriptionItem, len(items))
	copy(itemsCopy, items)

	return &Prescription{
		sid:           sid,
		teleRequestID: teleRequestID,
		citizenID:     citizenID,
		clinicianID:   clinicianID,
		items:         itemsCopy,
		summaryText:   RenderSummary(items, advice),
		createdAt:     time.Now(),
	}, nil
}

// ReconstructPrescription reconstructs a prescription from persistence.
func ReconstructPrescription(
	internalID uint,
	sid string,
	teleRequestID uint,
	citizenID uint,
	clinicianID uint,
	items []PrescriptionItem,
	summaryText string,
	createdAt time.Time,
) (*Prescription, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("prescription ID cannot be zero")
	}
	if items == nil {
		items = []PrescriptionItem{}
	}
	return &Prescription{
		id:            internalID,
		sid:           sid,
		teleRequestID: teleRequestID,
		citizenID:     citizenID,
		clinicianID:   clinicianID,
		items:         items,
		summaryText:   summaryText,
		createdAt:     createdAt,
	}, nil
}

func (p *Prescription) ID() uint             { return p.id }
func (p *Prescription) SID() string          { return p.sid }
func (p *Prescription) TeleRequestID() uint  { return p.teleRequestID }
func (p *Prescription) CitizenID() uint      { return p.citizenID }
func (p *Prescription) ClinicianID() uint    { return p.clinicianID }
func (p *Prescription) SummaryText() string  { return p.summaryText }
func (p *Prescription) CreatedAt() time.Time { return p.createdAt }

// Items returns a copy of the prescription lines.
func (p *Prescription) Items() []PrescriptionItem {
	items := make([]PrescriptionItem, len(p.items))
	copy(items, p.items)
	return items
}

// SetID sets the prescription ID (only for persistence layer use).
func (p *Prescription) SetID(internalID uint) error {
	if p.id != 0 {
		return fmt.Errorf("prescription ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("prescription ID cannot be zero")
	}
	p.id = internalID
	return nil
}

// CanBeViewedBy allows the citizen and the prescribing clinician.
func (p *Prescription) CanBeViewedBy(userID uint) bool {
	return p.citizenID == userID || p.clinicianID == userID
}

// RenderSummary renders an SMS-ready summary. At most three drugs are named,
// advice is clipped to 80 runes, and the result is padded or truncated so its
// rune count lands between the summary bounds.
func RenderSummary(items []PrescriptionItem, advice string) string {
	var parts []string

	if len(items) > 0 {
		limit := len(items)
		if limit > 3 {
			limit = 3
		}
		drugs := make([]string, 0, limit)
		for _, item := range items[:limit] {
			name := item.Drug
			if name == "" {
				name = "med"
			}
			drugs = append(drugs, strings.TrimSpace(name+" "+item.Dose))
		}
		parts = append(parts, "Rx: "+strings.Join(drugs, ", "))
	}

	if advice != "" {
		parts = append(parts, "Advice: "+truncateRunes(advice, 80))
	}

	summary := strings.Join(parts, ". ")

	if utf8.RuneCountInString(summary) < constants.PrescriptionSummaryMin {
		summary += ". Follow instructions as prescribed. Contact your doctor if symptoms persist. Take medication regularly."
		for utf8.RuneCountInString(summary) < constants.PrescriptionSummaryMin {
			summary += " Please consult if symptoms worsen."
		}
	}

	if utf8.RuneCountInString(summary) > constants.PrescriptionSummaryMax {
		summary = truncateRunes(summary, constants.PrescriptionSummaryMax-3) + "..."
	}

	return summary
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
