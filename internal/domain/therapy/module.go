// Package therapy implements home-therapy content modules and the offline
// pack bundles built from them. A pack is a ZIP archive whose object key
// and checksum are both the SHA-256 of its bytes, so clients can verify
// a download end to end.
package therapy

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sahay-inc/sahay/internal/shared/id"
)

// Step is one instruction of a module, ordered by Number. Media is
// referenced by URL and downloaded separately from the pack.
type Step struct {
	Number          int      `json:"step_number"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	MediaReferences []string `json:"media_references"`
	DurationMinutes int      `json:"duration_minutes"`
}

// Module is a clinician-authored therapy program. The optional age range
// is in months; a nil bound leaves that side open.
type Module struct {
	id          uint
	sid         string
	title       string
	description string
	moduleType  string
	ageRangeMin *int
	ageRangeMax *int
	steps       []Step
	createdAt   time.Time
}

// NewModule validates and creates a module. Steps are stored in step-number
// order regardless of input order.
func NewModule(title, description, moduleType string, ageRangeMin, ageRangeMax *int, steps []Step) (*Module, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	moduleType = strings.TrimSpace(moduleType)
	if moduleType == "" {
		return nil, fmt.Errorf("module type is required")
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("at least one step is required")
	}
	if ageRangeMin != nil && ageRangeMax != nil && *ageRangeMin > *ageRangeMax {
		return nil, fmt.Errorf("age range minimum exceeds maximum")
	}

	ordered := make([]Step, len(steps))
	copy(ordered, steps)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	seen := make(map[int]bool, len(ordered))
	for _, step := range ordered {
		if step.Number < 1 {
			return nil, fmt.Errorf("step numbers must start at 1")
		}
		if seen[step.Number] {
			return nil, fmt.Errorf("duplicate step number: %d", step.Number)
		}
		seen[step.Number] = true
		if strings.TrimSpace(step.Title) == "" {
			return nil, fmt.Errorf("step %d title is required", step.Number)
		}
	}

	sid, err := id.NewTherapyModuleID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate module ID: %w", err)
	}

	return &Module{
		sid:         sid,
		title:       title,
		description: description,
		moduleType:  moduleType,
		ageRangeMin: ageRangeMin,
		ageRangeMax: ageRangeMax,
		steps:       ordered,
		createdAt:   time.Now(),
	}, nil
}

// ReconstructModule reconstructs a module from persistence.
func ReconstructModule(
	internalID uint,
	sid string,
	title string,
	description string,
	moduleType string,
	ageRangeMin *int,
	ageRangeMax *int,
	steps []Step,
	createdAt time.Time,
) (*Module, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("module ID cannot be zero")
	}
	if steps == nil {
		steps = []Step{}
	}
	return &Module{
		id:          internalID,
		sid:         sid,
		title:       title,
		description: description,
		moduleType:  moduleType,
		ageRangeMin: ageRangeMin,
		ageRangeMax: ageRangeMax,
		steps:       steps,
		createdAt:   createdAt,
	}, nil
}

func (m *Module) ID() uint             { return m.id }
func (m *Module) SID() string          { return m.sid }
func (m *Module) Title() string        { return m.title }
func (m *Module) Description() string  { return m.description }
func (m *Module) ModuleType() string   { return m.moduleType }
func (m *Module) AgeRangeMin() *int    { return m.ageRangeMin }
func (m *Module) AgeRangeMax() *int    { return m.ageRangeMax }
func (m *Module) CreatedAt() time.Time { return m.createdAt }

// Steps returns a copy of the steps in step-number order.
func (m *Module) Steps() []Step {
	steps := make([]Step, len(m.steps))
	copy(steps, m.steps)
	return steps
}

// SetID sets the internal database ID after persistence.
func (m *Module) SetID(internalID uint) error {
	if m.id != 0 {
		return fmt.Errorf("module ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("module ID cannot be zero")
	}
	m.id = internalID
	return nil
}
