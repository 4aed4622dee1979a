package complaint

import (
	"fmt"
	"time"
)

// DefaultSLAWindow applies when no rule covers a (category, level) pair.
const DefaultSLAWindow = 168 * time.Hour

// SLARule sets the time budget for one (category, escalation level) pair.
type SLARule struct {
	id             uint
	category       Category
	level          EscalationLevel
	timeLimitHours int
	createdAt      time.Time
	updatedAt      time.Time
}

// NewSLARule creates an SLA rule.
func NewSLARule(category Category, level EscalationLevel, timeLimitHours int) (*SLARule, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid complaint category: %s", category)
	}
	if !level.IsValid() {
		return nil, fmt.Errorf("invalid escalation level: %s", level)
	}
	if timeLimitHours <= 0 {
		return nil, fmt.Errorf("time limit must be positive, got %d", timeLimitHours)
	}

	now := time.Now()
	return &SLARule{
		category:       category,
		level:          level,
		timeLimitHours: timeLimitHours,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructSLARule reconstructs an SLA rule from persistence.
func ReconstructSLARule(
	internalID uint,
	category Category,
	level EscalationLevel,
	timeLimitHours int,
	createdAt, updatedAt time.Time,
) (*SLARule, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("SLA rule ID cannot be zero")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid complaint category: %s", category)
	}
	if !level.IsValid() {
		return nil, fmt.Errorf("invalid escalation level: %s", level)
	}
	return &SLARule{
		id:             internalID,
		category:       category,
		level:          level,
		timeLimitHours: timeLimitHours,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (r *SLARule) ID() uint               { return r.id }
func (r *SLARule) Category() Category     { return r.category }
func (r *SLARule) Level() EscalationLevel { return r.level }
func (r *SLARule) TimeLimitHours() int    { return r.timeLimitHours }
func (r *SLARule) CreatedAt() time.Time   { return r.createdAt }
func (r *SLARule) UpdatedAt() time.Time   { return r.updatedAt }

// SetID sets the rule ID (only for persistence layer use).
func (r *SLARule) SetID(internalID uint) error {
	if r.id != 0 {
		return fmt.Errorf("SLA rule ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("SLA rule ID cannot be zero")
	}
	r.id = internalID
	return nil
}

// UpdateTimeLimit changes the rule's time budget.
func (r *SLARule) UpdateTimeLimit(hours int) error {
	if hours <= 0 {
		return fmt.Errorf("time limit must be positive, got %d", hours)
	}
	r.timeLimitHours = hours
	r.updatedAt = time.Now()
	return nil
}

// Deadline computes the SLA deadline counting from the given time.
func (r *SLARule) Deadline(from time.Time) time.Time {
	return from.Add(time.Duration(r.timeLimitHours) * time.Hour)
}

// SLATable is an in-memory (category, level) -> hours lookup, loaded once
// per scheduler sweep.
type SLATable map[Category]map[EscalationLevel]int

// BuildSLATable indexes rules for lookup.
func BuildSLATable(rules []*SLARule) SLATable {
	table := make(SLATable)
	for _, rule := range rules {
		byLevel, ok := table[rule.Category()]
		if !ok {
			byLevel = make(map[EscalationLevel]int)
			table[rule.Category()] = byLevel
		}
		byLevel[rule.Level()] = rule.TimeLimitHours()
	}
	return table
}

// Hours returns the time budget for the pair, or false when no rule exists.
func (t SLATable) Hours(category Category, level EscalationLevel) (int, bool) {
	byLevel, ok := t[category]
	if !ok {
		return 0, false
	}
	hours, ok := byLevel[level]
	return hours, ok
}

// Deadline computes from+budget for the pair, or false when no rule exists.
func (t SLATable) Deadline(category Category, level EscalationLevel, from time.Time) (time.Time, bool) {
	hours, ok := t.Hours(category, level)
	if !ok {
		return time.Time{}, false
	}
	return from.Add(time.Duration(hours) * time.Hour), true
}
