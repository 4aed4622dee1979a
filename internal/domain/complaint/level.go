package complaint

import "fmt"

// EscalationLevel is the administrative tier currently responsible for a
// complaint. Levels only ever move upward.
type EscalationLevel string

const (
	LevelDistrict EscalationLevel = "district"
	LevelState    EscalationLevel = "state"
	LevelNational EscalationLevel = "national"
)

var levelRanks = map[EscalationLevel]int{
	LevelDistrict: 1,
	LevelState:    2,
	LevelNational: 3,
}

// NewEscalationLevel parses a string into an EscalationLevel.
func NewEscalationLevel(s string) (EscalationLevel, error) {
	l := EscalationLevel(s)
	if !l.IsValid() {
		return "", fmt.Errorf("invalid escalation level: %s", s)
	}
	return l, nil
}

// EscalationLevelFromRank maps the numeric tier (1..3) to its level.
func EscalationLevelFromRank(rank int) (EscalationLevel, error) {
	for level, r := range levelRanks {
		if r == rank {
			return level, nil
		}
	}
	return "", fmt.Errorf("invalid escalation level rank: %d", rank)
}

func (l EscalationLevel) String() string { return string(l) }

func (l EscalationLevel) IsValid() bool { return levelRanks[l] != 0 }

// Rank returns the numeric tier, district=1 through national=3.
func (l EscalationLevel) Rank() int { return levelRanks[l] }

func (l EscalationLevel) IsHighest() bool { return l == LevelNational }

// Next returns the level one tier up.
func (l EscalationLevel) Next() (EscalationLevel, error) {
	switch l {
	case LevelDistrict:
		return LevelState, nil
	case LevelState:
		return LevelNational, nil
	case LevelNational:
		return "", fmt.Errorf("no escalation level above national")
	}
	return "", fmt.Errorf("invalid escalation level: %s", l)
}
