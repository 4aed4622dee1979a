package consent

import "fmt"

// Scope is the audience a consent receipt grants access to.
type Scope string

const (
	ScopeASHA          Scope = "asha"
	ScopeClinician     Scope = "clinician"
	ScopeGovAggregated Scope = "gov_aggregated"
)

var validScopes = map[Scope]bool{
	ScopeASHA:          true,
	ScopeClinician:     true,
	ScopeGovAggregated: true,
}

// NewScope parses a string into a Scope.
func NewScope(s string) (Scope, error) {
	sc := Scope(s)
	if !sc.IsValid() {
		return "", fmt.Errorf("invalid consent scope: %s", s)
	}
	return sc, nil
}

func (s Scope) String() string { return string(s) }

func (s Scope) IsValid() bool { return validScopes[s] }

// AllScopes returns the closed set of consent scopes.
func AllScopes() []Scope {
	return []Scope{ScopeASHA, ScopeClinician, ScopeGovAggregated}
}
