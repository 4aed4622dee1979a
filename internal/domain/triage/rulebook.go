package triage

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule is one red-flag pattern. A rule matches when any of its
// case-insensitive substring patterns occurs, or its regex matches.
// The rule's name is the canonical flag recorded on the session.
type Rule struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns,omitempty"`
	Regex    string   `yaml:"regex,omitempty"`

	compiled *regexp.Regexp
	lowered  []string
}

// Rulebook is the ordered red-flag rule list. Order is part of the contract:
// flags are reported in rulebook order so identical inputs always produce
// identical flag lists.
type Rulebook struct {
	rules []Rule
}

type rulebookDoc struct {
	Rules []Rule `yaml:"rules"`
}

// ParseRulebook loads and compiles a YAML rulebook.
func ParseRulebook(data []byte) (*Rulebook, error) {
	var doc rulebookDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rulebook: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("rulebook contains no rules")
	}

	seen := make(map[string]bool, len(doc.Rules))
	for i := range doc.Rules {
		r := &doc.Rules[i]
		if r.Name == "" {
			return nil, fmt.Errorf("rule %d has no name", i)
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("duplicate rule name: %s", r.Name)
		}
		seen[r.Name] = true

		if len(r.Patterns) == 0 && r.Regex == "" {
			return nil, fmt.Errorf("rule %s has neither patterns nor regex", r.Name)
		}
		for _, p := range r.Patterns {
			r.lowered = append(r.lowered, strings.ToLower(p))
		}
		if r.Regex != "" {
			compiled, err := regexp.Compile("(?i)" + r.Regex)
			if err != nil {
				return nil, fmt.Errorf("rule %s has invalid regex: %w", r.Name, err)
			}
			r.compiled = compiled
		}
	}

	return &Rulebook{rules: doc.Rules}, nil
}

// Len returns the number of rules.
func (rb *Rulebook) Len() int { return len(rb.rules) }

// Evaluate returns the canonical names of every rule the text trips,
// in rulebook order. The text is matched case-insensitively.
func (rb *Rulebook) Evaluate(text string) []string {
	lowered := strings.ToLower(text)

	var flags []string
	for i := range rb.rules {
		r := &rb.rules[i]
		if r.matches(lowered) {
			flags = append(flags, r.Name)
		}
	}
	return flags
}

func (r *Rule) matches(loweredText string) bool {
	for _, p := range r.lowered {
		if strings.Contains(loweredText, p) {
			return true
		}
	}
	if r.compiled != nil && r.compiled.MatchString(loweredText) {
		return true
	}
	return false
}
