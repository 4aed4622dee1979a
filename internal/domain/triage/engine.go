package triage

import (
	"fmt"
	"strings"
)

// Input is one triage evaluation request.
type Input struct {
	SymptomsText string
	Age          int
	Sex          string
	Pregnancy    bool
	Language     string
}

// Result is the deterministic evaluation outcome.
type Result struct {
	Category     Category
	RedFlags     []string
	GuidanceText string
	Language     string
}

// Classifier optionally refines non-emergency inputs into phc or self_care.
// Implementations must never return emergency; red flags alone decide that.
type Classifier interface {
	Classify(symptomsText string, age int, sex string) Category
}

// Engine runs rule-first triage: red flags always win, the classifier only
// fills in when no rule fires, and guidance comes from vetted templates.
type Engine struct {
	rulebook   *Rulebook
	templates  *TemplateSet
	classifier Classifier
}

// NewEngine builds an engine. classifier may be nil, in which case every
// non-emergency input defaults to phc.
func NewEngine(rulebook *Rulebook, templates *TemplateSet, classifier Classifier) (*Engine, error) {
	if rulebook == nil {
		return nil, fmt.Errorf("rulebook is required")
	}
	if templates == nil {
		return nil, fmt.Errorf("template set is required")
	}
	return &Engine{
		rulebook:   rulebook,
		templates:  templates,
		classifier: classifier,
	}, nil
}

// Evaluate classifies the input and produces safe guidance.
func (e *Engine) Evaluate(input Input) (*Result, error) {
	if strings.TrimSpace(input.SymptomsText) == "" {
		return nil, fmt.Errorf("symptoms text is required")
	}

	// Pregnancy enters the matchable text so pregnancy-conditional rules
	// fire even when the symptoms text itself does not mention it. Prepended,
	// because the rule regexes read pregnancy before the symptom.
	matchable := input.SymptomsText
	if input.Pregnancy {
		matchable = "pregnancy " + matchable
	}

	flags := e.rulebook.Evaluate(matchable)

	category := CategoryPHC
	if len(flags) > 0 {
		category = CategoryEmergency
	} else if e.classifier != nil {
		if c := e.classifier.Classify(input.SymptomsText, input.Age, input.Sex); c == CategoryPHC || c == CategorySelfCare {
			category = c
		}
	}

	guidance, err := e.templates.Generate(category, input.Language)
	if err != nil {
		return nil, err
	}

	return &Result{
		Category:     category,
		RedFlags:     flags,
		GuidanceText: guidance,
		Language:     e.templates.Resolve(input.Language),
	}, nil
}

// HeuristicClassifier is the default keyword classifier: symptom words that
// warrant a facility visit map to phc, everything else to self_care.
type HeuristicClassifier struct{}

var phcKeywords = []string{"fever", "pain", "vomit", "rash", "swelling", "injury"}

func (HeuristicClassifier) Classify(symptomsText string, age int, sex string) Category {
	lowered := strings.ToLower(symptomsText)
	for _, kw := range phcKeywords {
		if strings.Contains(lowered, kw) {
			return CategoryPHC
		}
	}
	return CategorySelfCare
}
