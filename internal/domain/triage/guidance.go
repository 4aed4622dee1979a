package triage

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// RequiredPhrase must appear in every guidance text the engine emits.
const RequiredPhrase = "guidance, not a diagnosis"

// TemplateSet holds the per-category, per-language guidance templates and
// the forbidden-term list that keeps diagnosis language out of the output.
type TemplateSet struct {
	templates map[Category]map[string]string
	fallbacks map[string]string
	forbidden []string
	matcher   language.Matcher
	tags      []language.Tag
	tagKeys   []string
}

type templateDoc struct {
	ForbiddenTerms []string                     `yaml:"forbidden_terms"`
	Templates      map[string]map[string]string `yaml:"templates"`
	Fallback       map[string]string            `yaml:"fallback"`
}

// ParseTemplates loads a YAML template set. Every template and fallback must
// carry the required phrase and must be free of forbidden terms; a template
// file that fails either check is rejected at load time.
func ParseTemplates(data []byte) (*TemplateSet, error) {
	var doc templateDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse guidance templates: %w", err)
	}
	if len(doc.Fallback) == 0 {
		return nil, fmt.Errorf("guidance templates define no fallback")
	}

	ts := &TemplateSet{
		templates: make(map[Category]map[string]string),
		fallbacks: doc.Fallback,
		forbidden: normalizeTerms(doc.ForbiddenTerms),
	}

	for cat, byLang := range doc.Templates {
		category, err := NewCategory(cat)
		if err != nil {
			return nil, err
		}
		ts.templates[category] = byLang
	}

	langSet := make(map[string]bool)
	for _, byLang := range ts.templates {
		for lang, text := range byLang {
			langSet[lang] = true
			if err := validateGuidance(text, ts.forbidden); err != nil {
				return nil, fmt.Errorf("template %q: %w", lang, err)
			}
		}
	}
	for lang, text := range ts.fallbacks {
		langSet[lang] = true
		if err := validateGuidance(text, ts.forbidden); err != nil {
			return nil, fmt.Errorf("fallback %q: %w", lang, err)
		}
	}

	// English first so it is the matcher default.
	if langSet["en"] {
		ts.addTag("en")
	}
	for lang := range langSet {
		if lang != "en" {
			ts.addTag(lang)
		}
	}
	if len(ts.tags) == 0 {
		return nil, fmt.Errorf("guidance templates define no languages")
	}
	ts.matcher = language.NewMatcher(ts.tags)

	return ts, nil
}

func (ts *TemplateSet) addTag(lang string) {
	tag, err := language.Parse(lang)
	if err != nil {
		return
	}
	ts.tags = append(ts.tags, tag)
	ts.tagKeys = append(ts.tagKeys, lang)
}

// Resolve maps a client-requested language to the closest supported one.
func (ts *TemplateSet) Resolve(requested string) string {
	if requested == "" {
		return ts.tagKeys[0]
	}
	desired, err := language.Parse(requested)
	if err != nil {
		return ts.tagKeys[0]
	}
	_, index, _ := ts.matcher.Match(desired)
	return ts.tagKeys[index]
}

// Generate returns safe guidance for a category in the closest supported
// language. Output containing a forbidden term falls back to the generic
// safe template rather than failing the session.
func (ts *TemplateSet) Generate(category Category, requestedLang string) (string, error) {
	lang := ts.Resolve(requestedLang)

	text := ""
	if byLang, ok := ts.templates[category]; ok {
		text = byLang[lang]
		if text == "" {
			text = byLang[ts.tagKeys[0]]
		}
	}

	if text == "" || validateGuidance(text, ts.forbidden) != nil {
		text = ts.fallbacks[lang]
		if text == "" {
			text = ts.fallbacks[ts.tagKeys[0]]
		}
	}
	if text == "" {
		return "", fmt.Errorf("no guidance template for category %s", category)
	}
	return text, nil
}

func validateGuidance(text string, forbidden []string) error {
	lowered := strings.ToLower(text)
	for _, term := range forbidden {
		if strings.Contains(lowered, term) {
			return fmt.Errorf("guidance contains forbidden term: %s", term)
		}
	}
	if !strings.Contains(lowered, RequiredPhrase) {
		return fmt.Errorf("guidance is missing the required phrase %q", RequiredPhrase)
	}
	return nil
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
