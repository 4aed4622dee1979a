package triage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTemplatesYAML = `
forbidden_terms:
  - you have
  - diagnosed with
  - diagnosis of
  - cancer
templates:
  emergency:
    en: "Seek emergency care now. Go to the nearest emergency room or call local emergency services. This is guidance, not a diagnosis."
    hi: "तुरंत आपातकालीन सहायता लें। निकटतम अस्पताल जाएं। This is guidance, not a diagnosis."
  phc:
    en: "Please visit your nearest primary health centre within 24 hours. This is guidance, not a diagnosis."
  self_care:
    en: "Your symptoms may be manageable with rest and fluids. Seek care if they worsen. This is guidance, not a diagnosis."
fallback:
  en: "Please consult a qualified health worker about your symptoms. This is guidance, not a diagnosis."
  hi: "कृपया किसी योग्य स्वास्थ्य कार्यकर्ता से परामर्श करें। This is guidance, not a diagnosis."
`

func mustTemplates(t *testing.T) *TemplateSet {
	t.Helper()
	ts, err := ParseTemplates([]byte(testTemplatesYAML))
	require.NoError(t, err)
	return ts
}

func TestParseTemplatesErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no fallback",
			yaml:    "templates:\n  phc:\n    en: \"This is guidance, not a diagnosis.\"",
			wantErr: "no fallback",
		},
		{
			name:    "unknown category",
			yaml:    "templates:\n  urgent:\n    en: \"This is guidance, not a diagnosis.\"\nfallback:\n  en: \"This is guidance, not a diagnosis.\"",
			wantErr: "invalid triage category",
		},
		{
			name:    "template missing required phrase",
			yaml:    "templates:\n  phc:\n    en: \"Visit a clinic soon.\"\nfallback:\n  en: \"This is guidance, not a diagnosis.\"",
			wantErr: "missing the required phrase",
		},
		{
			name:    "template with forbidden term",
			yaml:    "forbidden_terms: [\"you have\"]\ntemplates:\n  phc:\n    en: \"You have an infection. This is guidance, not a diagnosis.\"\nfallback:\n  en: \"This is guidance, not a diagnosis.\"",
			wantErr: "forbidden term",
		},
		{
			name:    "fallback with forbidden term",
			yaml:    "forbidden_terms: [\"diagnosed with\"]\nfallback:\n  en: \"You were diagnosed with flu. This is guidance, not a diagnosis.\"",
			wantErr: "forbidden term",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemplates([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTemplateSetResolve(t *testing.T) {
	ts := mustTemplates(t)

	tests := []struct {
		name      string
		requested string
		want      string
	}{
		{name: "empty defaults to english", requested: "", want: "en"},
		{name: "exact match", requested: "hi", want: "hi"},
		{name: "regional variant", requested: "hi-IN", want: "hi"},
		{name: "unsupported falls back to english", requested: "fr", want: "en"},
		{name: "garbage falls back to english", requested: "???", want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ts.Resolve(tt.requested))
		})
	}
}

func TestTemplateSetGenerate(t *testing.T) {
	ts := mustTemplates(t)

	t.Run("category and language hit", func(t *testing.T) {
		text, err := ts.Generate(CategoryEmergency, "hi")
		require.NoError(t, err)
		assert.Contains(t, text, "आपातकालीन")
		assert.Contains(t, strings.ToLower(text), RequiredPhrase)
	})

	t.Run("missing language falls back to english template", func(t *testing.T) {
		text, err := ts.Generate(CategoryPHC, "hi")
		require.NoError(t, err)
		assert.Contains(t, text, "primary health centre")
	})

	t.Run("every category carries the required phrase", func(t *testing.T) {
		for _, cat := range []Category{CategorySelfCare, CategoryPHC, CategoryEmergency} {
			text, err := ts.Generate(cat, "en")
			require.NoError(t, err)
			assert.Contains(t, strings.ToLower(text), RequiredPhrase)
		}
	})
}

func TestTemplateSetGenerateFallsBackForUnknownCategory(t *testing.T) {
	yaml := `
fallback:
  en: "Please consult a qualified health worker. This is guidance, not a diagnosis."
`
	ts, err := ParseTemplates([]byte(yaml))
	require.NoError(t, err)

	text, err := ts.Generate(CategoryEmergency, "en")
	require.NoError(t, err)
	assert.Contains(t, text, "qualified health worker")
}
