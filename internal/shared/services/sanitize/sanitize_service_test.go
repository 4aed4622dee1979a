package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText_StripsMarkup(t *testing.T) {
	svc := NewService()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text unchanged",
			input:    "wrong medicine was given at the PHC",
			expected: "wrong medicine was given at the PHC",
		},
		{
			name:     "script tag removed",
			input:    `before<script>alert("x")</script>after`,
			expected: "beforeafter",
		},
		{
			name:     "tags stripped text kept",
			input:    "<b>urgent</b> issue at <i>ward 3</i>",
			expected: "urgent issue at ward 3",
		},
		{
			name:     "entities unescaped",
			input:    "dosage &lt; 5mg",
			expected: "dosage < 5mg",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  spaced out  ",
			expected: "spaced out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.PlainText(tt.input))
		})
	}
}

func TestRenderMarkdown_SanitizesOutput(t *testing.T) {
	svc := NewService()

	out, err := svc.RenderMarkdown("## Resolution\n\nVisited the facility, **stocks replenished**.")
	require.NoError(t, err)
	assert.Contains(t, out, "<h2")
	assert.Contains(t, out, "<strong>stocks replenished</strong>")

	out, err = svc.RenderMarkdown(`note <script>alert("x")</script> text`)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestSanitizeHTML_RemovesEventHandlers(t *testing.T) {
	svc := NewService()

	out := svc.SanitizeHTML(`<p onclick="steal()">hello</p>`)
	assert.Equal(t, "<p>hello</p>", out)
}
