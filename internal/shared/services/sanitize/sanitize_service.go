// Package sanitize normalizes user-supplied text before it is stored or
// rendered. Citizen free text (complaint descriptions, feedback comments)
// is reduced to plain text; officer notes and triage guidance are written
// in markdown and rendered to sanitized HTML for the dashboard.
package sanitize

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

type Service interface {
	// RenderMarkdown converts markdown to sanitized HTML.
	RenderMarkdown(markdown string) (string, error)
	// SanitizeHTML strips disallowed tags and attributes from HTML.
	SanitizeHTML(htmlContent string) string
	// PlainText strips all markup from free text and collapses surrounding whitespace.
	PlainText(input string) string
}

type serviceImpl struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewService() Service {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Table,
			extension.Strikethrough,
			extension.Linkify,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			ghtml.WithHardWraps(),
			ghtml.WithXHTML(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span", "div", "pre")
	policy.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	return &serviceImpl{
		md:     md,
		policy: policy,
		strict: bluemonday.StrictPolicy(),
	}
}

func (s *serviceImpl) RenderMarkdown(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return s.policy.Sanitize(buf.String()), nil
}

func (s *serviceImpl) SanitizeHTML(htmlContent string) string {
	return s.policy.Sanitize(htmlContent)
}

func (s *serviceImpl) PlainText(input string) string {
	stripped := s.strict.Sanitize(input)
	// StrictPolicy entity-escapes what it keeps; unescape so stored text
	// holds the literal characters the citizen typed.
	return strings.TrimSpace(html.UnescapeString(stripped))
}
