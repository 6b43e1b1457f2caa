package callflow

import (
	"regexp"
	"strings"
)

var (
	anyBracketSpan = regexp.MustCompile(`\[[^\]]*\]`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// recognizedBracketSpan matches only spans whose kind is in tagTable.
var recognizedBracketSpan = func() *regexp.Regexp {
	kinds := make([]string, len(tagTable))
	for i, t := range tagTable {
		kinds[i] = regexp.QuoteMeta(string(t.kind))
	}
	return regexp.MustCompile(`(?i)\[\s*(?:` + strings.Join(kinds, "|") + `)\s*:[^\]]*\]`)
}()

// Fallback labels for utterances whose text is nothing but markup.
const (
	ClientFallbackText = "Client Response"
	AgentFallbackText  = "Agent Response"
)

// Sanitizer turns the remainder of a dialogue line into display text.
type Sanitizer struct {
	span *regexp.Regexp
}

// NewSanitizer returns a Sanitizer for the given strip mode.
// An empty mode means StripAll.
func NewSanitizer(mode StripMode) Sanitizer {
	if mode == StripRecognized {
		return Sanitizer{span: recognizedBracketSpan}
	}
	return Sanitizer{span: anyBracketSpan}
}

// Sanitize removes bracketed markup, collapses whitespace and trims.
// An empty result is replaced by the role's fallback text.
func (s Sanitizer) Sanitize(role Role, remainder string) string {
	span := s.span
	if span == nil {
		span = anyBracketSpan
	}
	text := span.ReplaceAllString(remainder, "")
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	if text != "" {
		return text
	}
	if role == RoleAgent {
		return AgentFallbackText
	}
	return ClientFallbackText
}

// Sanitize strips every bracketed span from remainder.
func Sanitize(role Role, remainder string) string {
	return NewSanitizer(StripAll).Sanitize(role, remainder)
}
