// Package suggest is the core of codeserve: it runs the candidate generators for a cursor
// position, weights and security-scores their output, and ranks the result.
package suggest

import "strings"

// MaxResults caps every ranked list handed back to a caller.
const MaxResults = 5

// Model identifies the generator a candidate came from.
type Model int

const (
	TemplateTrigger Model = iota
	AdjacentLine
	ContextAware
	PrefixKeyword
	Fallback
)

// Weight is the fixed multiplier applied to a model's raw confidence.
func (m Model) Weight() float64 {
	switch m {
	case TemplateTrigger:
		return 0.35
	case AdjacentLine, ContextAware:
		return 0.25
	case PrefixKeyword:
		return 0.15
	default:
		return 1.0
	}
}

// String returns the short identity reported to editors.
func (m Model) String() string {
	switch m {
	case TemplateTrigger:
		return "A"
	case AdjacentLine:
		return "B"
	case ContextAware:
		return "C"
	case PrefixKeyword:
		return "D"
	case Fallback:
		return "Fallback"
	default:
		return "unknown"
	}
}

// Label is a readable name for logs and the CLI.
func (m Model) Label() string {
	switch m {
	case TemplateTrigger:
		return "template-trigger"
	case AdjacentLine:
		return "adjacent-line"
	case ContextAware:
		return "context-aware"
	case PrefixKeyword:
		return "prefix-keyword"
	case Fallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Candidate is one proposed insertion.
type Candidate struct {
	Text        string
	Confidence  float64
	Security    float64
	Model       Model
	Description string
}

// Composite is the ranking score.
func (c Candidate) Composite() float64 {
	return 0.7*c.Confidence + 0.3*c.Security
}

// Position is a 0-based cursor location.
type Position struct {
	Line   int
	Column int
}

// Request is the input shared by all generators for one suggestion call.
type Request struct {
	Document string
	Position Position
	Language string
	// Prefix is the current line's text up to the cursor.
	Prefix string

	lines []string
}

// NewRequest splits the document once so generators can share the lines.
func NewRequest(document string, pos Position, language, prefix string) *Request {
	return &Request{
		Document: document,
		Position: pos,
		Language: language,
		Prefix:   prefix,
		lines:    strings.Split(document, "\n"),
	}
}

// Line returns line n, or "" outside the document.
func (r *Request) Line(n int) string {
	if n < 0 || n >= len(r.lines) {
		return ""
	}
	return r.lines[n]
}
