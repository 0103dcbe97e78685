package suggest

import (
	"strings"

	"github.com/bastiangx/codeserve/pkg/langpack"
)

// Generator proposes unweighted candidates for a request.
// Implementations must not mutate the request and must tolerate missing data.
type Generator interface {
	Model() Model
	Generate(r *Request) []Candidate
}

// Jitter returns a value in [0,1) used to spread template confidences.
type Jitter func() float64

type templateGenerator struct {
	packs  *langpack.Registry
	jitter Jitter
}

func (g templateGenerator) Model() Model { return TemplateTrigger }

// Generate emits a pack template for every trigger the prefix ends with.
func (g templateGenerator) Generate(r *Request) []Candidate {
	pack, ok := g.packs.Get(r.Language)
	if !ok {
		return nil
	}

	var out []Candidate
	for _, c := range pack.Completions {
		if !strings.HasSuffix(r.Prefix, c.Trigger) {
			continue
		}
		out = append(out, Candidate{
			Text:        c.Template,
			Confidence:  0.85 + g.jitter()*0.1,
			Security:    0.9,
			Model:       TemplateTrigger,
			Description: "Code generation suggestion",
		})
	}
	return out
}

type adjacentGenerator struct{}

func (adjacentGenerator) Model() Model { return AdjacentLine }

// Generate looks at the line above the cursor when the current line is blank.
func (adjacentGenerator) Generate(r *Request) []Candidate {
	current := strings.TrimSpace(r.Line(r.Position.Line))
	if current != "" {
		return nil
	}
	previous := r.Line(r.Position.Line - 1)

	switch r.Language {
	case "python":
		if strings.Contains(previous, "def ") {
			return []Candidate{{
				Text:        `    """Function docstring"""`,
				Confidence:  0.8,
				Security:    1.0,
				Model:       AdjacentLine,
				Description: "Docstring suggestion",
			}}
		}
	case "javascript":
		if strings.Contains(previous, "function") {
			return []Candidate{{
				Text:        "    // TODO: Implement function logic",
				Confidence:  0.75,
				Security:    1.0,
				Model:       AdjacentLine,
				Description: "Comment suggestion",
			}}
		}
	}
	return nil
}

type contextGenerator struct{}

func (contextGenerator) Model() Model { return ContextAware }

func (contextGenerator) Generate(r *Request) []Candidate {
	cc := AnalyzeContext(r)

	var out []Candidate
	if cc.InFunction && r.Language == "python" && strings.HasSuffix(strings.TrimSpace(r.Prefix), "return") {
		out = append(out, Candidate{
			Text:        " result",
			Confidence:  0.9,
			Security:    1.0,
			Model:       ContextAware,
			Description: "Return statement completion",
		})
	}
	if cc.InClass && strings.Contains(r.Prefix, "self.") {
		out = append(out, Candidate{
			Text:        "attribute",
			Confidence:  0.85,
			Security:    1.0,
			Model:       ContextAware,
			Description: "Class attribute suggestion",
		})
	}
	return out
}

type keywordGenerator struct {
	packs *langpack.Registry
}

func (g keywordGenerator) Model() Model { return PrefixKeyword }

// Generate completes pack keywords that start with the lowercased prefix.
func (g keywordGenerator) Generate(r *Request) []Candidate {
	if r.Prefix == "" {
		return nil
	}
	pack, ok := g.packs.Get(r.Language)
	if !ok {
		return nil
	}

	lower, ok := lowerPrefix(r.Prefix)
	if !ok {
		return nil
	}
	matches := pack.KeywordsWithPrefix(lower)

	out := make([]Candidate, 0, len(matches))
	for _, kw := range matches {
		out = append(out, Candidate{
			Text:        kw[len(lower):],
			Confidence:  0.7,
			Security:    1.0,
			Model:       PrefixKeyword,
			Description: "Keyword completion",
		})
	}
	return out
}

// lowerPrefix lowercases prefix for keyword lookup. It reports false when lowering
// changes the byte length ("İ" becomes "i"), since completions are cut at len(prefix).
func lowerPrefix(prefix string) (string, bool) {
	lower := strings.ToLower(prefix)
	return lower, len(lower) == len(prefix)
}

// fallbackLimit caps the keyword list returned when generation fails.
const fallbackLimit = 3

// FallbackCandidates is the minimal keyword result used when the generators fail.
func FallbackCandidates(packs *langpack.Registry, language, prefix string) []Candidate {
	pack, ok := packs.Get(language)
	if !ok {
		return nil
	}

	lower, ok := lowerPrefix(prefix)
	if !ok {
		return nil
	}
	matches := pack.KeywordsWithPrefix(lower)
	if len(matches) > fallbackLimit {
		matches = matches[:fallbackLimit]
	}

	out := make([]Candidate, 0, len(matches))
	for _, kw := range matches {
		out = append(out, Candidate{
			Text:        kw[len(lower):],
			Confidence:  0.5,
			Security:    1.0,
			Model:       Fallback,
			Description: "Fallback suggestion",
		})
	}
	return out
}
