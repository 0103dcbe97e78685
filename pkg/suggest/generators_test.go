package suggest

import (
	"strings"
	"testing"

	"github.com/bastiangx/codeserve/pkg/langpack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedJitter(v float64) Jitter {
	return func() float64 { return v }
}

func TestTemplateGenerator(t *testing.T) {
	g := templateGenerator{packs: langpack.Default(), jitter: fixedJitter(0.5)}

	out := g.Generate(NewRequest("def ", Position{Column: 4}, "python", "def "))
	require.Len(t, out, 1)
	py, _ := langpack.Default().Get("python")
	assert.Equal(t, py.Completions[0].Template, out[0].Text)
	assert.InDelta(t, 0.9, out[0].Confidence, 1e-9)
	assert.Equal(t, 0.9, out[0].Security)
	assert.Equal(t, TemplateTrigger, out[0].Model)

	assert.Empty(t, g.Generate(NewRequest("", Position{}, "lua", "def ")))
}

func TestTemplateGeneratorJitterBand(t *testing.T) {
	for _, j := range []float64{0, 0.25, 0.999} {
		g := templateGenerator{packs: langpack.Default(), jitter: fixedJitter(j)}
		out := g.Generate(NewRequest("", Position{}, "css", "display: "))
		require.Len(t, out, 1)
		assert.GreaterOrEqual(t, out[0].Confidence, 0.85)
		assert.Less(t, out[0].Confidence, 0.95)
		assert.Equal(t, "flex;", out[0].Text)
	}
}

func TestAdjacentGenerator(t *testing.T) {
	testCases := []struct {
		doc      string
		line     int
		language string
		want     string
		desc     string
	}{
		{"def f():\n", 1, "python", `    """Function docstring"""`, "python docstring"},
		{"def f():\n    ", 1, "python", `    """Function docstring"""`, "whitespace counts as blank"},
		{"def f():\n    x", 1, "python", "", "current line not blank"},
		{"function f() {\n\n}", 1, "javascript", "    // TODO: Implement function logic", "js comment"},
		{"function f() {\n\n}", 1, "typescript", "", "typescript has no adjacent rule"},
		{"\n", 0, "python", "", "no previous line"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			out := adjacentGenerator{}.Generate(NewRequest(tc.doc, Position{Line: tc.line}, tc.language, ""))
			if tc.want == "" {
				assert.Empty(t, out)
				return
			}
			require.Len(t, out, 1)
			assert.Equal(t, tc.want, out[0].Text)
			assert.Equal(t, AdjacentLine, out[0].Model)
		})
	}
}

func TestContextGenerator(t *testing.T) {
	doc := "class Repo:\n    def find(self):\n        return\n"

	out := contextGenerator{}.Generate(NewRequest(doc, Position{Line: 2, Column: 14}, "python", "        return"))
	require.Len(t, out, 1)
	assert.Equal(t, " result", out[0].Text)
	assert.Equal(t, 0.9, out[0].Confidence)

	out = contextGenerator{}.Generate(NewRequest(doc, Position{Line: 2}, "python", "        self."))
	require.Len(t, out, 1)
	assert.Equal(t, "attribute", out[0].Text)
	assert.Equal(t, 0.85, out[0].Confidence)

	// return outside any function
	out = contextGenerator{}.Generate(NewRequest("return", Position{}, "python", "return"))
	assert.Empty(t, out)
}

func TestKeywordGenerator(t *testing.T) {
	g := keywordGenerator{packs: langpack.Default()}

	out := g.Generate(NewRequest("", Position{}, "javascript", "c"))
	texts := make([]string, len(out))
	for i, c := range out {
		texts[i] = c.Text
		assert.Equal(t, 0.7, c.Confidence)
		assert.Equal(t, PrefixKeyword, c.Model)
	}
	assert.Equal(t, []string{"onst", "atch", "lass"}, texts)

	assert.Empty(t, g.Generate(NewRequest("", Position{}, "javascript", "")), "empty prefix")
	assert.Empty(t, g.Generate(NewRequest("", Position{}, "lua", "lo")), "no pack")

	// the prefix is matched lowercased
	out = g.Generate(NewRequest("", Position{}, "python", "RET"))
	require.Len(t, out, 1)
	assert.Equal(t, "urn", out[0].Text)
}

// prefix + text rebuilds a pack keyword, and never more results than keywords
func TestKeywordGeneratorRebuildsKeywords(t *testing.T) {
	g := keywordGenerator{packs: langpack.Default()}
	for _, lang := range langpack.Default().Languages() {
		pack, _ := langpack.Default().Get(lang)
		prefixes := []string{"a", "c", "d", "e", "f", "h", "i", "p", "t", "w", "pr", "zz"}
		for _, kw := range pack.Keywords {
			prefixes = append(prefixes, kw[:1], kw[:len(kw)/2+1])
		}
		for _, prefix := range prefixes {
			out := g.Generate(NewRequest("", Position{}, lang, prefix))
			assert.LessOrEqual(t, len(out), len(pack.Keywords))
			for _, c := range out {
				assert.Contains(t, pack.Keywords, prefix+c.Text)
			}
		}
	}
}

// lowercasing "İ" shrinks it to "i", so a cut at len(prefix) would not rebuild a keyword
func TestKeywordLookupSkipsLengthChangingCase(t *testing.T) {
	g := keywordGenerator{packs: langpack.Default()}
	for _, prefix := range []string{"İ", "İm", "\u212a"} {
		assert.Empty(t, g.Generate(NewRequest(prefix, Position{Column: len(prefix)}, "python", prefix)), prefix)
		assert.Empty(t, FallbackCandidates(langpack.Default(), "python", prefix), prefix)
	}
}

func TestFallbackCandidates(t *testing.T) {
	out := FallbackCandidates(langpack.Default(), "python", "e")
	require.Len(t, out, 3)
	for i, want := range []string{"lse", "lif", "xcept"} {
		assert.Equal(t, want, out[i].Text)
		assert.Equal(t, 0.5, out[i].Confidence)
		assert.Equal(t, 1.0, out[i].Security)
		assert.Equal(t, Fallback, out[i].Model)
	}

	out = FallbackCandidates(langpack.Default(), "html", "")
	require.Len(t, out, 3)
	assert.Equal(t, "div", out[0].Text)

	assert.Empty(t, FallbackCandidates(langpack.Default(), "lua", "lo"))
}

func TestModelWeights(t *testing.T) {
	assert.Equal(t, 0.35, TemplateTrigger.Weight())
	assert.Equal(t, 0.25, AdjacentLine.Weight())
	assert.Equal(t, 0.25, ContextAware.Weight())
	assert.Equal(t, 0.15, PrefixKeyword.Weight())
	assert.Equal(t, 1.0, Fallback.Weight())
	assert.Equal(t, 1.0, Model(42).Weight())

	names := []string{}
	for m := TemplateTrigger; m <= Fallback; m++ {
		names = append(names, m.String())
	}
	assert.Equal(t, "A B C D Fallback", strings.Join(names, " "))
}
