package security

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, c *Catalogue, text, language string) *Report {
	t.Helper()
	r, err := c.ScanContext(context.Background(), text, language)
	require.NoError(t, err)
	return r
}

func TestCategoryPenalty(t *testing.T) {
	assert.Equal(t, 0.4, SQLInjection.Penalty())
	assert.Equal(t, 0.4, CodeInjection.Penalty())
	assert.Equal(t, 0.3, XSS.Penalty())
	assert.Equal(t, 0.3, PathTraversal.Penalty())
	assert.Equal(t, 0.0, Category("other").Penalty())
}

func TestDefaultCatalogueShape(t *testing.T) {
	c := DefaultCatalogue()
	assert.Equal(t, []Category{SQLInjection, XSS, CodeInjection, PathTraversal}, c.Categories())
	assert.Len(t, c.Get(SQLInjection), 4)
	assert.Len(t, c.Get(XSS), 5)
	assert.Len(t, c.Get(CodeInjection), 5)
	assert.Len(t, c.Get(PathTraversal), 3)
	assert.Nil(t, c.Get("missing"))
}

func TestScore(t *testing.T) {
	c := DefaultCatalogue()

	testCases := []struct {
		text string
		want float64
		desc string
	}{
		{"variableName = ", 1.0, "clean text"},
		{"query = \"SELECT * FROM t WHERE id = $id\"", 0.6, "sql"},
		{"el.innerHTML = x", 0.7, "xss"},
		{"exec(cmd)", 0.6, "code injection"},
		{"open('../../etc/passwd')", 0.7, "path traversal"},
		{"eval(x)", 0.3, "eval hits xss and code injection"},
		{"eval(x); SELECT a FROM b WHERE c = $d; ../", 0, "floored at zero"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.InDelta(t, tc.want, c.Score(tc.text), 1e-9)
		})
	}
}

// a category counts once no matter how many of its patterns hit
func TestScoreCountsCategoryOnce(t *testing.T) {
	c := DefaultCatalogue()
	one := c.Score("system(a)")
	two := c.Score("system(a); passthru(b); shell_exec(c)")
	assert.InDelta(t, one, two, 1e-9)
}

func TestScoreMonotonic(t *testing.T) {
	c := DefaultCatalogue()
	steps := []string{
		"x = 1",
		"x = 1; ../",
		"x = 1; ../; onclick='go()'",
		"x = 1; ../; onclick='go()'; system(y)",
		"x = 1; ../; onclick='go()'; system(y); SELECT a FROM b WHERE c = $d",
	}
	prev := 1.0
	for _, s := range steps {
		got := c.Score(s)
		assert.LessOrEqual(t, got, prev, s)
		assert.GreaterOrEqual(t, got, 0.0)
		prev = got
	}
}

func TestScanSQLInjectionLine(t *testing.T) {
	doc := "import db\n\nq = \"SELECT * FROM users WHERE id = $id\"\nrun(q)"
	r := scan(t, DefaultCatalogue(), doc, "python")

	require.Len(t, r.Issues, 1)
	is := r.Issues[0]
	assert.Equal(t, "Potential SQL Injection", is.Title)
	assert.Equal(t, SeverityVulnerability, is.Severity)
	assert.Equal(t, 3, is.Line)
	assert.Equal(t, SQLInjection, is.Category)
	assert.Equal(t, 4, r.Lines)
	// 4 lines scale to 1, one vulnerability costs 0.2
	assert.InDelta(t, 0.8, r.Score, 1e-9)
	assert.Equal(t, 80, r.Percent())
}

func TestScanOneIssuePerMatchingPattern(t *testing.T) {
	r := scan(t, DefaultCatalogue(), "eval(input)", "javascript")

	require.Len(t, r.Issues, 2)
	assert.Equal(t, "Potential XSS Vulnerability", r.Issues[0].Title)
	assert.Equal(t, "Potential Code Injection", r.Issues[1].Title)
	assert.Equal(t, 1, r.Issues[0].Line)
	assert.Equal(t, map[Severity]int{SeverityVulnerability: 2}, r.Counts())
}

// path traversal is catalogued for candidate scoring but not reported
func TestScanSkipsPathTraversal(t *testing.T) {
	c := DefaultCatalogue()
	line := "open('../../etc/passwd')"

	assert.Less(t, c.Score(line), 1.0)
	r := scan(t, c, line, "python")
	assert.Empty(t, r.Issues)
	assert.Equal(t, 1.0, r.Score)
}

func TestScanScoreNormalizesPerTenLines(t *testing.T) {
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = "pass"
	}
	lines[0] = "exec(a)"
	lines[1] = "system(b)"
	r := scan(t, DefaultCatalogue(), strings.Join(lines, "\n"), "python")

	require.Len(t, r.Issues, 2)
	// 0.4 penalty over a 40 line document (scale 4)
	assert.InDelta(t, 0.9, r.Score, 1e-9)
}

func TestScanScoreFloor(t *testing.T) {
	doc := strings.Repeat("eval(x)\n", 5)
	r := scan(t, DefaultCatalogue(), doc, "javascript")
	assert.Equal(t, 0.0, r.Score)
}

func TestSeverityWeight(t *testing.T) {
	assert.Equal(t, 0.2, SeverityVulnerability.Weight())
	assert.Equal(t, 0.1, SeverityWarning.Weight())
	assert.Equal(t, 0.0, SeveritySafe.Weight())

	issues := []Issue{{Severity: SeverityWarning}, {Severity: SeverityWarning}}
	assert.InDelta(t, 0.8, overallScore(issues, 3), 1e-9)
}

func TestScanContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := DefaultCatalogue().ScanContext(ctx, "a\nb", "python")
	assert.ErrorIs(t, err, context.Canceled)
}
