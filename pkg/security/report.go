package security

import (
	"context"
	"math"
	"strings"
)

// Severity of a reported issue.
type Severity string

const (
	SeverityVulnerability Severity = "vulnerability"
	SeverityWarning       Severity = "warning"
	SeveritySafe          Severity = "safe"
)

// Weight is the per-issue penalty fed into the report score.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityVulnerability:
		return 0.2
	case SeverityWarning:
		return 0.1
	default:
		return 0
	}
}

func (s Severity) String() string {
	return string(s)
}

// Issue is one pattern hit on one line.
type Issue struct {
	Title       string
	Description string
	Severity    Severity
	Line        int // 1-based
	Category    Category
}

// Report is the outcome of one document scan.
type Report struct {
	Score  float64
	Issues []Issue
	Lines  int
}

type finding struct {
	title       string
	description string
}

// reportedCategories are scanned by ScanContext, in order.
// PathTraversal feeds candidate scoring only and is not reported.
var reportedCategories = []Category{SQLInjection, XSS, CodeInjection}

var findings = map[Category]finding{
	SQLInjection: {
		title:       "Potential SQL Injection",
		description: "This line may be vulnerable to SQL injection attacks. Use parameterized queries.",
	},
	XSS: {
		title:       "Potential XSS Vulnerability",
		description: "This line may be vulnerable to cross-site scripting attacks. Sanitize user input.",
	},
	CodeInjection: {
		title:       "Potential Code Injection",
		description: "This line may be vulnerable to code injection attacks. Validate and sanitize input.",
	},
}

// ScanContext checks every line of text, stopping with ctx.Err() once ctx is done.
// language is accepted for symmetry with the suggestion path; the catalogue is
// language independent.
func (c *Catalogue) ScanContext(ctx context.Context, text, language string) (*Report, error) {
	lines := strings.Split(text, "\n")
	report := &Report{Lines: len(lines)}

	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, cat := range reportedCategories {
			f := findings[cat]
			for _, re := range c.Get(cat) {
				if !re.MatchString(line) {
					continue
				}
				report.Issues = append(report.Issues, Issue{
					Title:       f.title,
					Description: f.description,
					Severity:    SeverityVulnerability,
					Line:        i + 1,
					Category:    cat,
				})
			}
		}
	}

	report.Score = overallScore(report.Issues, len(lines))
	return report, nil
}

func overallScore(issues []Issue, totalLines int) float64 {
	var penalty float64
	for _, is := range issues {
		penalty += is.Severity.Weight()
	}
	scale := math.Max(1, float64(totalLines)/10)
	return math.Max(0, 1-penalty/scale)
}

// Counts tallies issues per severity.
func (r *Report) Counts() map[Severity]int {
	out := make(map[Severity]int, 3)
	for _, is := range r.Issues {
		out[is.Severity]++
	}
	return out
}

// Percent is the score rounded to a whole percentage.
func (r *Report) Percent() int {
	return int(math.Round(r.Score * 100))
}
