// Package security holds the security pattern catalogue, the candidate scorer built on it,
// and the line-by-line document reporter.
//
// Detection is line-local regex matching. There is no taint tracking or parsing.
package security

import (
	"regexp"
	"sync"
)

// Category names a class of security pattern.
type Category string

const (
	SQLInjection  Category = "sql_injection"
	XSS           Category = "xss"
	CodeInjection Category = "code_injection"
	PathTraversal Category = "path_traversal"
)

// Penalty is subtracted from a candidate's security score when the category matches.
func (c Category) Penalty() float64 {
	switch c {
	case SQLInjection, CodeInjection:
		return 0.4
	case XSS, PathTraversal:
		return 0.3
	default:
		return 0
	}
}

func (c Category) String() string {
	return string(c)
}

type categoryPatterns struct {
	category Category
	patterns []*regexp.Regexp
}

// Catalogue maps categories to ordered pattern lists. It is read-only once built.
type Catalogue struct {
	entries []categoryPatterns
}

// NewCatalogue compiles the given pattern sources, keeping category and pattern order.
// Patterns match case-insensitively.
func NewCatalogue(sources map[Category][]string, order []Category) (*Catalogue, error) {
	c := &Catalogue{}
	for _, cat := range order {
		exprs, ok := sources[cat]
		if !ok {
			continue
		}
		entry := categoryPatterns{category: cat}
		for _, expr := range exprs {
			re, err := regexp.Compile("(?i)" + expr)
			if err != nil {
				return nil, err
			}
			entry.patterns = append(entry.patterns, re)
		}
		c.entries = append(c.entries, entry)
	}
	return c, nil
}

var defaultOrder = []Category{SQLInjection, XSS, CodeInjection, PathTraversal}

var defaultSources = map[Category][]string{
	SQLInjection: {
		`SELECT.*FROM.*WHERE.*=.*\$|%s`,
		`INSERT.*INTO.*VALUES.*\$|%s`,
		`UPDATE.*SET.*WHERE.*=.*\$|%s`,
		`DELETE.*FROM.*WHERE.*=.*\$|%s`,
	},
	XSS: {
		`<script.*?>.*?</script>`,
		`javascript:`,
		`on\w+\s*=\s*["'][^"']*["']`,
		`eval\s*\(`,
		`innerHTML\s*=`,
	},
	CodeInjection: {
		`exec\s*\(`,
		`system\s*\(`,
		`shell_exec\s*\(`,
		`passthru\s*\(`,
		`eval\s*\(`,
	},
	PathTraversal: {
		`\.\./|\.\.\\|%2e%2e%2f|%2e%2e%5c`,
		`/etc/passwd|/etc/shadow`,
		`\.\..*/.*/|\.\..*\\.*\\`,
	},
}

var defaultCatalogue = sync.OnceValue(func() *Catalogue {
	c, err := NewCatalogue(defaultSources, defaultOrder)
	if err != nil {
		panic("security: builtin catalogue does not compile: " + err.Error())
	}
	return c
})

// DefaultCatalogue returns the shared builtin catalogue.
func DefaultCatalogue() *Catalogue {
	return defaultCatalogue()
}

// Get returns the patterns of a category, or nil.
func (c *Catalogue) Get(cat Category) []*regexp.Regexp {
	for _, e := range c.entries {
		if e.category == cat {
			return e.patterns
		}
	}
	return nil
}

// Categories lists the catalogued categories in declaration order.
func (c *Catalogue) Categories() []Category {
	out := make([]Category, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.category
	}
	return out
}

// Matches returns every category with at least one pattern matching text.
func (c *Catalogue) Matches(text string) []Category {
	var out []Category
	for _, e := range c.entries {
		for _, re := range e.patterns {
			if re.MatchString(text) {
				out = append(out, e.category)
				break
			}
		}
	}
	return out
}

// Score rates text in [0,1]: 1.0 minus the penalty of each matched category, floored at 0.
func (c *Catalogue) Score(text string) float64 {
	score := 1.0
	for _, cat := range c.Matches(text) {
		score -= cat.Penalty()
	}
	if score < 0 {
		return 0
	}
	return score
}
