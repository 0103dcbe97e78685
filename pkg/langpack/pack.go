/*
Package langpack holds the static per-language data the suggestion generators draw from.

A Pack carries an ordered keyword list, an ordered trigger -> template table and a set of
named extraction patterns. Keywords are also indexed in a Patricia trie so prefix lookups
don't scan the whole list. Packs and registries are never mutated after construction and
can be shared freely between goroutines.
*/
package langpack

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"
)

var (
	ErrEmptyLanguage     = errors.New("language pack has no language tag")
	ErrDuplicateTrigger  = errors.New("duplicate completion trigger")
	ErrDuplicateKeyword  = errors.New("duplicate keyword")
	ErrDuplicateLanguage = errors.New("duplicate language pack")
)

// Completion maps a trigger typed right before the cursor to the template inserted after it.
type Completion struct {
	Trigger  string
	Template string
}

// Pack is the data set for one language.
type Pack struct {
	Language    string
	Keywords    []string
	Completions []Completion
	Patterns    map[string]*regexp.Regexp

	keywordTrie *patricia.Trie
}

// NewPack validates and indexes a language pack.
func NewPack(language string, keywords []string, completions []Completion, patterns map[string]*regexp.Regexp) (*Pack, error) {
	if language == "" {
		return nil, ErrEmptyLanguage
	}

	trie := patricia.NewTrie()
	for i, kw := range keywords {
		if !trie.Insert(patricia.Prefix(kw), i) {
			return nil, fmt.Errorf("%s: %w: %q", language, ErrDuplicateKeyword, kw)
		}
	}

	seen := make(map[string]bool, len(completions))
	for _, c := range completions {
		if seen[c.Trigger] {
			return nil, fmt.Errorf("%s: %w: %q", language, ErrDuplicateTrigger, c.Trigger)
		}
		seen[c.Trigger] = true
	}

	if patterns == nil {
		patterns = map[string]*regexp.Regexp{}
	}

	return &Pack{
		Language:    language,
		Keywords:    append([]string(nil), keywords...),
		Completions: append([]Completion(nil), completions...),
		Patterns:    patterns,
		keywordTrie: trie,
	}, nil
}

// KeywordsWithPrefix returns the keywords starting with prefix, in keyword-list order.
func (p *Pack) KeywordsWithPrefix(prefix string) []string {
	if prefix == "" {
		return append([]string(nil), p.Keywords...)
	}

	var idx []int
	p.keywordTrie.VisitSubtree(patricia.Prefix(prefix), func(_ patricia.Prefix, item patricia.Item) error {
		idx = append(idx, item.(int))
		return nil
	})
	sort.Ints(idx)

	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = p.Keywords[n]
	}
	return out
}

// Triggers lists the completion triggers in declaration order.
func (p *Pack) Triggers() []string {
	out := make([]string, len(p.Completions))
	for i, c := range p.Completions {
		out[i] = c.Trigger
	}
	return out
}

// PatternLabels lists the extraction pattern labels, sorted.
func (p *Pack) PatternLabels() []string {
	out := make([]string, 0, len(p.Patterns))
	for label := range p.Patterns {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}
