package langpack

import (
	"fmt"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

type packFile struct {
	Packs []packEntry `toml:"pack"`
}

type packEntry struct {
	Language    string            `toml:"language"`
	Keywords    []string          `toml:"keywords"`
	Completions []completionEntry `toml:"completion"`
	Patterns    map[string]string `toml:"patterns"`
}

type completionEntry struct {
	Trigger  string `toml:"trigger"`
	Template string `toml:"template"`
}

// LoadFile reads extra language packs from a TOML file of [[pack]] tables:
//
//	[[pack]]
//	language = "lua"
//	keywords = ["function", "local", "end"]
//
//	[[pack.completion]]
//	trigger = "function "
//	template = "name()\n    \nend"
//
//	[pack.patterns]
//	function = 'function\s+(\w+)'
func LoadFile(path string) ([]*Pack, error) {
	var f packFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode pack file %s: %w", path, err)
	}

	packs := make([]*Pack, 0, len(f.Packs))
	for i, e := range f.Packs {
		patterns := make(map[string]*regexp.Regexp, len(e.Patterns))
		for label, expr := range e.Patterns {
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("pack %d (%s): pattern %q: %w", i, e.Language, label, err)
			}
			patterns[label] = re
		}

		completions := make([]Completion, len(e.Completions))
		for j, c := range e.Completions {
			completions[j] = Completion{Trigger: c.Trigger, Template: c.Template}
		}

		p, err := NewPack(e.Language, e.Keywords, completions, patterns)
		if err != nil {
			return nil, fmt.Errorf("pack %d: %w", i, err)
		}
		packs = append(packs, p)
	}

	log.Debugf("Loaded %d language packs from %s", len(packs), path)
	return packs, nil
}
