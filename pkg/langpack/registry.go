package langpack

import (
	"fmt"
	"sort"
	"sync"
)

// Registry resolves a language tag to its pack. The zero value is an empty registry.
type Registry struct {
	packs map[string]*Pack
}

// NewRegistry builds a registry from packs; each language may appear once.
func NewRegistry(packs ...*Pack) (*Registry, error) {
	r := &Registry{packs: make(map[string]*Pack, len(packs))}
	for _, p := range packs {
		if _, exists := r.packs[p.Language]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLanguage, p.Language)
		}
		r.packs[p.Language] = p
	}
	return r, nil
}

// Get returns the pack for language. A miss is not an error.
func (r *Registry) Get(language string) (*Pack, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.packs[language]
	return p, ok
}

// Languages returns the registered language tags, sorted.
func (r *Registry) Languages() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.packs))
	for lang := range r.packs {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// With returns a new registry holding r's packs overlaid by packs.
// Packs for an already registered language replace it; r itself is left untouched.
func (r *Registry) With(packs ...*Pack) *Registry {
	merged := &Registry{packs: make(map[string]*Pack, len(r.packs)+len(packs))}
	for lang, p := range r.packs {
		merged.packs[lang] = p
	}
	for _, p := range packs {
		merged.packs[p.Language] = p
	}
	return merged
}

// Without returns a new registry lacking the given languages.
func (r *Registry) Without(languages ...string) *Registry {
	drop := make(map[string]bool, len(languages))
	for _, l := range languages {
		drop[l] = true
	}
	out := &Registry{packs: make(map[string]*Pack, len(r.packs))}
	for lang, p := range r.packs {
		if !drop[lang] {
			out.packs[lang] = p
		}
	}
	return out
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(builtinPacks()...)
	if err != nil {
		panic(fmt.Sprintf("langpack: builtin packs are invalid: %v", err))
	}
	return r
})

// Default returns the shared registry of builtin packs.
func Default() *Registry {
	return defaultRegistry()
}
