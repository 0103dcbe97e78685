package suggest

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/bastiangx/codeserve/internal/logger"
	"github.com/bastiangx/codeserve/pkg/langpack"
	"github.com/bastiangx/codeserve/pkg/security"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Engine answers suggestion and security report requests.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	packs      *langpack.Registry
	catalogue  *security.Catalogue
	generators []Generator
	log        *log.Logger
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	packs      *langpack.Registry
	catalogue  *security.Catalogue
	jitter     Jitter
	generators []Generator
	logger     *log.Logger
}

// WithRegistry replaces the builtin language packs.
func WithRegistry(r *langpack.Registry) Option {
	return func(o *engineOptions) { o.packs = r }
}

// WithCatalogue replaces the builtin security catalogue.
func WithCatalogue(c *security.Catalogue) Option {
	return func(o *engineOptions) { o.catalogue = c }
}

// WithJitter sets the randomness behind template confidences.
func WithJitter(j Jitter) Option {
	return func(o *engineOptions) { o.jitter = j }
}

// WithGenerators overrides the generator set, in emission order.
func WithGenerators(gens ...Generator) Option {
	return func(o *engineOptions) { o.generators = gens }
}

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(o *engineOptions) { o.logger = l }
}

// NewEngine builds an engine over the builtin packs and catalogue unless overridden.
func NewEngine(opts ...Option) *Engine {
	o := engineOptions{
		packs:     langpack.Default(),
		catalogue: security.DefaultCatalogue(),
		jitter:    rand.Float64,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.New("suggest")
	}
	if o.generators == nil {
		o.generators = DefaultGenerators(o.packs, o.jitter)
	}

	return &Engine{
		packs:      o.packs,
		catalogue:  o.catalogue,
		generators: o.generators,
		log:        o.logger,
	}
}

// DefaultGenerators returns the template, adjacent-line, context and keyword generators.
func DefaultGenerators(packs *langpack.Registry, jitter Jitter) []Generator {
	return []Generator{
		templateGenerator{packs: packs, jitter: jitter},
		adjacentGenerator{},
		contextGenerator{},
		keywordGenerator{packs: packs},
	}
}

// Packs exposes the registry the engine was built with.
func (e *Engine) Packs() *langpack.Registry {
	return e.packs
}

// GenerateSuggestions returns at most MaxResults ranked candidates for the cursor.
// It never fails: if any generator fails, a short keyword fallback is returned instead.
func (e *Engine) GenerateSuggestions(ctx context.Context, document string, pos Position, language, prefix string) []Candidate {
	start := time.Now()
	req := NewRequest(document, pos, language, prefix)

	candidates, err := e.generate(ctx, req)
	if err != nil {
		e.log.Debugf("Generation failed for %s at %d:%d, using fallback: %v", language, pos.Line, pos.Column, err)
		return FallbackCandidates(e.packs, language, prefix)
	}

	ranked := Combine(candidates, e.catalogue)
	e.log.Debug("Suggestions ready",
		"lang", language,
		"raw", len(candidates),
		"ranked", len(ranked),
		"took", time.Since(start))
	return ranked
}

func (e *Engine) generate(ctx context.Context, req *Request) ([]Candidate, error) {
	results := make([][]Candidate, len(e.generators))

	g, gctx := errgroup.WithContext(ctx)
	for i, gen := range e.generators {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := safeGenerate(gen, req)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Candidate
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

func safeGenerate(gen Generator, req *Request) (out []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator %s panicked: %v", gen.Model().Label(), r)
		}
	}()
	return gen.Generate(req), nil
}

// GenerateSecurityReport scans the whole document. Errors are returned to the caller.
func (e *Engine) GenerateSecurityReport(ctx context.Context, document, language string) (*security.Report, error) {
	report, err := e.catalogue.ScanContext(ctx, document, language)
	if err != nil {
		return nil, fmt.Errorf("security report: %w", err)
	}
	e.log.Debugf("Security report for %s: %d issues, score %.2f", language, len(report.Issues), report.Score)
	return report, nil
}
