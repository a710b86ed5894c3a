package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wonderfulspam/format-smith/pkg/language"
	"github.com/wonderfulspam/format-smith/pkg/minimizer"
)

// ResolverOptions tunes a Resolver.
type ResolverOptions struct {
	// Concurrency bounds how many styles are fetched at once. Zero uses
	// runtime.NumCPU.
	Concurrency int
	Logger      *slog.Logger
}

// Resolver turns a StyleProvider into ordered minimization candidates and
// caches what it fetched. Style names are listed once; style documents are
// fetched once per language context.
type Resolver struct {
	provider    StyleProvider
	concurrency int
	logger      *slog.Logger

	mu     sync.Mutex
	names  []string
	styles map[language.Language][]minimizer.Candidate
}

// NewResolver creates a resolver over provider. opts may be nil.
func NewResolver(provider StyleProvider, opts *ResolverOptions) *Resolver {
	if opts == nil {
		opts = &ResolverOptions{}
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Resolver{
		provider:    provider,
		concurrency: concurrency,
		logger:      logger,
		styles:      make(map[language.Language][]minimizer.Candidate),
	}
}

// StyleNames returns the sorted style names.
func (r *Resolver) StyleNames(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.styleNamesLocked(ctx)
}

func (r *Resolver) styleNamesLocked(ctx context.Context) ([]string, error) {
	if r.names != nil {
		return r.names, nil
	}

	names, err := r.provider.ListStyleNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing styles: %w", err)
	}
	if len(names) == 0 {
		return nil, &FormatError{Source: "style list", Err: errors.New("no styles available")}
	}

	r.logger.Debug("listed styles", "count", len(names), "names", names)
	r.names = names
	return names, nil
}

// Candidates returns every style under the given language context, in
// style-name order. Fetches run concurrently but the result order never
// depends on which finishes first. Any failure aborts the whole lookup.
func (r *Resolver) Candidates(ctx context.Context, lang language.Language) ([]minimizer.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.styles[lang]; ok {
		return cached, nil
	}

	names, err := r.styleNamesLocked(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]minimizer.Candidate, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, name := range names {
		g.Go(func() error {
			config, err := r.provider.GetStyle(gctx, name, lang)
			if err != nil {
				return fmt.Errorf("fetching style %s: %w", name, err)
			}
			candidates[i] = minimizer.Candidate{Name: name, Base: config}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Debug("fetched styles", "language", lang.String(), "count", len(candidates))
	r.styles[lang] = candidates
	return candidates, nil
}
