// Package simplifier runs the minimizer over every document of a
// configuration stream.
package simplifier

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/wonderfulspam/format-smith/pkg/catalog"
	"github.com/wonderfulspam/format-smith/pkg/document"
	"github.com/wonderfulspam/format-smith/pkg/minimizer"
)

// Simplifier minimizes configuration documents against the styles supplied
// by a catalog resolver.
type Simplifier struct {
	resolver *catalog.Resolver
	logger   *slog.Logger
}

// New creates a Simplifier. logger may be nil.
func New(resolver *catalog.Resolver, logger *slog.Logger) *Simplifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Simplifier{resolver: resolver, logger: logger}
}

// Simplify minimizes one document. Documents that already name a base style
// are returned unchanged without consulting the catalog, and Run writes them
// in their original spelling.
func (s *Simplifier) Simplify(ctx context.Context, config *document.Mapping) (*minimizer.Result, error) {
	if minimizer.IsMinimal(config) {
		return &minimizer.Result{Override: config, PassThrough: true}, nil
	}

	lang := minimizer.LanguageOf(config)
	candidates, err := s.resolver.Candidates(ctx, lang)
	if err != nil {
		return nil, err
	}

	return minimizer.Select(config, lang, candidates)
}

// SimplifyAll minimizes each document independently and returns the
// results in input order.
func (s *Simplifier) SimplifyAll(ctx context.Context, configs []*document.Mapping) ([]*document.Mapping, error) {
	out := make([]*document.Mapping, 0, len(configs))
	for i, config := range configs {
		res, err := s.Simplify(ctx, config)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}

		if res.PassThrough {
			s.logger.Debug("document already names a base style", "document", i)
		} else {
			s.logger.Debug("selected base style",
				"document", i,
				"language", minimizer.LanguageOf(config).String(),
				"style", res.Base,
				"entries", res.Override.Len(),
				"scores", res.Scores)
		}
		out = append(out, res.Override)
	}
	return out, nil
}

// Run reads a configuration stream from r and writes the minimized stream
// to w.
func (s *Simplifier) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	configs, err := document.ParseAll(r)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}

	simplified, err := s.SimplifyAll(ctx, configs)
	if err != nil {
		return err
	}

	if err := document.Write(w, simplified...); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Expand reconstructs the full configuration of every override document in
// the stream read from r and writes them to w. Documents without a
// BasedOnStyle key are written unchanged.
func (s *Simplifier) Expand(ctx context.Context, r io.Reader, w io.Writer) error {
	overrides, err := document.ParseAll(r)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}

	out := make([]*document.Mapping, 0, len(overrides))
	for i, override := range overrides {
		name, ok := minimizer.BaseStyle(override)
		if !ok {
			out = append(out, override)
			continue
		}

		base, err := s.baseStyle(ctx, name, override)
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		out = append(out, minimizer.Expand(override, base))
	}

	if err := document.Write(w, out...); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func (s *Simplifier) baseStyle(ctx context.Context, name string, override *document.Mapping) (*document.Mapping, error) {
	candidates, err := s.resolver.Candidates(ctx, minimizer.LanguageOf(override))
	if err != nil {
		return nil, err
	}
	for _, c := range candidates {
		if strings.EqualFold(c.Name, name) {
			return c.Base, nil
		}
	}
	return nil, fmt.Errorf("unknown base style %q", name)
}
