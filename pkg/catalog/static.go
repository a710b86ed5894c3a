package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wonderfulspam/format-smith/pkg/document"
	"github.com/wonderfulspam/format-smith/pkg/language"
)

// Static serves styles held in memory. A style registered for
// language.None is used for every language that has no variant of its own.
type Static struct {
	mu     sync.RWMutex
	styles map[string]map[language.Language]*document.Mapping
}

// NewStatic creates an empty in-memory provider.
func NewStatic() *Static {
	return &Static{styles: make(map[string]map[language.Language]*document.Mapping)}
}

// Add registers the configuration of a style under a language context.
func (s *Static) Add(name string, lang language.Language, config *document.Mapping) {
	s.mu.Lock()
	defer s.mu.Unlock()

	variants, ok := s.styles[name]
	if !ok {
		variants = make(map[language.Language]*document.Mapping)
		s.styles[name] = variants
	}
	variants[lang] = config
}

// ListStyleNames returns the registered names, sorted.
func (s *Static) ListStyleNames(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.styles))
	for name := range s.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// GetStyle returns a copy of the registered configuration.
func (s *Static) GetStyle(ctx context.Context, name string, lang language.Language) (*document.Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	variants, ok := s.styles[name]
	if !ok {
		return nil, &FormatError{Source: "style " + name, Err: errors.New("unknown style")}
	}
	if config, ok := variants[lang]; ok {
		return config.Clone(), nil
	}
	if config, ok := variants[language.None]; ok {
		return config.Clone(), nil
	}
	return nil, &FormatError{Source: "style " + name, Err: fmt.Errorf("no variant for language %s", lang)}
}

// LoadDirectory builds a Static provider from style dumps on disk. A file
// named <Style>.yml (or .yaml) holds the default variant and
// <Style>.<Language>.yml a language-specific one. Each file must contain
// exactly one mapping document.
func LoadDirectory(dir string) (*Static, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading style directory: %w", err)
	}

	s := NewStatic()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yml" && ext != ".yaml" {
			continue
		}

		name, lang, err := splitStyleFileName(strings.TrimSuffix(entry.Name(), ext))
		if err != nil {
			return nil, err
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading style file: %w", err)
		}
		config, err := document.ParseSingle(data)
		if err != nil {
			return nil, &FormatError{Source: path, Err: err}
		}
		s.Add(name, lang, config)
	}

	if len(s.styles) == 0 {
		return nil, &FormatError{Source: dir, Err: errors.New("no style files found")}
	}
	return s, nil
}

func splitStyleFileName(stem string) (string, language.Language, error) {
	name, tag, found := strings.Cut(stem, ".")
	if !found {
		return name, language.None, nil
	}
	lang, ok := language.Lookup(tag)
	if !ok {
		return "", language.None, fmt.Errorf("style file %q: unknown language %q", stem, tag)
	}
	return name, lang, nil
}
