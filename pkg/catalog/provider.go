// Package catalog supplies the named base styles a configuration can be
// minimized against.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/wonderfulspam/format-smith/pkg/document"
	"github.com/wonderfulspam/format-smith/pkg/language"
)

// StyleProvider defines the interface for obtaining base styles
type StyleProvider interface {
	// ListStyleNames returns the known style names, sorted.
	ListStyleNames(ctx context.Context) ([]string, error)
	// GetStyle returns the full configuration of a style under the given
	// language context. language.None selects the tool's default.
	GetStyle(ctx context.Context, name string, lang language.Language) (*document.Mapping, error)
}

// BackendType represents the kind of style provider
type BackendType string

const (
	// BackendClangFormat runs a clang-format executable
	BackendClangFormat BackendType = "clang-format"
	// BackendDirectory reads pre-dumped styles from a directory
	BackendDirectory BackendType = "directory"
)

// DefaultExecutable is the clang-format binary looked up on PATH.
const DefaultExecutable = "clang-format"

// DefaultTimeout bounds a single invocation of the style tool.
const DefaultTimeout = 30 * time.Second

// Config holds the configuration for a style provider
type Config struct {
	Executable string
	Timeout    time.Duration
	Directory  string
}

// NewProvider creates a style provider for the given backend
func NewProvider(backend BackendType, config *Config) (StyleProvider, error) {
	if config == nil {
		config = &Config{}
	}

	switch backend {
	case BackendClangFormat, "":
		return NewClangFormat(config.Executable, config.Timeout), nil
	case BackendDirectory:
		if config.Directory == "" {
			return nil, fmt.Errorf("backend %s requires a directory", backend)
		}
		static, err := LoadDirectory(config.Directory)
		if err != nil {
			return nil, err
		}
		return static, nil
	default:
		return nil, fmt.Errorf("unknown catalog backend: %s (supported: %s, %s)", backend, BackendClangFormat, BackendDirectory)
	}
}
