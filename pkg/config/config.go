// Package config loads format-smith settings from a YAML file, a .env file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/wonderfulspam/format-smith/pkg/catalog"
)

// DefaultFileName is the configuration file looked for in the working
// directory when none is given explicitly.
const DefaultFileName = ".format-smith.yml"

// Environment variables that override file settings.
const (
	EnvExecutable = "FORMAT_SMITH_CLANG_FORMAT"
	EnvTimeout    = "FORMAT_SMITH_TIMEOUT"
	EnvStylesDir  = "FORMAT_SMITH_STYLES_DIR"
)

// Config holds the overall tool configuration
type Config struct {
	Version     string            `yaml:"version"`
	ClangFormat ClangFormatConfig `yaml:"clang_format"`
	Catalog     CatalogConfig     `yaml:"catalog"`
}

// ClangFormatConfig configures the clang-format backend
type ClangFormatConfig struct {
	Executable string        `yaml:"executable"`
	Timeout    time.Duration `yaml:"timeout"`
}

// CatalogConfig configures where base styles come from
type CatalogConfig struct {
	Backend     catalog.BackendType `yaml:"backend"`
	Directory   string              `yaml:"directory,omitempty"`
	Concurrency int                 `yaml:"concurrency"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		ClangFormat: ClangFormatConfig{
			Executable: catalog.DefaultExecutable,
			Timeout:    catalog.DefaultTimeout,
		},
		Catalog: CatalogConfig{
			Backend:     catalog.BackendClangFormat,
			Concurrency: 4,
		},
	}
}

// Load reads configuration from path over the defaults. An empty path means
// DefaultFileName, which may be absent; an explicit path must exist. A .env
// file in the working directory is loaded first, and environment variables
// take precedence over the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	config := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	if exe := os.Getenv(EnvExecutable); exe != "" {
		c.ClangFormat.Executable = exe
	}
	if timeout := os.Getenv(EnvTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.ClangFormat.Timeout = d
	}
	if dir := os.Getenv(EnvStylesDir); dir != "" {
		c.Catalog.Backend = catalog.BackendDirectory
		c.Catalog.Directory = dir
	}
	return nil
}

// Save writes the configuration to path as YAML
func Save(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the configuration for values the tool cannot use
func (c *Config) Validate() error {
	var errs []error

	switch c.Catalog.Backend {
	case catalog.BackendClangFormat, "":
		if c.ClangFormat.Executable == "" {
			errs = append(errs, errors.New("clang_format.executable must not be empty"))
		}
	case catalog.BackendDirectory:
		if c.Catalog.Directory == "" {
			errs = append(errs, errors.New("catalog.directory is required for the directory backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid catalog backend: %s (must be: %s or %s)",
			c.Catalog.Backend, catalog.BackendClangFormat, catalog.BackendDirectory))
	}

	if c.ClangFormat.Timeout < 0 {
		errs = append(errs, fmt.Errorf("clang_format.timeout must not be negative, got %s", c.ClangFormat.Timeout))
	}
	if c.Catalog.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("catalog.concurrency must not be negative, got %d", c.Catalog.Concurrency))
	}

	return errors.Join(errs...)
}

// ProviderConfig converts the settings into a catalog provider configuration
func (c *Config) ProviderConfig() *catalog.Config {
	return &catalog.Config{
		Executable: c.ClangFormat.Executable,
		Timeout:    c.ClangFormat.Timeout,
		Directory:  c.Catalog.Directory,
	}
}
