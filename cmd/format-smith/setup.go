package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/format-smith/pkg/catalog"
	"github.com/wonderfulspam/format-smith/pkg/config"
)

// options holds the persistent flags shared by every command.
type options struct {
	configFile  string
	executable  string
	timeout     time.Duration
	stylesDir   string
	concurrency int
	verbose     bool
}

var globalOpts options

// environment is what a command needs to talk to the style catalog.
type environment struct {
	config   *config.Config
	provider catalog.StyleProvider
	resolver *catalog.Resolver
	logger   *slog.Logger
}

// loadSettings layers explicitly set flags over the configuration file and
// environment.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(globalOpts.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("clang-format-executable") {
		cfg.ClangFormat.Executable = globalOpts.executable
	}
	if flags.Changed("timeout") {
		cfg.ClangFormat.Timeout = globalOpts.timeout
	}
	if flags.Changed("styles-dir") {
		cfg.Catalog.Backend = catalog.BackendDirectory
		cfg.Catalog.Directory = globalOpts.stylesDir
	}
	if flags.Changed("concurrency") {
		cfg.Catalog.Concurrency = globalOpts.concurrency
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func setup(cmd *cobra.Command) (*environment, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd)

	provider, err := catalog.NewProvider(cfg.Catalog.Backend, cfg.ProviderConfig())
	if err != nil {
		return nil, fmt.Errorf("creating style catalog: %w", err)
	}
	logger.Debug("style catalog ready",
		"backend", string(cfg.Catalog.Backend),
		"executable", cfg.ClangFormat.Executable,
		"directory", cfg.Catalog.Directory)

	resolver := catalog.NewResolver(provider, &catalog.ResolverOptions{
		Concurrency: cfg.Catalog.Concurrency,
		Logger:      logger,
	})

	return &environment{
		config:   cfg,
		provider: provider,
		resolver: resolver,
		logger:   logger,
	}, nil
}

// openInput returns the file named by args, or stdin when there is none.
func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("reading file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
