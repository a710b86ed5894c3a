package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/format-smith/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage FormatSmith configuration",
	Long:  `Manage FormatSmith configuration files, including initialization and validation.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Generate a default configuration file",
	Long: `Generate a default FormatSmith configuration file. If no file is
specified, creates .format-smith.yml in the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a configuration file",
	Long:  `Validate a FormatSmith configuration file for correctness.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

const exampleConfig = `# FormatSmith Configuration File
# Environment variables FORMAT_SMITH_CLANG_FORMAT, FORMAT_SMITH_TIMEOUT and
# FORMAT_SMITH_STYLES_DIR override these settings; command line flags
# override both.

version: "1.0"

clang_format:
  # Binary used to list and dump the predefined styles
  executable: clang-format
  # Upper bound for a single invocation
  timeout: 30s

catalog:
  # Where base styles come from
  # Options: clang-format, directory
  backend: clang-format

  # Directory of <Style>.yml and <Style>.<Language>.yml dumps,
  # required by the directory backend
  # directory: styles

  # Maximum number of styles fetched in parallel
  concurrency: 4
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	outputFile := config.DefaultFileName
	if len(args) > 0 {
		outputFile = args[0]
	}

	if _, err := os.Stat(outputFile); err == nil {
		return fmt.Errorf("configuration file %s already exists", outputFile)
	}

	if err := os.WriteFile(outputFile, []byte(exampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ Configuration file created: %s\n", outputFile)
	fmt.Fprintf(out, "\nYou can now:\n")
	fmt.Fprintf(out, "1. Edit the file to point at your clang-format or a styles directory\n")
	fmt.Fprintf(out, "2. Use it with: format-smith --config=%s <.clang-format>\n", outputFile)
	fmt.Fprintf(out, "3. Validate it with: format-smith config validate %s\n", outputFile)

	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	configFile := args[0]

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ Configuration is valid!\n\n")
	fmt.Fprintf(out, "Summary:\n")
	fmt.Fprintf(out, "  Version: %s\n", cfg.Version)
	fmt.Fprintf(out, "  Backend: %s\n", cfg.Catalog.Backend)
	if cfg.Catalog.Directory != "" {
		fmt.Fprintf(out, "  Styles Directory: %s\n", cfg.Catalog.Directory)
	} else {
		fmt.Fprintf(out, "  Executable: %s\n", cfg.ClangFormat.Executable)
	}
	fmt.Fprintf(out, "  Timeout: %s\n", cfg.ClangFormat.Timeout)
	fmt.Fprintf(out, "  Concurrency: %d\n", cfg.Catalog.Concurrency)

	return nil
}
