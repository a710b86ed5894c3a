package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/format-smith/pkg/simplifier"
)

var rootCmd = &cobra.Command{
	Use:   "format-smith [file]",
	Short: "Minimize clang-format style configurations",
	Long: `FormatSmith rewrites a full clang-format configuration into the smallest
equivalent one: a BasedOnStyle line naming the closest predefined style plus
only the settings that differ from it.

The configuration is read from the given file, or from stdin when no file (or
"-") is given. Multi-document streams are minimized document by document.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMinimize,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalOpts.configFile, "config", "", "Path to configuration file (default .format-smith.yml)")
	flags.StringVar(&globalOpts.executable, "clang-format-executable", "", "clang-format binary used to obtain base styles")
	flags.DurationVar(&globalOpts.timeout, "timeout", 0, "Timeout for a single clang-format invocation")
	flags.StringVar(&globalOpts.stylesDir, "styles-dir", "", "Read base styles from a directory of dumps instead of clang-format")
	flags.IntVar(&globalOpts.concurrency, "concurrency", 0, "Maximum number of styles fetched in parallel")
	flags.BoolVarP(&globalOpts.verbose, "verbose", "v", false, "Report selection details on stderr")
}

func runMinimize(cmd *cobra.Command, args []string) error {
	in, closeInput, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeInput()

	env, err := setup(cmd)
	if err != nil {
		return err
	}

	s := simplifier.New(env.resolver, env.logger)
	return s.Run(cmd.Context(), in, cmd.OutOrStdout())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
