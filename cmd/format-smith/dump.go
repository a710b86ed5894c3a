package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/format-smith/pkg/document"
	"github.com/wonderfulspam/format-smith/pkg/language"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <style>",
	Short: "Print the full configuration of a base style",
	Long: `Print every setting of a predefined base style as the style catalog
reports it. With --language the style is dumped for that language.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

var dumpLanguage string

func init() {
	dumpCmd.Flags().StringVar(&dumpLanguage, "language", "", "Language context, e.g. Cpp, Java, JavaScript")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	lang := language.None
	if dumpLanguage != "" {
		var ok bool
		lang, ok = language.Lookup(dumpLanguage)
		if !ok {
			return fmt.Errorf("unknown language: %s (supported: %s)", dumpLanguage, supportedLanguages())
		}
	}

	env, err := setup(cmd)
	if err != nil {
		return err
	}

	style, err := env.provider.GetStyle(cmd.Context(), args[0], lang)
	if err != nil {
		return fmt.Errorf("dumping style %s: %w", args[0], err)
	}

	return document.Write(cmd.OutOrStdout(), style)
}

func supportedLanguages() string {
	names := make([]string, 0, len(language.All()))
	for _, l := range language.All() {
		names = append(names, l.Name())
	}
	return strings.Join(names, ", ")
}
