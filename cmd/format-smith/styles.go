package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the predefined base styles",
	Long: `List the base styles a configuration can be minimized against, in the
order they are tried.`,
	Args: cobra.NoArgs,
	RunE: runStyles,
}

var stylesFormat string

func init() {
	stylesCmd.Flags().StringVar(&stylesFormat, "format", "table", "Output format: table, json")
	rootCmd.AddCommand(stylesCmd)
}

func runStyles(cmd *cobra.Command, args []string) error {
	if stylesFormat != "table" && stylesFormat != "json" {
		return fmt.Errorf("unsupported format: %s (supported: table, json)", stylesFormat)
	}

	env, err := setup(cmd)
	if err != nil {
		return err
	}

	names, err := env.resolver.StyleNames(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if stylesFormat == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]interface{}{
			"backend": env.config.Catalog.Backend,
			"styles":  names,
		})
	}

	header := fmt.Sprintf("Base Styles (%d)", len(names))
	fmt.Fprintf(out, "%s\n%s\n", header, strings.Repeat("=", len(header)))
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}
