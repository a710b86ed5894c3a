package main

import (
	"github.com/spf13/cobra"

	"github.com/wonderfulspam/format-smith/pkg/simplifier"
)

var expandCmd = &cobra.Command{
	Use:   "expand [file]",
	Short: "Expand a minimized configuration into its full form",
	Long: `Expand resolves the BasedOnStyle of every document and prints the base
style with the document's settings applied on top. Documents without a
BasedOnStyle are printed unchanged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExpand,
}

func init() {
	rootCmd.AddCommand(expandCmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
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
	return s.Expand(cmd.Context(), in, cmd.OutOrStdout())
}
