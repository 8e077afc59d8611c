package config

import (
	"github.com/spf13/cobra"

	"github.com/tbckr/catalog/internal/output"
)

// CompleteOutputFormat provides shell completion candidates for the --output flag.
func CompleteOutputFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return output.Formats(), cobra.ShellCompDirectiveNoFileComp
}

// RegisterFlagCompletions wires completion functions for the flags added by RegisterFlags.
func RegisterFlagCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("output", CompleteOutputFormat)
}
