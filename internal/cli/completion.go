package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// shells maps each supported shell to its completion generator and a usage hint.
var shells = []struct {
	name string
	hint string
	gen  func(root *cobra.Command, w io.Writer) error
}{
	{"bash", "$ source <(catalog completion bash)", func(root *cobra.Command, w io.Writer) error {
		return root.GenBashCompletionV2(w, true)
	}},
	{"zsh", "$ catalog completion zsh > \"${fpath[1]}/_catalog\"", func(root *cobra.Command, w io.Writer) error {
		return root.GenZshCompletion(w)
	}},
	{"fish", "$ catalog completion fish > ~/.config/fish/completions/catalog.fish", func(root *cobra.Command, w io.Writer) error {
		return root.GenFishCompletion(w, true)
	}},
	{"powershell", "PS> catalog completion powershell | Out-String | Invoke-Expression", func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	}},
}

func newCompletionCmd() *cobra.Command {
	completion := &cobra.Command{
		Use:     "completion [bash|zsh|fish|powershell]",
		Short:   "Generate shell completion scripts",
		GroupID: "utility",
		Long: `Generate shell completion scripts for catalog.

Run "catalog completion <shell> --help" for how to load them.`,
		// buildDeps must not run during tab-completion: it creates the config
		// dir and file. This is the only subcommand allowed to override the
		// root PersistentPreRunE.
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}

	for _, sh := range shells {
		gen := sh.gen
		completion.AddCommand(&cobra.Command{
			Use:                   sh.name,
			Short:                 "Generate " + sh.name + " completion script",
			Long:                  "Generate the autocompletion script for " + sh.name + ".\n\nTo load completions:\n  " + sh.hint,
			Args:                  cobra.NoArgs,
			DisableFlagsInUseLine: true,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return gen(cmd.Root(), cmd.OutOrStdout())
			},
		})
	}

	return completion
}
