// Package cli provides the Cobra command tree and output wiring for catalog.
package cli

import (
	"context"
	"io"

	"github.com/imroc/req/v3"
	"github.com/spf13/cobra"

	"github.com/tbckr/catalog/internal/config"
	"github.com/tbckr/catalog/internal/version"
)

// newRootCmd builds the top-level Cobra command for catalog.
// clientHook, when non-nil, is applied to every HTTP client a command builds.
func newRootCmd(clientHook func(*req.Client)) *cobra.Command {
	// d is populated by PersistentPreRunE before any subcommand's RunE runs.
	// Cobra only executes the innermost PersistentPreRunE in the chain, so
	// subcommands must not define their own (completion is the exception).
	var d deps

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Fetch the services and branches of a business catalog API",
		Long: `Catalog fetches the services and branches collections of a JSON catalog API
and prints them as tables, plain text or JSON.

Services are grouped by category; services without a category are listed
under "Other". Every failure is reported as a single message on stderr.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := buildDeps(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			d = *resolved
			d.clientHook = clientHook
			return nil
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())
	config.RegisterFlagCompletions(cmd)

	cmd.Version = version.Get().Version
	cmd.SetVersionTemplate("catalog version {{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: "catalog", Title: "Catalog Commands:"},
		&cobra.Group{ID: "utility", Title: "Utility Commands:"},
	)

	cmd.AddCommand(
		newServicesCmd(&d),
		newBranchesCmd(&d),
		newFetchCmd(&d),
		newConfigCmd(&d),
		newCompletionCmd(),
		newVersionCmd(&d),
	)

	return cmd
}

// Execute builds the root command and runs it with os.Args.
func Execute(ctx context.Context, stdout, stderr io.Writer) error {
	cmd := newRootCmd(nil)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}
