package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbckr/catalog/internal/output"
	"github.com/tbckr/catalog/internal/version"
)

func newVersionCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print the catalog version",
		Args:    cobra.NoArgs,
		GroupID: "utility",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			if d.format() == output.FormatJSON {
				return writeResult(cmd.OutOrStdout(), d, info)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return err
		},
	}
}
