package cli

import (
	"github.com/spf13/cobra"

	"github.com/tbckr/catalog/internal/catalog"
)

func newBranchesCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "branches",
		Short:   "List branches",
		Args:    cobra.NoArgs,
		GroupID: "catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := d.newCatalogClient()
			if err != nil {
				return err
			}
			listing := catalog.BranchListing{Result: client.FetchBranches(cmd.Context())}
			if !listing.OK() {
				return failed(cmd.OutOrStdout(), d, listing.Result, listing.Err())
			}
			return writeResult(cmd.OutOrStdout(), d, listing)
		},
	}
}
