package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbckr/catalog/internal/apperr"
)

func newServicesCmd(d *deps) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "services",
		Short:   "List services grouped by category",
		Args:    cobra.NoArgs,
		GroupID: "catalog",
		Example: `  catalog services
  catalog services --category Hair -o plain
  catalog services -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := d.newCatalogClient()
			if err != nil {
				return err
			}
			result := client.FetchServices(cmd.Context())
			if !result.OK() {
				return failed(cmd.OutOrStdout(), d, result, result.Err())
			}
			if category != "" {
				narrowed, ok := result.Category(category)
				if !ok {
					return fmt.Errorf("%w: no category %q (available: %s)",
						apperr.ErrInvalidInput, category, strings.Join(result.Categories.Names(), ", "))
				}
				result = narrowed
			}
			return writeResult(cmd.OutOrStdout(), d, result)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list services of this category")
	return cmd
}
