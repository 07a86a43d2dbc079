package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func (a *app) newCatalogueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogue",
		Short: "Retrieve the list of names for visible snippets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := a.service(ctx)
			if err != nil {
				return err
			}
			names, found, err := svc.ListVisibleNames(ctx)
			if err != nil {
				return err
			}
			if names == nil {
				names = []string{}
			}
			res := catalogueResult{Found: found, Names: names}
			return render(cmd.OutOrStdout(), a.outputFlag, res, func(w io.Writer) {
				if !found {
					fmt.Fprintln(w, NotFoundMessage)
					return
				}
				fmt.Fprintf(w, "Retrieving all snippet names: %s\n", FormatCatalogue(names))
			})
		},
	}
}
