package cli

import (
	"fmt"
	"io"

	"github.com/roguepikachu/snippets/internal/domain"
	"github.com/spf13/cobra"
)

func (a *app) newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <criteria>",
		Short: "Search for snippets that contain a given string",
		Long: `Search every snippet, hidden ones included, for a case-sensitive literal
substring of its text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.service(ctx)
			if err != nil {
				return err
			}
			entries, found, err := svc.FindByContent(ctx, args[0])
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []domain.Entry{}
			}
			res := searchResult{Query: args[0], Found: found, Matches: entries}
			return render(cmd.OutOrStdout(), a.outputFlag, res, func(w io.Writer) {
				fmt.Fprintf(w, "Retrieved all snippets that contain string: %q\n", args[0])
				if !found {
					fmt.Fprintln(w, NotFoundMessage)
					return
				}
				fmt.Fprintln(w, FormatMatches(entries))
			})
		},
	}
}
