package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func (a *app) newPostCommand() *cobra.Command {
	var hide bool
	cmd := &cobra.Command{
		Use:   "post <name> <snippet>",
		Short: "Create a new snippet",
		Long: `Store a snippet under a name. Storing an existing name adds another
snippet; "get" keeps returning the earliest visible one.

Hidden snippets are left out of "get" and "catalogue" but still appear in "search".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.service(ctx)
			if err != nil {
				return err
			}
			entry, err := svc.Store(ctx, args[0], args[1], hide)
			if err != nil {
				return err
			}
			res := postResult{Name: entry.Name, Text: entry.Text, Hidden: hide}
			return render(cmd.OutOrStdout(), a.outputFlag, res, func(w io.Writer) {
				visibility := "searchable"
				if hide {
					visibility = "hidden"
				}
				fmt.Fprintf(w, "Stored %s snippet %q as %q\n", visibility, entry.Text, entry.Name)
			})
		},
	}
	cmd.Flags().BoolVarP(&hide, "hide", "H", false, "Hide the snippet from get and catalogue")
	return cmd
}
