package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func (a *app) newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Retrieve a snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.service(ctx)
			if err != nil {
				return err
			}
			text, found, err := svc.Retrieve(ctx, args[0])
			if err != nil {
				return err
			}
			res := getResult{Name: args[0], Found: found, Text: text}
			return render(cmd.OutOrStdout(), a.outputFlag, res, func(w io.Writer) {
				if !found {
					fmt.Fprintln(w, NotFoundMessage)
					return
				}
				fmt.Fprintf(w, "Retrieved snippet: %q\n", text)
			})
		},
	}
}
