package cli

import (
	"fmt"
	"io"

	"github.com/roguepikachu/snippets/internal/health"
	"github.com/spf13/cobra"
)

func (a *app) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the configured backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var rep health.Report
			if err := a.open(ctx); err != nil {
				rep = health.Report{Checks: []health.Check{{Name: a.cfg.Backend, Status: health.StatusDown, Err: err.Error()}}}
			} else {
				rep = health.NewChecker(a.cfg.PingTimeout).Add(a.cfg.Backend, a.store).Check(ctx)
			}
			err := render(cmd.OutOrStdout(), a.outputFlag, rep, func(w io.Writer) {
				for _, c := range rep.Checks {
					if c.Err != "" {
						fmt.Fprintf(w, "%s: %s (%s)\n", c.Name, c.Status, c.Err)
						continue
					}
					fmt.Fprintf(w, "%s: %s\n", c.Name, c.Status)
				}
			})
			if err != nil {
				return err
			}
			if !rep.Ready {
				return errNotReady
			}
			return nil
		},
	}
}
