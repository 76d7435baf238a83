package root

import (
	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/tui"
)

func newBoardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			feed := tui.NewFeed()
			svc, cleanup, err := a.openService(cmd, engine.WithEventSink(feed.Sink()))
			if err != nil {
				return err
			}
			defer cleanup()

			opts := tui.Options{RegenInterval: a.cfg.RegenInterval, ChartDays: a.cfg.ChartDays}
			return tui.RunBoard(cmd.Context(), svc, feed, opts, cmd.OutOrStdout())
		},
	}

	return cmd
}
