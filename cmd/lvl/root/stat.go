package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newStatCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stat [str|vit|agi|int|per]",
		Short: "Spend an ability point, or show the stat distribution",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var stat engine.Stat
			if len(args) == 1 {
				s, err := engine.ParseStat(args[0])
				if err != nil {
					return err
				}
				stat = s
			}
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if stat != "" {
				err := svc.AllocateStat(cmd.Context(), stat)
				switch {
				case errors.Is(err, engine.ErrNoPoints):
					// The warning toast already printed.
					return nil
				case err != nil:
					return err
				}
				fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s +1", ui.StatLabel(stat))))
			}

			fmt.Fprintln(out, ui.H2.Render("📊 Stat distribution"))
			for _, share := range svc.StatDistribution() {
				fmt.Fprintf(out, "%s %3d %s %5.1f%%\n",
					padRight(ui.StatLabel(share.Stat), 8),
					share.Value,
					ui.ProgressBar(int(share.Percent+0.5), 100, 20),
					share.Percent,
				)
			}
			fmt.Fprintln(out, ui.LabelValue("Ability points", svc.Snapshot().AvailablePoints))
			return nil
		},
	}

	return cmd
}
