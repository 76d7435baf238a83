package root

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newXPCmd(a *app) *cobra.Command {
	var statFlag string

	cmd := &cobra.Command{
		Use:   "xp <amount>",
		Short: "Grant XP directly (optionally tagged with a stat)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("amount must be an integer: %w", err)
			}
			stat, err := engine.ParseStat(statFlag)
			if err != nil {
				return err
			}
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.GainXP(cmd.Context(), amount, stat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s +%d XP", ui.IconBolt, amount)))
			if res.LevelUp {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&statFlag, "stat", "s", "", "Stat credited with the bonus (str|vit|agi|int|per)")
	return cmd
}
