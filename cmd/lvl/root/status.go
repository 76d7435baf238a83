package root

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newStatusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the player card, stats and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			st := svc.Snapshot()
			p := st.Player
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, p.Name))
			fmt.Fprintln(out, ui.Muted.Render(p.Job)+"  "+ui.Gold.Render("« "+p.Title+" »"))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%s %d/%d", ui.ProgressBar(p.XP, p.XPToLevel, 20), p.XP, p.XPToLevel)))
			fmt.Fprintln(out, ui.LabelValue(ui.IconHeart+" HP", fmt.Sprintf("%d/%d", p.HP, p.MaxHP)))
			fmt.Fprintln(out, ui.LabelValue(ui.IconMana+" MP", fmt.Sprintf("%d/%d", p.MP, p.MaxMP)))
			fmt.Fprintln(out, ui.LabelValue("Fatigue", p.Fatigue))
			fmt.Fprintln(out, ui.LabelValue(ui.IconFire+" Streak", fmt.Sprintf("%d days", st.Streak)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Stats"))
			for _, s := range engine.AllStats {
				fmt.Fprintf(out, "- %s %d %s\n", ui.StatLabel(s), engine.EffectiveStat(&st, s),
					ui.Muted.Render(fmt.Sprintf("(base %d, bonus %d)", st.Stats.Get(s), st.BonusStats.Get(s))))
			}
			if st.AvailablePoints > 0 {
				fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%d ability points to spend (lvl stat <stat>)", st.AvailablePoints)))
			}
			fmt.Fprintln(out, "")

			unlocked := 0
			for _, sk := range st.Skills {
				if sk.Unlocked {
					unlocked++
				}
			}
			sum := engine.Summarize(&st)
			fmt.Fprintln(out, ui.H2.Render(ui.IconTrophy+" Totals"))
			fmt.Fprintln(out, ui.LabelValue("XP earned", humanize.Comma(int64(sum.TotalXPEarned))))
			fmt.Fprintln(out, ui.LabelValue("Quests completed", humanize.Comma(int64(sum.TotalQuestsCompleted))))
			fmt.Fprintln(out, ui.LabelValue("Full days", sum.TotalDaysCompleted))
			fmt.Fprintln(out, ui.LabelValue("Active days", sum.ActiveDays))
			fmt.Fprintln(out, ui.LabelValue("Skills", fmt.Sprintf("%d/%d unlocked", unlocked, len(st.Skills))))
			fmt.Fprintln(out, ui.LabelValue("Milestones", fmt.Sprintf("%d earned", engine.NewMilestoneChecker(&st).CountEarned())))
			return nil
		},
	}

	return cmd
}
