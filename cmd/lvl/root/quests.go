package root

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newQuestsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quests",
		Short: "List daily, weekly and custom quests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			st := svc.Snapshot()
			out := cmd.OutOrStdout()
			printQuestGroup(out, "☀️ Daily Quests", st.DailyQuests)
			printQuestGroup(out, "📆 Weekly Quests", st.WeeklyQuests)
			if len(st.CustomQuests) == 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconSparkle+" Custom Quests"))
				fmt.Fprintln(out, ui.Muted.Render("(none; add one with: lvl quest add <name>)"))
				return nil
			}
			printQuestGroup(out, ui.IconSparkle+" Custom Quests", st.CustomQuests)
			return nil
		},
	}

	return cmd
}

func printQuestGroup(out io.Writer, title string, qs []engine.Quest) {
	fmt.Fprintln(out, ui.H2.Render(title))
	for _, q := range qs {
		line := fmt.Sprintf("%s %s %s %s", ui.QuestMark(q.Completed), ui.Key.Render(q.ID), q.Icon, q.Name)
		line += " " + ui.Muted.Render(fmt.Sprintf("+%d %s", q.XP, q.Stat.Label()))
		if q.Progress != nil && q.Target != nil {
			line += fmt.Sprintf(" %s %d/%d", ui.ProgressBar(*q.Progress, *q.Target, 7), *q.Progress, *q.Target)
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, "")
}

func newDoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>...",
		Short: "Complete one or more quests",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			for _, id := range args {
				res := svc.CompleteQuest(cmd.Context(), id)
				if !res.Completed {
					fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%s: unknown or already complete", id)))
					continue
				}
				if res.DayCompleted {
					fmt.Fprintln(out, ui.Good.Render(ui.IconTrophy+" Every daily quest done today!"))
				}
			}
			return nil
		},
	}

	return cmd
}

func newUndoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <id>",
		Short: "Mark a quest incomplete (rewards are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if !svc.UncompleteQuest(cmd.Context(), args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("%s: unknown or not complete", args[0])))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("↩ "+args[0]+" marked incomplete"))
			return nil
		},
	}

	return cmd
}

func newQuestCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Manage custom quests",
	}
	cmd.AddCommand(newQuestAddCmd(a), newQuestRmCmd(a))
	return cmd
}

func newQuestAddCmd(a *app) *cobra.Command {
	var statFlag string
	var xp int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom quest that resets daily",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			stat, err := engine.ParseStat(statFlag)
			if err != nil {
				return err
			}
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := svc.AddCustomQuest(cmd.Context(), strings.Join(args, " "), stat, xp)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", q.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&statFlag, "stat", "s", "str", "Stat trained (str|vit|agi|int|per)")
	cmd.Flags().IntVarP(&xp, "xp", "x", engine.DefaultCustomXP, "XP reward")
	return cmd
}

func newQuestRmCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a custom quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if !svc.DeleteQuest(cmd.Context(), args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("%s: not a custom quest", args[0])))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("🗑 Deleted "+args[0]))
			return nil
		},
	}

	return cmd
}
