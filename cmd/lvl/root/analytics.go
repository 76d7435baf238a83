package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/period"
	"levelup/internal/ui"
)

func newCalendarCmd(a *app) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the activity heat-map for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			now := svc.Now()
			year, mon := now.Year(), now.Month()
			if month != "" {
				year, mon, err = period.ParseMonthKey(month)
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderCalendar(svc.Calendar(year, mon)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to show (YYYY-MM, default current)")
	return cmd
}

func newChartCmd(a *app) *cobra.Command {
	var days int
	var height int

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Show daily XP for the last N days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				days = a.cfg.ChartDays
			}
			if days <= 0 {
				return engine.ValidationError{Field: "days", Reason: "must be positive"}
			}
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s XP, last %d days", ui.IconChart, days)))
			fmt.Fprintln(out, ui.RenderBarChart(svc.XPSeries(days), height))
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 30, "Window length in days (default from config)")
	cmd.Flags().IntVar(&height, "height", 8, "Chart height in rows")
	return cmd
}

func newDayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "Show what was earned on one day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			date := period.Today(svc)
			if len(args) == 1 {
				t, err := period.ParseDateKey(args[0])
				if err != nil {
					return err
				}
				date = period.DateKey(t)
			}

			d := svc.DayDetail(date)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCalendar, dayTitle(date)))
			if !d.Active() {
				fmt.Fprintln(out, ui.Muted.Render("No activity recorded for this day."))
				return nil
			}
			fmt.Fprintln(out, ui.LabelValue("XP", d.XP))
			fmt.Fprintln(out, ui.LabelValue("Quests", d.QuestCount))
			for _, b := range d.StatBonuses {
				fmt.Fprintf(out, "- %s +%d\n", ui.StatLabel(b.Stat), b.Amount)
			}
			for _, q := range d.Quests {
				fmt.Fprintf(out, "- %s %s\n", q.Icon, q.Name)
			}
			return nil
		},
	}

	return cmd
}

func dayTitle(date string) string {
	t, err := period.ParseDateKey(date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

func newMilestonesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestones",
		Short: "List milestones and which are earned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			ms := svc.Milestones()
			earned := 0
			for _, m := range ms {
				if m.Earned {
					earned++
					fmt.Fprintf(out, "%s %s %s\n", m.Icon, ui.Good.Render(m.Name), ui.Muted.Render(m.Description))
				} else {
					fmt.Fprintf(out, "🔒 %s %s\n", ui.Muted.Render(m.Name), ui.Muted.Render(m.Description))
				}
			}
			fmt.Fprintln(out, ui.LabelValue("Earned", fmt.Sprintf("%d/%d", earned, len(ms))))
			return nil
		},
	}

	return cmd
}
