package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newInvCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inv",
		Aliases: []string{"inventory"},
		Short:   "Track achievements, projects, certifications and books",
	}
	cmd.AddCommand(newInvListCmd(a), newInvAddCmd(a), newInvRmCmd(a))
	return cmd
}

func newInvListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [category]",
		Short: "List inventory items",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := engine.AllCategories
			if len(args) == 1 {
				c, err := engine.ParseCategory(args[0])
				if err != nil {
					return err
				}
				cats = []engine.Category{c}
			}
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			st := svc.Snapshot()
			out := cmd.OutOrStdout()
			for _, c := range cats {
				items := st.Inventory.Items(c)
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s %s (%d)", c.Icon(), categoryTitle(c), len(items))))
				if len(items) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(empty)"))
				}
				for _, it := range items {
					icon := it.Icon
					if icon == "" {
						icon = ui.IconBox
					}
					fmt.Fprintf(out, "- %s %s %s\n", icon, it.Name, ui.Muted.Render(it.ID))
				}
				fmt.Fprintln(out, "")
			}
			return nil
		},
	}

	return cmd
}

func newInvAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <category> <name>",
		Short: "Add an item (projects, certifications and books grant INT XP)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := engine.ParseCategory(args[0])
			if err != nil {
				return err
			}
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			it, err := svc.AddItem(cmd.Context(), c, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", it.ID))
			return nil
		},
	}

	return cmd
}

func newInvRmCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <category> <id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := engine.ParseCategory(args[0])
			if err != nil {
				return err
			}
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if !svc.DeleteItem(cmd.Context(), c, args[1]) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("%s: no such item in %s", args[1], c)))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("🗑 Removed "+args[1]))
			return nil
		},
	}

	return cmd
}

func categoryTitle(c engine.Category) string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
