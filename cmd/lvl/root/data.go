package root

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newExportCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the save to solo-levelup-save-YYYY-MM-DD.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []engine.Option
			if dir == "-" {
				// Keep stdout clean for the document.
				opts = append(opts, engine.WithEventSink(eventPrinter(cmd.ErrOrStderr())))
			}
			svc, cleanup, err := a.openService(cmd, opts...)
			if err != nil {
				return err
			}
			defer cleanup()

			name, data, err := svc.Export()
			if err != nil {
				return err
			}
			if dir == "-" {
				_, err := cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("File", path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "out", "o", ".", "Directory to write to (- for stdout)")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the save with an exported file (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Import(cmd.Context(), data); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("The previous save was backed up; lvl restore brings it back."))
			return nil
		},
	}

	return cmd
}

func newRestoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Bring back the save replaced by the last import or reset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			err = svc.Restore(cmd.Context())
			if errors.Is(err, engine.ErrNoBackups) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing to restore."))
				return nil
			}
			return err
		},
	}

	return cmd
}

func newResetCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start over from a fresh save (the old one is backed up)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset wipes all progress; pass --yes to confirm")
			}
			svc, cleanup, err := a.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			svc.Reset(cmd.Context())
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}
