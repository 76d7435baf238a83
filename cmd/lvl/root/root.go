package root

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"levelup/internal/config"
	"levelup/internal/logging"
	"levelup/internal/ui"
)

const Version = "0.1.0"

// app carries what the persistent pre-run resolved to every command.
type app struct {
	cfgFile string
	cfg     config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "lvl",
		Short:         "Levelup: local-first RPG self-improvement tracker",
		Long:          "Levelup turns daily habits into quests, XP, levels and stats, with a streak calendar and XP charts.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "Config file (default $HOME/.levelup.yaml)")
	pf.String("db", "", "SQLite database path (default $HOME/.levelup.db)")
	pf.String("slot", "", "Save slot key")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")
	pf.String("log-format", "", "Log format (console|json)")

	cmd.AddCommand(
		newStatusCmd(a),
		newQuestsCmd(a),
		newDoCmd(a),
		newUndoCmd(a),
		newQuestCmd(a),
		newXPCmd(a),
		newStatCmd(a),
		newInvCmd(a),
		newCalendarCmd(a),
		newChartCmd(a),
		newDayCmd(a),
		newMilestonesCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newRestoreCmd(a),
		newResetCmd(a),
		newSettingsCmd(a),
		newBoardCmd(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	v := config.New(a.cfgFile)
	err := config.BindFlags(v, cmd.Flags(), map[string]string{
		config.KeyDBPath:    "db",
		config.KeySlot:      "slot",
		config.KeyLogLevel:  "log-level",
		config.KeyLogFormat: "log-format",
	})
	if err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	a.log.Debug("config loaded", zap.String("file", cfg.File), zap.String("slot", cfg.Slot))
	return nil
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		return 1
	}
	return 0
}
