package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(New(""))
	require.NoError(t, err)
	require.Equal(t, "soloLevelUpSystem", cfg.Slot)
	require.Equal(t, time.Minute, cfg.RegenInterval)
	require.Equal(t, 30, cfg.ChartDays)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Empty(t, cfg.File)
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "levelup.yaml")
	require.NoError(t, os.WriteFile(file, []byte("chart_days: 14\nslot: fromfile\nregen_interval: 30s\n"), 0o600))

	t.Setenv("LEVELUP_SLOT", "fromenv")

	v := New(file)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("days", 30, "")
	flags.String("log-level", "warn", "")
	require.NoError(t, BindFlags(v, flags, map[string]string{KeyChartDays: "days", KeyLogLevel: "log-level"}))
	require.NoError(t, flags.Parse([]string{"--log-level=debug"}))

	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, file, cfg.File)
	require.Equal(t, 14, cfg.ChartDays, "unset flag must not override the file")
	require.Equal(t, "fromenv", cfg.Slot)
	require.Equal(t, 30*time.Second, cfg.RegenInterval)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("chart_days: 0\n"), 0o600))

	_, err := Load(New(file))
	require.Error(t, err)
}

func TestBindFlagsUnknown(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.Error(t, BindFlags(New(""), flags, map[string]string{KeySlot: "missing"}))
}
