package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys.
const (
	KeyDBPath        = "db_path"
	KeySlot          = "slot"
	KeyRegenInterval = "regen_interval"
	KeyChartDays     = "chart_days"
	KeyLogLevel      = "log_level"
	KeyLogFormat     = "log_format"
)

const envPrefix = "LEVELUP"

// Config is the resolved runtime configuration.
type Config struct {
	DBPath        string        `mapstructure:"db_path"`
	Slot          string        `mapstructure:"slot"`
	RegenInterval time.Duration `mapstructure:"regen_interval"`
	ChartDays     int           `mapstructure:"chart_days"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFormat     string        `mapstructure:"log_format"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// New returns a viper instance with defaults, config file search paths and
// environment binding set up. Flags are bound separately with BindFlags.
func New(configFile string) *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDBPath, "")
	v.SetDefault(KeySlot, "soloLevelUpSystem")
	v.SetDefault(KeyRegenInterval, time.Minute)
	v.SetDefault(KeyChartDays, 30)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".levelup")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags maps flag names to config keys. Only flags the user set override
// lower layers.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, names map[string]string) error {
	for key, name := range names {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("config: no flag %q", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("config: bind %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the config file (a missing default file is fine) and decodes
// the merged layers.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if cfg.RegenInterval <= 0 {
		return Config{}, fmt.Errorf("config: %s must be positive, got %s", KeyRegenInterval, cfg.RegenInterval)
	}
	if cfg.ChartDays <= 0 {
		return Config{}, fmt.Errorf("config: %s must be positive, got %d", KeyChartDays, cfg.ChartDays)
	}
	if cfg.Slot == "" {
		return Config{}, fmt.Errorf("config: %s must not be empty", KeySlot)
	}
	return cfg, nil
}
