package config

// Viper configuration loader: reads config.yaml from the user config
// directory or the current directory, with environment variable and
// command-line flag overrides layered on top.

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from config.yaml
type Config struct {
	// Search backend configuration
	Meili struct {
		Host  string `mapstructure:"host"`
		Key   string `mapstructure:"key"`
		Index string `mapstructure:"index"`
	} `mapstructure:"meili"`

	// Logging configuration
	Logging struct {
		Level string `mapstructure:"level"` // "debug", "info", "warn", "error"
	} `mapstructure:"logging"`

	// External programs
	Pager  string `mapstructure:"pager"`
	Editor string `mapstructure:"editor"`
}

// Load reads configuration from config.yaml.
// Priority order: flags → environment → config file → defaults.
// A missing config file is not an error; defaults apply.
func Load(flags *pflag.FlagSet) (*Config, error) {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(dir, "notesearch"))
	}
	viper.AddConfigPath(".") // current directory (development)

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("no config.yaml found, using defaults")
		} else {
			slog.Error("error reading config file", "error", err)
			return nil, err
		}
	} else {
		slog.Debug("loaded configuration", "file", viper.ConfigFileUsed())
	}

	// Environment overrides: NOTESEARCH_MEILI_HOST and friends, plus the
	// compatibility names the original tool and the shell already use.
	viper.SetEnvPrefix("NOTESEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	bindCompatEnv("meili.host", "MEILI_HOST")
	bindCompatEnv("meili.key", "MEILI_KEY")
	bindCompatEnv("pager", "PAGER")
	bindCompatEnv("editor", "EDITOR")

	if flags != nil {
		bindFlags(flags)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		slog.Error("failed to unmarshal config", "error", err)
		return nil, err
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("meili.host", "http://127.0.0.1:7700")
	viper.SetDefault("meili.key", "")
	viper.SetDefault("meili.index", "notes")
	viper.SetDefault("logging.level", "error")
	viper.SetDefault("pager", "less")
	viper.SetDefault("editor", "vim")
}

func bindCompatEnv(key, env string) {
	if err := viper.BindEnv(key, env); err != nil {
		slog.Warn("failed to bind environment variable", "env", env, "error", err)
	}
}

// bindFlags binds command line flags to viper so they can override config
// values. Flags that were never defined on the set are skipped.
func bindFlags(flags *pflag.FlagSet) {
	bindings := map[string]string{
		"meili.host":    "host",
		"meili.key":     "key",
		"meili.index":   "index",
		"logging.level": "log-level",
	}
	for key, name := range bindings {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			slog.Warn("failed to bind command line flag", "flag", name, "error", err)
		}
	}
}

// SetupLogging installs a slog default logger at the configured level.
// Logs go to stderr so they never interleave with command output.
func SetupLogging(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "warn":
		l = slog.LevelWarn
	default:
		l = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}
