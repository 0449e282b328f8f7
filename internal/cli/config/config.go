package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes the environment variables read by Load, e.g.
// NOCOPYGEN_LAYOUT_CHECKS=false.
const EnvPrefix = "NOCOPYGEN"

// Config represents the nocopygen configuration
type Config struct {
	OutputSuffix string `mapstructure:"output_suffix"`
	LayoutChecks bool   `mapstructure:"layout_checks"`
	BuildTags    string `mapstructure:"build_tags"`
	LogLevel     string `mapstructure:"log_level"`
	DryRun       bool   `mapstructure:"dry_run"`
}

// flag name → config key
var flagKeys = map[string]string{
	"output-suffix": "output_suffix",
	"layout-checks": "layout_checks",
	"build-tags":    "build_tags",
	"log-level":     "log_level",
	"dry-run":       "dry_run",
}

// AddFlags registers the flags understood by Load.
func AddFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default .nocopygen.yaml in the working directory)")
	flags.String("output-suffix", "_nocopy.go", "suffix replacing .go in output file names")
	flags.Bool("layout-checks", true, "emit compile-time layout assertions for @repr(C) records")
	flags.String("build-tags", "", "build constraint written to generated files")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("dry-run", false, "generate without writing files")
}

// Load loads the configuration. Later sources override earlier ones:
// defaults, .nocopygen.yaml, NOCOPYGEN_* environment variables, then flags
// that were set explicitly. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("output_suffix", "_nocopy.go")
	v.SetDefault("layout_checks", true)
	v.SetDefault("build_tags", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("dry_run", false)

	configFile := ""
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".nocopygen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Enable environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Level returns the configured log level.
func (c *Config) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if !strings.HasSuffix(cfg.OutputSuffix, ".go") {
		return fmt.Errorf("output_suffix must end with .go, got: %s", cfg.OutputSuffix)
	}
	if cfg.OutputSuffix == ".go" {
		return fmt.Errorf("output_suffix must not be .go alone, outputs would overwrite their inputs")
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	return nil
}
