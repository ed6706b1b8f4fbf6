// Package config loads the optional printer/runtime profile a caller
// may supply to pkg/zpl.Render: DPI and default media dimensions, plus
// the ambient logging/app settings the rest of the module reads off of
// it. None of it is required — zpl.Render works against built-in
// defaults when RenderOptions.Profile is nil, with no file on disk.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full configuration tree a profile file may describe.
type Config struct {
	Printer PrinterConfig `mapstructure:"printer"`
	Logging LoggingConfig `mapstructure:"logging"`
	App     AppConfig     `mapstructure:"app"`
}

// PrinterConfig is the optional printer profile: default DPI, a
// font-substitution table (family override per font id, for callers
// shipping their own TTFs) and documented clamp overrides (Darkness
// scales stroke/border thickness, MaxModuleWidth caps barcode module
// width), all consumed by internal/raster.Rasterizer. It is never
// required — Render with a nil profile uses the §4.5/§6 built-in
// defaults directly, preserving Render's purity.
type PrinterConfig struct {
	DPI             int               `mapstructure:"dpi" validate:"required"`
	PrintWidthDots  int               `mapstructure:"print_width_dots"`
	LabelLengthDots int               `mapstructure:"label_length_dots"`
	Darkness        int               `mapstructure:"darkness"`
	FontOverrides   map[string]string `mapstructure:"font_overrides"`
	MaxModuleWidth  int               `mapstructure:"max_module_width"`
}

// LoggingConfig controls the structured render logger (internal/logging).
type LoggingConfig struct {
	Level      string `mapstructure:"level" validate:"required"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int     `mapstructure:"max_age_days"`
	Compress   bool    `mapstructure:"compress"`
}

// AppConfig is renderer-identifying metadata, surfaced in log fields.
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment" validate:"required"`
	Debug       bool   `mapstructure:"debug"`
}

// Load reads a profile from path (YAML), falling back to built-in
// defaults for anything the file omits, and validates the result.
// A missing file is not an error — Default() is returned instead — but
// a malformed one is.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("ZPLRENDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("error reading printer profile: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode printer profile: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("printer profile validation failed: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in profile: 203 DPI (the most common
// Zebra desktop-printer density), no fixed page size (the label's own
// ^PW/^LL commands decide it), info-level JSON logging to stdout.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("printer.dpi", 203)
	v.SetDefault("printer.print_width_dots", 0)
	v.SetDefault("printer.label_length_dots", 0)
	v.SetDefault("printer.darkness", 15)
	v.SetDefault("printer.max_module_width", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.max_size_mb", 50)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)
	v.SetDefault("logging.compress", true)

	v.SetDefault("app.name", "zplrender")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
}

func validateConfig(cfg *Config) error {
	if cfg.Printer.DPI <= 0 {
		return fmt.Errorf("printer.dpi must be positive")
	}
	validEnvs := []string{"development", "staging", "production", "test"}
	if !contains(validEnvs, cfg.App.Environment) {
		return fmt.Errorf("app.environment must be one of: %v", validEnvs)
	}
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}
	return nil
}

func contains(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}

// IsProduction reports whether the environment is production.
func (c *Config) IsProduction() bool { return c.App.Environment == "production" }
