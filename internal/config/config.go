// Package config provides configuration management for the payoff analyzer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "options-payoff/internal/errors"
	"options-payoff/internal/logging"
	"options-payoff/internal/palette"
	"options-payoff/internal/payoff"
)

// Config holds all application configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis" json:"analysis"`
	Chart    ChartConfig    `mapstructure:"chart" json:"chart"`
	Palette  PaletteConfig  `mapstructure:"palette" json:"palette"`
	Logging  LoggingConfig  `mapstructure:"logging" json:"logging"`
	UI       UIConfig       `mapstructure:"ui" json:"ui"`
}

// AnalysisConfig holds risk/reward analysis tuning.
type AnalysisConfig struct {
	BreakEvenTolerance   float64 `mapstructure:"breakeven_tolerance" json:"breakeven_tolerance"`
	FarMultiplier        float64 `mapstructure:"far_multiplier" json:"far_multiplier"`
	IncludeLegBreakEvens bool    `mapstructure:"include_leg_breakevens" json:"include_leg_breakevens"`
}

// ChartConfig holds chart rendering defaults.
type ChartConfig struct {
	Width    int  `mapstructure:"width" json:"width"`
	Height   int  `mapstructure:"height" json:"height"`
	Points   int  `mapstructure:"points" json:"points"`
	ShowLegs bool `mapstructure:"show_legs" json:"show_legs"`
}

// PaletteConfig holds leg colour allocation tuning.
type PaletteConfig struct {
	HueThreshold float64 `mapstructure:"hue_threshold" json:"hue_threshold"`
	MaxAttempts  int     `mapstructure:"max_attempts" json:"max_attempts"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level" json:"level"`
	Console    bool   `mapstructure:"console" json:"console"`
	File       bool   `mapstructure:"file" json:"file"`
	FilePath   string `mapstructure:"file_path" json:"file_path"`
	MaxSize    int    `mapstructure:"max_size" json:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" json:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" json:"max_age"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled   bool   `mapstructure:"color_enabled" json:"color_enabled"`
	CurrencySymbol string `mapstructure:"currency_symbol" json:"currency_symbol"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/options-payoff"
	}
	return filepath.Join(home, ".config", "options-payoff")
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	log := logging.DefaultLogConfig()
	pal := palette.DefaultConfig()
	return &Config{
		Analysis: AnalysisConfig{
			BreakEvenTolerance:   payoff.DefaultBreakEvenTolerance,
			FarMultiplier:        payoff.DefaultSamplerConfig().FarMultiplier,
			IncludeLegBreakEvens: true,
		},
		Chart: ChartConfig{
			Width:  72,
			Height: 20,
			Points: 200,
		},
		Palette: PaletteConfig{
			HueThreshold: pal.HueThreshold,
			MaxAttempts:  pal.MaxAttempts,
		},
		Logging: LoggingConfig{
			Level:      log.Level,
			Console:    log.Console,
			File:       log.File,
			FilePath:   log.FilePath,
			MaxSize:    log.MaxSize,
			MaxBackups: log.MaxBackups,
			MaxAge:     log.MaxAge,
		},
		UI: UIConfig{
			ColorEnabled:   true,
			CurrencySymbol: "",
		},
	}
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config.toml is replaced by a commented template and defaults are used.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg, err := loadConfigFile(configDir, "config")
	if err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	// A missing .env is not an error.
	_ = godotenv.Load()
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func loadConfigFile(configDir, name string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, Defaults())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		if err := createTemplateConfig(configDir, name); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = logging.DefaultLogConfig().FilePath
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("analysis.breakeven_tolerance", d.Analysis.BreakEvenTolerance)
	v.SetDefault("analysis.far_multiplier", d.Analysis.FarMultiplier)
	v.SetDefault("analysis.include_leg_breakevens", d.Analysis.IncludeLegBreakEvens)

	v.SetDefault("chart.width", d.Chart.Width)
	v.SetDefault("chart.height", d.Chart.Height)
	v.SetDefault("chart.points", d.Chart.Points)
	v.SetDefault("chart.show_legs", d.Chart.ShowLegs)

	v.SetDefault("palette.hue_threshold", d.Palette.HueThreshold)
	v.SetDefault("palette.max_attempts", d.Palette.MaxAttempts)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.console", d.Logging.Console)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.file_path", d.Logging.FilePath)
	v.SetDefault("logging.max_size", d.Logging.MaxSize)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age", d.Logging.MaxAge)

	v.SetDefault("ui.color_enabled", d.UI.ColorEnabled)
	v.SetDefault("ui.currency_symbol", d.UI.CurrencySymbol)
}

func applyEnvOverrides(cfg *Config) {
	setFloat(&cfg.Analysis.BreakEvenTolerance, "PAYOFF_BREAKEVEN_TOLERANCE")
	setFloat(&cfg.Analysis.FarMultiplier, "PAYOFF_FAR_MULTIPLIER")
	setInt(&cfg.Chart.Width, "PAYOFF_CHART_WIDTH")
	setInt(&cfg.Chart.Height, "PAYOFF_CHART_HEIGHT")
	setStr(&cfg.Logging.Level, "PAYOFF_LOG_LEVEL")
	setStr(&cfg.Logging.FilePath, "PAYOFF_LOG_FILE")
	setStr(&cfg.UI.CurrencySymbol, "PAYOFF_CURRENCY")

	// NO_COLOR is honoured regardless of value.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.UI.ColorEnabled = false
	}
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Analysis.BreakEvenTolerance <= 0 {
		return invalid("analysis.breakeven_tolerance", c.Analysis.BreakEvenTolerance, "must be positive")
	}
	if c.Analysis.FarMultiplier <= 1 {
		return invalid("analysis.far_multiplier", c.Analysis.FarMultiplier, "must be greater than 1")
	}
	if c.Chart.Width < 10 || c.Chart.Height < 5 {
		return invalid("chart", fmt.Sprintf("%dx%d", c.Chart.Width, c.Chart.Height), "must be at least 10x5")
	}
	if c.Chart.Points < 2 {
		return invalid("chart.points", c.Chart.Points, "must be at least 2")
	}
	if c.Palette.HueThreshold < 0 || c.Palette.HueThreshold > 180 {
		return invalid("palette.hue_threshold", c.Palette.HueThreshold, "must be between 0 and 180")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return invalid("logging.level", c.Logging.Level, "must be debug, info, warn or error")
	}
	return nil
}

func invalid(field string, value interface{}, msg string) error {
	return apperrors.Wrap(apperrors.ErrConfigInvalid, apperrors.NewValidationError(field, value, msg).Error())
}

// AnalyzerConfig returns the payoff analyzer settings.
func (c *Config) AnalyzerConfig() payoff.AnalyzerConfig {
	cfg := payoff.DefaultAnalyzerConfig()
	cfg.Tolerance = c.Analysis.BreakEvenTolerance
	cfg.Sampler.FarMultiplier = c.Analysis.FarMultiplier
	cfg.Sampler.IncludeLegBreakEvens = c.Analysis.IncludeLegBreakEvens
	return cfg
}

// PaletteConfig returns the colour allocator settings.
func (c *Config) PaletteConfig() palette.Config {
	cfg := palette.DefaultConfig()
	cfg.HueThreshold = c.Palette.HueThreshold
	cfg.MaxAttempts = c.Palette.MaxAttempts
	return cfg
}

// LogConfig returns the logger settings.
func (c *Config) LogConfig() logging.LogConfig {
	return logging.LogConfig{
		Level:      c.Logging.Level,
		Console:    c.Logging.Console,
		File:       c.Logging.File,
		FilePath:   c.Logging.FilePath,
		MaxSize:    c.Logging.MaxSize,
		MaxBackups: c.Logging.MaxBackups,
		MaxAge:     c.Logging.MaxAge,
	}
}
