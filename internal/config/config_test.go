package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "options-payoff/internal/errors"
)

func expectedDefaults() *Config {
	want := Defaults()
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		want.UI.ColorEnabled = false
	}
	return want
}

func TestLoad_CreatesTemplate(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, expectedDefaults(), cfg)

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[analysis]")

	// Loading again reads the template and yields the same values.
	again, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
[analysis]
breakeven_tolerance = 0.5

[chart]
width = 100
show_legs = true

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Analysis.BreakEvenTolerance)
	assert.Equal(t, 1.5, cfg.Analysis.FarMultiplier)
	assert.Equal(t, 100, cfg.Chart.Width)
	assert.Equal(t, 20, cfg.Chart.Height)
	assert.True(t, cfg.Chart.ShowLegs)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PAYOFF_BREAKEVEN_TOLERANCE", "0.25")
	t.Setenv("PAYOFF_CHART_WIDTH", "120")
	t.Setenv("PAYOFF_CURRENCY", "$")
	t.Setenv("PAYOFF_CHART_HEIGHT", "not-a-number")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Analysis.BreakEvenTolerance)
	assert.Equal(t, 120, cfg.Chart.Width)
	assert.Equal(t, 20, cfg.Chart.Height)
	assert.Equal(t, "$", cfg.UI.CurrencySymbol)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[analysis]\nfar_multiplier = 1.0\n"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConfigInvalid))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tolerance", func(c *Config) { c.Analysis.BreakEvenTolerance = 0 }},
		{"far multiplier", func(c *Config) { c.Analysis.FarMultiplier = 0.5 }},
		{"chart size", func(c *Config) { c.Chart.Width = 3 }},
		{"chart points", func(c *Config) { c.Chart.Points = 1 }},
		{"hue threshold", func(c *Config) { c.Palette.HueThreshold = 200 }},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}
	require.NoError(t, Defaults().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.True(t, apperrors.Is(err, apperrors.ErrConfigInvalid), "got %v", err)
		})
	}
}

func TestDerivedConfigs(t *testing.T) {
	cfg := Defaults()
	cfg.Analysis.BreakEvenTolerance = 0.2
	cfg.Analysis.FarMultiplier = 3
	cfg.Analysis.IncludeLegBreakEvens = false
	cfg.Palette.HueThreshold = 45

	ac := cfg.AnalyzerConfig()
	assert.Equal(t, 0.2, ac.Tolerance)
	assert.Equal(t, 3.0, ac.Sampler.FarMultiplier)
	assert.False(t, ac.Sampler.IncludeLegBreakEvens)
	assert.Equal(t, 2, ac.Precision)

	assert.Equal(t, 45.0, cfg.PaletteConfig().HueThreshold)
	assert.Equal(t, cfg.Logging.FilePath, cfg.LogConfig().FilePath)
}
