package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Options Payoff Analyzer Configuration

[analysis]
# Break-evens closer than this are reported once
breakeven_tolerance = 0.01
# Far-right sample price as a multiple of the highest strike
far_multiplier = 1.5
# Sample each leg's own break-even price
include_leg_breakevens = true

[chart]
# Plot size in characters
width = 72
height = 20
# Number of grid prices for curve tables
points = 200
# Draw individual legs under the combined curve
show_legs = false

[palette]
# Minimum hue distance in degrees between leg colours
hue_threshold = 30.0
# Random candidates tried before taking the best available
max_attempts = 100

[logging]
# debug, info, warn, error
level = "info"
console = false
file = true
# Leave empty for ~/.config/options-payoff/logs/payoff.log
file_path = ""
# Rotation: megabytes, files, days
max_size = 10
max_backups = 3
max_age = 30

[ui]
# Enable colored output
color_enabled = true
# Prefix for money amounts, e.g. "$" or "₹"
currency_symbol = ""
`

// createTemplateConfig writes a commented config file so users have something
// to edit. An existing file is left alone.
func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}
