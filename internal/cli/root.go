package cli

import (
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"options-payoff/internal/config"
	"options-payoff/internal/logging"
	"options-payoff/internal/palette"
	"options-payoff/internal/payoff"
)

// Version information
const (
	Version   = "0.3.0"
	BuildDate = "2026-10-01"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Analyzer *payoff.Analyzer
	Palette  palette.Config
}

// NewApp wires the analyzer and colour settings from the configuration.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{
		Config:   cfg,
		Logger:   logger,
		Analyzer: payoff.NewAnalyzer(cfg.AnalyzerConfig()),
		Palette:  cfg.PaletteConfig(),
	}
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := NewApp(cfg, logger)

	rootCmd := &cobra.Command{
		Use:   "payoff",
		Short: "Option strategy payoff and risk analyzer",
		Long: `payoff evaluates option strategies at expiration.

It computes the profit/loss curve of a set of call and put legs, the maximum
gain and loss (including unlimited ones) and every break-even price, and draws
the payoff as a text chart.

Legs come from a strategy file (--file), a named template (--strategy) or the
compact leg syntax (--leg "long call 100@5x2").`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.Logger = logging.WithCommand(app.Logger, cmd.Name())
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			if !app.Config.UI.ColorEnabled {
				color.NoColor = true
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/options-payoff)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addAnalysisCommands(rootCmd, app)
	addStrategyCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newPaletteCmd(app))
	rootCmd.AddCommand(newExamplesCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			}
			output.Printf("Options Payoff Analyzer v%s\n", Version)
			output.Dim("Build date: %s", BuildDate)
			return nil
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and validate application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			dir := configDir(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": dir})
			}
			output.Println(dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"valid": true})
			}
			output.Success("✓ Configuration is valid")
			return nil
		},
	})

	return cmd
}

func configDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("config"); dir != "" {
		return dir
	}
	return config.DefaultConfigDir()
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Analysis")
	output.Printf("  Break-even Tolerance: %g\n", cfg.Analysis.BreakEvenTolerance)
	output.Printf("  Far Multiplier:       %g\n", cfg.Analysis.FarMultiplier)
	output.Printf("  Leg Break-evens:      %v\n", cfg.Analysis.IncludeLegBreakEvens)
	output.Println()

	output.Bold("Chart")
	output.Printf("  Size:                 %dx%d\n", cfg.Chart.Width, cfg.Chart.Height)
	output.Printf("  Curve Points:         %d\n", cfg.Chart.Points)
	output.Printf("  Show Legs:            %v\n", cfg.Chart.ShowLegs)
	output.Println()

	output.Bold("Palette")
	output.Printf("  Hue Threshold:        %g°\n", cfg.Palette.HueThreshold)
	output.Printf("  Max Attempts:         %d\n", cfg.Palette.MaxAttempts)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:                %s\n", cfg.Logging.Level)
	output.Printf("  File:                 %v (%s)\n", cfg.Logging.File, cfg.Logging.FilePath)
	output.Println()

	output.Bold("UI")
	output.Printf("  Color:                %v\n", cfg.UI.ColorEnabled)
	output.Printf("  Currency Symbol:      %q\n", cfg.UI.CurrencySymbol)
}
