package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"options-payoff/internal/strategy"
)

// addStrategyCommands adds the strategy template commands.
func addStrategyCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Option strategy templates",
		Long: `List and build option strategy templates.

Templates cover straddles, strangles, vertical spreads, iron condors,
butterflies and ratio spreads. Built strategies are written as TOML files
that every analysis command accepts through --file.`,
	}

	cmd.AddCommand(newStrategyListCmd())
	cmd.AddCommand(newStrategyBuildCmd(app))
	rootCmd.AddCommand(cmd)
}

func newStrategyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			templates := strategy.Templates()

			if output.IsJSON() {
				type entry struct {
					Name        string `json:"name"`
					Description string `json:"description"`
					Legs        int    `json:"legs"`
				}
				list := make([]entry, 0, len(templates))
				for _, t := range templates {
					list = append(list, entry{Name: t.Name, Description: t.Description, Legs: t.Legs()})
				}
				return output.JSON(list)
			}

			output.Bold("Available Option Strategies")
			output.Println()
			table := NewTable(output, "Name", "Legs", "Description")
			for _, t := range templates {
				table.AddRow(output.Cyan(t.Name), strconv.Itoa(t.Legs()), t.Description)
			}
			table.Render()
			return nil
		},
	}
}

func newStrategyBuildCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <strategy>",
		Short: "Build a strategy file from a template",
		Example: `  payoff strategy build iron-condor --strike 100 --spacing 5 --premium 1,3,3,1
  payoff strategy build straddle --strike 19500 --premium 112.8,78.6 --short --out short-straddle.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			name := args[0]

			params, err := templateParams(cmd)
			if err != nil {
				return err
			}
			legs, err := strategy.Build(name, params)
			if err != nil {
				return err
			}
			f := &strategy.File{Name: name, Legs: legs}
			if underlying, _ := cmd.Flags().GetString("underlying"); underlying != "" {
				f.Underlying = underlying
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				if output.IsJSON() {
					return output.JSON(f)
				}
				return strategy.Encode(output.Writer(), f)
			}

			file, err := os.Create(out)
			if err != nil {
				return err
			}
			defer file.Close()
			if err := strategy.Encode(file, f); err != nil {
				return err
			}

			summary := app.summarize(name, legs)
			if output.IsJSON() {
				return output.JSON(analysisReport{Name: name, Summary: summary})
			}
			output.Success("✓ Wrote %s", out)
			output.Println()
			printSummary(output, name, summary)
			return nil
		},
	}
	cmd.Flags().Float64("strike", 0, "centre strike")
	cmd.Flags().Float64("spacing", 0, "strike spacing (default 5% of strike)")
	cmd.Flags().Float64Slice("premium", nil, "premiums in leg order; the last repeats")
	cmd.Flags().Int("qty", 1, "quantity multiplier")
	cmd.Flags().Bool("short", false, "flip every leg")
	cmd.Flags().String("underlying", "", "underlying symbol recorded in the file")
	cmd.Flags().StringP("out", "o", "", "write TOML to this file")
	return cmd
}
