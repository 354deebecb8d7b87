package cli

import (
	"github.com/spf13/cobra"

	"options-payoff/internal/chart"
	apperrors "options-payoff/internal/errors"
	"options-payoff/internal/models"
	"options-payoff/internal/payoff"
)

// priceRange resolves --from/--to against the default display domain.
func priceRange(cmd *cobra.Command, legs []models.Position) (lo, hi float64, err error) {
	lo, hi = payoff.DefaultDomain(legs)
	if cmd.Flags().Changed("from") {
		lo, _ = cmd.Flags().GetFloat64("from")
	}
	if cmd.Flags().Changed("to") {
		hi, _ = cmd.Flags().GetFloat64("to")
	}
	if lo < 0 || hi <= lo {
		return 0, 0, apperrors.NewValidationError("range", []float64{lo, hi}, "need 0 <= from < to")
	}
	return lo, hi, nil
}

func strikes(legs []models.Position) []float64 {
	var out []float64
	for _, p := range payoff.ValidLegs(legs) {
		out = append(out, p.Strike)
	}
	return out
}

// chartReport is the JSON shape of the chart command.
type chartReport struct {
	Name  string            `json:"name"`
	Risk  payoff.RiskReward `json:"risk"`
	Curve []payoff.Point    `json:"curve"`
}

func newChartCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Draw the payoff diagram",
		Long: `Draw the expiration payoff of a strategy as a text chart.

The combined curve is drawn with '*', individual legs with '.' (--legs),
break-evens with 'o' on the zero line and strikes with '^' under the axis.`,
		Example: `  payoff chart --strategy straddle --strike 100 --premium 4
  payoff chart --file condor.toml --legs --from 80 --to 120`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			book, name, err := app.loadBook(cmd)
			if err != nil {
				return err
			}
			legs := book.Snapshot()

			lo, hi, err := priceRange(cmd, legs)
			if err != nil {
				return err
			}
			width, _ := cmd.Flags().GetInt("width")
			height, _ := cmd.Flags().GetInt("height")
			showLegs, _ := cmd.Flags().GetBool("legs")
			if !cmd.Flags().Changed("width") {
				width = app.Config.Chart.Width
			}
			if !cmd.Flags().Changed("height") {
				height = app.Config.Chart.Height
			}
			if !cmd.Flags().Changed("legs") {
				showLegs = app.Config.Chart.ShowLegs
			}

			risk := app.summarize(name, legs).RiskReward
			prices := payoff.ChartPrices(lo, hi, width, legs)

			if output.IsJSON() {
				return output.JSON(chartReport{Name: name, Risk: risk, Curve: payoff.Curve(prices, legs)})
			}

			output.Bold("%s", name)
			output.Printf("Max Gain %s  Max Loss %s  Break-evens %s\n\n",
				output.Bound(risk.MaxGain), output.Bound(risk.MaxLoss), FormatBreakEvens(risk.BreakEvens))

			var drawn []models.Position
			if showLegs {
				drawn = book.Visible()
			}
			return chart.Render(output.Writer(), chart.Build(prices, legs, drawn), chart.Options{
				Width:      width,
				Height:     height,
				Strikes:    strikes(legs),
				BreakEvens: risk.BreakEvens,
				Color:      output.ColorEnabled(),
			})
		},
	}
	addLegFlags(cmd)
	cmd.Flags().Float64("from", 0, "lowest price on the chart")
	cmd.Flags().Float64("to", 0, "highest price on the chart")
	cmd.Flags().Int("width", 72, "plot width in characters")
	cmd.Flags().Int("height", 20, "plot height in lines")
	cmd.Flags().Bool("legs", false, "also draw each visible leg")
	return cmd
}

func newCurveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Tabulate profit/loss over a price range",
		Example: `  payoff curve --leg "short put 95@2" --from 80 --to 110 --points 7
  payoff curve --file condor.toml --csv > condor.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			book, _, err := app.loadBook(cmd)
			if err != nil {
				return err
			}
			legs := book.Snapshot()

			lo, hi, err := priceRange(cmd, legs)
			if err != nil {
				return err
			}
			points, _ := cmd.Flags().GetInt("points")
			if !cmd.Flags().Changed("points") {
				points = app.Config.Chart.Points
			}
			if points < 2 {
				return apperrors.NewValidationError("points", points, "must be at least 2")
			}

			var prices []float64
			if withStrikes, _ := cmd.Flags().GetBool("strikes"); withStrikes {
				prices = payoff.ChartPrices(lo, hi, points, legs)
			} else {
				prices = payoff.ChartPrices(lo, hi, points, nil)
			}
			rows := chart.Rows(prices, legs)

			if csv, _ := cmd.Flags().GetBool("csv"); csv {
				return chart.WriteCSV(output.Writer(), rows)
			}
			if output.IsJSON() {
				return output.JSON(rows)
			}

			table := NewTable(output, "Price", "P&L")
			for _, r := range rows {
				table.AddRow(FormatPrice(r.Price), output.PnL(r.Total))
			}
			table.Render()
			return nil
		},
	}
	addLegFlags(cmd)
	cmd.Flags().Float64("from", 0, "lowest price")
	cmd.Flags().Float64("to", 0, "highest price")
	cmd.Flags().Int("points", 200, "number of evenly spaced prices")
	cmd.Flags().Bool("strikes", true, "also include every strike in range")
	cmd.Flags().Bool("csv", false, "write CSV instead of a table")
	return cmd
}
