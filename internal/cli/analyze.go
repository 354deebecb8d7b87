package cli

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	apperrors "options-payoff/internal/errors"
	"options-payoff/internal/logging"
	"options-payoff/internal/models"
	"options-payoff/internal/payoff"
)

// addAnalysisCommands adds the portfolio analysis commands.
func addAnalysisCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newAtCmd(app))
	rootCmd.AddCommand(newChartCmd(app))
	rootCmd.AddCommand(newCurveCmd(app))
	rootCmd.AddCommand(newBatchCmd(app))
}

// analysisReport is the JSON shape of an analysis.
type analysisReport struct {
	Name string `json:"name"`
	payoff.Summary
}

// summarize runs the analyzer and logs the result.
func (app *App) summarize(name string, legs []models.Position) payoff.Summary {
	start := time.Now()
	s := app.Analyzer.Summarize(legs)
	logging.LogAnalysis(logging.WithStrategy(app.Logger, name),
		len(legs), s.Ignored, s.MaxGain.String(), s.MaxLoss.String(), s.BreakEvens, time.Since(start))
	return s
}

func newAnalyzeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Max gain, max loss and break-evens of a strategy",
		Long: `Analyze a strategy at expiration.

Reports the maximum gain and maximum loss (or Unlimited), every break-even
price and the net premium, followed by the risk profile of each leg.
Invalid legs (non-positive strike or quantity, negative premium) are listed
but ignored.`,
		Example: `  payoff analyze --leg "long call 100@8" --leg "short call 110@3"
  payoff analyze --strategy iron-condor --strike 100 --premium 1,3,3,1
  payoff analyze --file spreads/bull-call.toml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			book, name, err := app.loadBook(cmd)
			if err != nil {
				return err
			}

			summary := app.summarize(name, book.Snapshot())
			if output.IsJSON() {
				return output.JSON(analysisReport{Name: name, Summary: summary})
			}
			printSummary(output, name, summary)
			return nil
		},
	}
	addLegFlags(cmd)
	return cmd
}

func printSummary(output *Output, name string, s payoff.Summary) {
	premiumNote := "credit"
	if s.NetPremium < 0 {
		premiumNote = "debit"
	}
	lines := []string{
		"Max Gain:     " + output.Bound(s.MaxGain),
		"Max Loss:     " + output.Bound(s.MaxLoss),
		"Break-evens:  " + FormatBreakEvens(s.BreakEvens),
		"Net Premium:  " + output.PnL(s.NetPremium) + " " + output.DimText("("+premiumNote+")"),
	}
	if s.Ignored > 0 {
		lines = append(lines, output.Yellow("Ignored legs: "+strconv.Itoa(s.Ignored)))
	}
	output.Box(name, lines)
	output.Println()

	table := NewTable(output, "#", "", "Leg", "Max Gain", "Max Loss", "Break-even")
	for i, leg := range s.Legs {
		be := "-"
		if leg.Risk.HasBreakEven {
			be = FormatPrice(leg.Risk.BreakEven)
		}
		label := leg.Position.String()
		if leg.Position.Label != "" {
			label += " " + output.DimText("("+leg.Position.Label+")")
		}
		if !leg.Valid {
			label = output.DimText(label + " [ignored]")
		}
		table.AddRow(
			strconv.Itoa(i+1),
			output.Swatch(leg.Position.Color),
			label,
			output.Bound(leg.Risk.MaxGain),
			output.Bound(leg.Risk.MaxLoss),
			be,
		)
	}
	table.Render()
	if s.Ignored > 0 {
		output.Println()
		output.Warning("Ignored legs are left out of every total; fix them with --set or remove them with --drop.")
	}
}

// priceReport is the JSON shape of the at command.
type priceReport struct {
	Price float64    `json:"price"`
	Total float64    `json:"total"`
	Legs  []legValue `json:"legs"`
}

type legValue struct {
	Leg   string  `json:"leg"`
	Value float64 `json:"value"`
}

func newAtCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "at <price>",
		Short: "Profit/loss at one underlying price",
		Example: `  payoff at 105 --leg "long call 100@8" --leg "short call 110@3"
  payoff at 19500 --strategy straddle --strike 19500 --premium 112.8,78.6`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			price, err := strconv.ParseFloat(args[0], 64)
			if err != nil || price < 0 {
				return apperrors.NewValidationError("price", args[0], "must be a non-negative number")
			}

			book, _, err := app.loadBook(cmd)
			if err != nil {
				return err
			}
			legs := book.Snapshot()

			report := priceReport{
				Price: price,
				Total: payoff.PortfolioPayoffAt(price, legs),
				Legs:  make([]legValue, 0, len(legs)),
			}
			for _, p := range legs {
				report.Legs = append(report.Legs, legValue{Leg: p.String(), Value: payoff.PayoffAt(price, p)})
			}

			if output.IsJSON() {
				return output.JSON(report)
			}

			output.Bold("P&L at %s", FormatPrice(price))
			output.Println()
			table := NewTable(output, "", "Leg", "P&L")
			for i, lv := range report.Legs {
				table.AddRow(output.Swatch(legs[i].Color), lv.Leg, output.PnL(lv.Value))
			}
			table.AddRow("", output.BoldText("Total"), output.PnL(report.Total))
			table.Render()
			return nil
		},
	}
	addLegFlags(cmd)
	return cmd
}
