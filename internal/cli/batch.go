package cli

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"options-payoff/internal/logging"
	"options-payoff/internal/payoff"
	"options-payoff/internal/strategy"
)

// batchResult is the analysis of one strategy file.
type batchResult struct {
	Path  string             `json:"path"`
	Name  string             `json:"name,omitempty"`
	Legs  int                `json:"legs"`
	Risk  *payoff.RiskReward `json:"risk,omitempty"`
	Error string             `json:"error,omitempty"`
}

// analyzeFiles loads and analyses every file with at most parallel files in
// flight. Results keep the input order; a bad file is reported in its result
// and does not stop the others.
func (app *App) analyzeFiles(cmd *cobra.Command, paths []string, parallel int) ([]batchResult, error) {
	results := make([]batchResult, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(parallel)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := batchResult{Path: path}

			f, err := strategy.Load(path)
			logging.LogFileLoaded(app.Logger, path, legCount(f), err)
			if err != nil {
				res.Error = err.Error()
				results[i] = res
				return nil
			}

			res.Name = f.Name
			res.Legs = len(f.Legs)
			rr := app.summarize(f.Name, f.Legs).RiskReward
			res.Risk = &rr
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func newBatchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Analyze many strategy files",
		Example: `  payoff batch strategies/*.toml
  payoff batch a.toml b.yaml --parallel 2 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			parallel, _ := cmd.Flags().GetInt("parallel")
			if parallel <= 0 {
				parallel = runtime.NumCPU()
			}

			results, err := app.analyzeFiles(cmd, args, parallel)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
				}
			}

			if output.IsJSON() {
				if err := output.JSON(results); err != nil {
					return err
				}
			} else {
				table := NewTable(output, "File", "Strategy", "Legs", "Max Gain", "Max Loss", "Break-evens")
				for _, r := range results {
					if r.Error != "" {
						table.AddRow(r.Path, output.Red(TruncateString(r.Error, 60)), "", "", "", "")
						continue
					}
					table.AddRow(r.Path, r.Name, strconv.Itoa(r.Legs),
						output.Bound(r.Risk.MaxGain), output.Bound(r.Risk.MaxLoss), FormatBreakEvens(r.Risk.BreakEvens))
				}
				table.Render()
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().IntP("parallel", "p", runtime.NumCPU(), "files analysed concurrently")
	return cmd
}
