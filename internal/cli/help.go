package cli

import (
	"github.com/spf13/cobra"
)

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflow examples",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			examples := []struct {
				Title    string   `json:"title"`
				Commands []string `json:"commands"`
			}{
				{
					Title: "Quick Look at a Spread",
					Commands: []string{
						`payoff analyze -l "long call 100@8" -l "short call 110@3"`,
						`payoff chart -l "long call 100@8" -l "short call 110@3" --legs`,
						`payoff at 107 -l "long call 100@8" -l "short call 110@3"`,
					},
				},
				{
					Title: "From a Template",
					Commands: []string{
						"payoff strategy list",
						"payoff analyze --strategy iron-condor --strike 100 --spacing 5 --premium 1,3,3,1",
						"payoff strategy build straddle --strike 100 --premium 4 --short -o short-straddle.toml",
					},
				},
				{
					Title: "Working with Files",
					Commands: []string{
						"payoff analyze -f short-straddle.toml --json",
						"payoff curve -f short-straddle.toml --from 80 --to 120 --csv > straddle.csv",
						"payoff batch strategies/*.toml --parallel 4",
					},
				},
			}

			if output.IsJSON() {
				return output.JSON(examples)
			}

			output.Bold("Common Workflow Examples")
			output.Println()
			for _, ex := range examples {
				output.Info("%s", ex.Title)
				for _, c := range ex.Commands {
					output.Printf("  %s\n", c)
				}
				output.Println()
			}
			return nil
		},
	}
}
