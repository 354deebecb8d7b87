package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "options-payoff/internal/errors"
	"options-payoff/internal/palette"
)

func newPaletteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette [n]",
		Short: "Preview the colours assigned to legs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			n := 8
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil || v <= 0 || v > 360 {
					return apperrors.NewValidationError("n", args[0], "must be between 1 and 360")
				}
				n = v
			}

			cfg := app.Palette
			cfg.Seed, _ = cmd.Flags().GetInt64("seed")
			alloc := palette.NewAllocator(cfg)

			type entry struct {
				palette.Color
				Hex string `json:"hex"`
			}
			colors := make([]entry, n)
			for i := range colors {
				c := alloc.Next()
				colors[i] = entry{Color: c, Hex: c.Hex()}
			}

			if output.IsJSON() {
				return output.JSON(colors)
			}
			table := NewTable(output, "#", "", "Hex", "Hue", "Sat", "Light")
			for i, c := range colors {
				table.AddRow(strconv.Itoa(i+1), output.Swatch(c.Hex), c.Hex,
					fmt.Sprintf("%.0f°", c.H), fmt.Sprintf("%.0f%%", c.S), fmt.Sprintf("%.0f%%", c.L))
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().Int64("seed", 0, "random seed (0 = time based)")
	return cmd
}
