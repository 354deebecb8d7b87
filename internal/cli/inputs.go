package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "options-payoff/internal/errors"
	"options-payoff/internal/logging"
	"options-payoff/internal/models"
	"options-payoff/internal/palette"
	"options-payoff/internal/portfolio"
	"options-payoff/internal/strategy"
)

// addLegFlags registers the flags every analysis command accepts for
// describing a portfolio.
func addLegFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "strategy file (.toml, .yaml, .json)")
	cmd.Flags().StringArrayP("leg", "l", nil, `leg as "<direction> <kind> <strike>@<premium>[x<qty>]" (repeatable)`)
	cmd.Flags().StringP("strategy", "s", "", "strategy template name (see 'payoff strategy list')")
	cmd.Flags().Float64("strike", 0, "template centre strike")
	cmd.Flags().Float64("spacing", 0, "template strike spacing (default 5% of strike)")
	cmd.Flags().Float64Slice("premium", nil, "template premiums in leg order; the last repeats")
	cmd.Flags().Int("qty", 1, "template quantity multiplier")
	cmd.Flags().Bool("short", false, "flip every template leg")
	cmd.Flags().StringArray("set", nil, `edit a loaded leg as "<n>:<field>=<value>" (kind, direction, strike, premium, qty)`)
	cmd.Flags().StringSlice("hide", nil, `leg numbers left off the per-leg chart, "all" or "none"`)
	cmd.Flags().IntSlice("drop", nil, "leg numbers removed before analysis")
}

// loadBook collects legs from --file, --strategy and --leg, in that order,
// into a new book. The returned name describes the portfolio for display.
func (app *App) loadBook(cmd *cobra.Command) (*portfolio.Book, string, error) {
	book := portfolio.NewBook(palette.NewAllocator(app.Palette), app.Logger)
	var names []string

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		f, err := strategy.Load(path)
		logging.LogFileLoaded(app.Logger, path, legCount(f), err)
		if err != nil {
			return nil, "", err
		}
		book.AddAll(f.Legs)
		names = append(names, f.Name)
	}

	if name, _ := cmd.Flags().GetString("strategy"); name != "" {
		params, err := templateParams(cmd)
		if err != nil {
			return nil, "", err
		}
		legs, err := strategy.Build(name, params)
		if err != nil {
			return nil, "", err
		}
		book.AddAll(legs)
		names = append(names, name)
	}

	specs, _ := cmd.Flags().GetStringArray("leg")
	if len(specs) > 0 {
		legs, err := strategy.ParseLegs(specs)
		if err != nil {
			return nil, "", err
		}
		book.AddAll(legs)
		if len(names) == 0 {
			names = append(names, "custom")
		}
	}

	if err := editBook(cmd, book); err != nil {
		return nil, "", err
	}
	if book.Len() == 0 {
		return nil, "", apperrors.Wrap(apperrors.ErrEmptyPortfolio, "use --file, --strategy or --leg")
	}

	for _, p := range book.Snapshot() {
		if !p.Valid() {
			logging.LogLegRejected(app.Logger, p.String(), invalidReason(p))
		}
	}
	return book, strings.Join(names, " + "), nil
}

// editBook applies --set, --hide and --drop in that order. Leg numbers are
// 1-based and refer to the order the legs were loaded in.
func editBook(cmd *cobra.Command, book *portfolio.Book) error {
	loaded := book.Snapshot()
	idOf := func(n int) (string, error) {
		if n < 1 || n > len(loaded) {
			return "", apperrors.NewValidationError("leg", n, fmt.Sprintf("must be between 1 and %d", len(loaded)))
		}
		return loaded[n-1].ID, nil
	}

	edits, _ := cmd.Flags().GetStringArray("set")
	for _, e := range edits {
		n, edit, err := parseEdit(e)
		if err != nil {
			return err
		}
		id, err := idOf(n)
		if err != nil {
			return err
		}
		if _, err := book.Update(id, edit); err != nil {
			return err
		}
	}

	hide, _ := cmd.Flags().GetStringSlice("hide")
	for _, h := range hide {
		switch strings.ToLower(h) {
		case "all":
			book.SetAllVisible(false)
			continue
		case "none":
			book.SetAllVisible(true)
			continue
		}
		n, err := strconv.Atoi(h)
		if err != nil {
			return apperrors.NewValidationError("hide", h, `expected a leg number, "all" or "none"`)
		}
		id, err := idOf(n)
		if err != nil {
			return err
		}
		p, err := book.Get(id)
		if err != nil {
			return err
		}
		if !p.Hidden {
			if _, err := book.Toggle(id); err != nil {
				return err
			}
		}
	}

	drop, _ := cmd.Flags().GetIntSlice("drop")
	for _, n := range drop {
		id, err := idOf(n)
		if err != nil {
			return err
		}
		if err := book.Remove(id); err != nil {
			return err
		}
	}
	return nil
}

// parseEdit parses "<n>:<field>=<value>" into a leg number and an update.
// Values are applied as given, so an edit may leave the leg invalid.
func parseEdit(s string) (int, func(models.Position) models.Position, error) {
	num, assignment, ok := strings.Cut(s, ":")
	field, value, ok2 := strings.Cut(assignment, "=")
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if !ok || !ok2 || err != nil {
		return 0, nil, apperrors.NewValidationError("set", s, `expected "<n>:<field>=<value>"`)
	}
	value = strings.TrimSpace(value)
	bad := func(msg string) (int, func(models.Position) models.Position, error) {
		return 0, nil, apperrors.NewValidationError("set", s, msg)
	}

	switch strings.ToLower(strings.TrimSpace(field)) {
	case "kind":
		kind, err := models.ParseKind(value)
		if err != nil {
			return bad("kind must be call or put")
		}
		return n, func(p models.Position) models.Position { return p.WithKind(kind) }, nil
	case "direction":
		dir, err := models.ParseDirection(value)
		if err != nil {
			return bad("direction must be long or short")
		}
		return n, func(p models.Position) models.Position { return p.WithDirection(dir) }, nil
	case "strike":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return bad("strike must be a number")
		}
		return n, func(p models.Position) models.Position { return p.WithStrike(v) }, nil
	case "premium":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return bad("premium must be a number")
		}
		return n, func(p models.Position) models.Position { return p.WithPremium(v) }, nil
	case "qty", "quantity":
		v, err := strconv.Atoi(value)
		if err != nil {
			return bad("qty must be an integer")
		}
		return n, func(p models.Position) models.Position { return p.WithQuantity(v) }, nil
	}
	return bad("field must be kind, direction, strike, premium or qty")
}

func templateParams(cmd *cobra.Command) (strategy.Params, error) {
	strike, _ := cmd.Flags().GetFloat64("strike")
	spacing, _ := cmd.Flags().GetFloat64("spacing")
	premiums, _ := cmd.Flags().GetFloat64Slice("premium")
	qty, _ := cmd.Flags().GetInt("qty")
	short, _ := cmd.Flags().GetBool("short")

	if strike <= 0 {
		return strategy.Params{}, apperrors.NewValidationError("strike", strike, "--strike is required with --strategy")
	}
	if qty <= 0 {
		return strategy.Params{}, apperrors.NewValidationError("qty", qty, "must be positive")
	}
	return strategy.Params{
		Strike:   strike,
		Width:    spacing,
		Premiums: premiums,
		Quantity: qty,
		Short:    short,
	}, nil
}

func invalidReason(p models.Position) string {
	switch {
	case !(p.Strike > 0):
		return "strike must be positive"
	case !(p.Premium >= 0):
		return "premium must not be negative"
	case p.Quantity <= 0:
		return "quantity must be positive"
	case !p.IsCall() && p.Kind != models.Put:
		return "unknown option kind"
	case !p.IsLong() && p.Direction != models.Short:
		return "unknown direction"
	}
	return "non-finite value"
}

func legCount(f *strategy.File) int {
	if f == nil {
		return 0
	}
	return len(f.Legs)
}

func (app *App) output(cmd *cobra.Command) *Output {
	return NewOutput(cmd).WithCurrency(app.Config.UI.CurrencySymbol)
}
