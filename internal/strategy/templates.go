// Package strategy builds option strategies from named templates, compact leg
// strings and strategy files.
package strategy

import (
	"math"
	"sort"
	"strings"

	apperrors "options-payoff/internal/errors"
	"options-payoff/internal/models"
)

// Params parameterises a template.
type Params struct {
	// Strike is the centre (at-the-money) strike.
	Strike float64
	// Width is the distance between adjacent strikes; 0 means 5% of Strike.
	Width float64
	// Premiums are applied to the legs in order; the last value repeats.
	Premiums []float64
	// Quantity multiplies every leg.
	Quantity int
	// Short flips every leg, e.g. a long straddle into a short straddle.
	Short bool
}

// Template describes a named strategy shape.
type Template struct {
	Name        string
	Description string
	build       func(k, w float64) []models.Position
}

var templates = map[string]Template{
	"long-call": {
		Name:        "long-call",
		Description: "Buy one call at the strike",
		build: func(k, w float64) []models.Position {
			return []models.Position{leg(models.Long, models.Call, k, 1)}
		},
	},
	"short-call": {
		Name:        "short-call",
		Description: "Sell one call at the strike",
		build: func(k, w float64) []models.Position {
			return []models.Position{leg(models.Short, models.Call, k, 1)}
		},
	},
	"long-put": {
		Name:        "long-put",
		Description: "Buy one put at the strike",
		build: func(k, w float64) []models.Position {
			return []models.Position{leg(models.Long, models.Put, k, 1)}
		},
	},
	"short-put": {
		Name:        "short-put",
		Description: "Sell one put at the strike",
		build: func(k, w float64) []models.Position {
			return []models.Position{leg(models.Short, models.Put, k, 1)}
		},
	},
	"straddle": {
		Name:        "straddle",
		Description: "Buy ATM Put + Call",
		build: func(k, w float64) []models.Position {
			return []models.Position{
				leg(models.Long, models.Put, k, 1),
				leg(models.Long, models.Call, k, 1),
			}
		},
	},
	"strangle": {
		Name:        "strangle",
		Description: "Buy OTM Put + Call one width away",
		build: func(k, w float64) []models.Position {
			return []models.Position{
				leg(models.Long, models.Put, k-w, 1),
				leg(models.Long, models.Call, k+w, 1),
			}
		},
	},
	"bull-call-spread": {
		Name:        "bull-call-spread",
		Description: "Buy Call at the strike, Sell Call one width higher",
		build: func(k, w float64) []models.Position {
			return []models.Position{
				leg(models.Long, models.Call, k, 1),
				leg(models.Short, models.Call, k+w, 1),
			}
		},
	},
	"bear-put-spread": {
		Name:        "bear-put-spread",
		Description: "Buy Put at the strike, Sell Put one width lower",
		build: func(k, w float64) []models.Position {
			return []models.Position{
				leg(models.Long, models.Put, k, 1),
				leg(models.Short, models.Put, k-w, 1),
			}
		},
	},
	"iron-condor": {
		Name:        "iron-condor",
		Description: "Sell OTM Put + Call, Buy further OTM Put + Call",
		build: func(k, w float64) []models.Position {
			return []models.Position{
				leg(models.Long, models.Put, k-2*w, 1),
				leg(models.Short, models.Put, k-w, 1),
				leg(models.Short, models.Call, k+w, 1),
				leg(models.Long, models.Call, k+2*w, 1),
			}
		},
	},
	"butterfly": {
		Name:        "butterfly",
		Description: "Buy 1 ITM Call, Sell 2 ATM Calls, Buy 1 OTM Call",
		build: func(k, w float64) []models.Position {
			return []models.Position{
				leg(models.Long, models.Call, k-w, 1),
				leg(models.Short, models.Call, k, 2),
				leg(models.Long, models.Call, k+w, 1),
			}
		},
	},
	"ratio-spread": {
		Name:        "ratio-spread",
		Description: "Buy 1 Call at the strike, Sell 2 Calls one width higher",
		build: func(k, w float64) []models.Position {
			return []models.Position{
				leg(models.Long, models.Call, k, 1),
				leg(models.Short, models.Call, k+w, 2),
			}
		},
	},
}

// Templates returns every template sorted by name.
func Templates() []Template {
	out := make([]Template, 0, len(templates))
	for _, t := range templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the template with the given name.
func Lookup(name string) (Template, bool) {
	t, ok := templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Build creates the legs of the named strategy.
func Build(name string, params Params) ([]models.Position, error) {
	t, ok := Lookup(name)
	if !ok {
		return nil, apperrors.NewStrategyError(name, "build", apperrors.ErrUnknownStrategy)
	}
	if params.Strike <= 0 || math.IsNaN(params.Strike) || math.IsInf(params.Strike, 0) {
		return nil, apperrors.NewStrategyError(name, "build",
			apperrors.NewValidationError("strike", params.Strike, "must be positive"))
	}
	for _, p := range params.Premiums {
		if p < 0 {
			return nil, apperrors.NewStrategyError(name, "build",
				apperrors.NewValidationError("premium", p, "must not be negative"))
		}
	}
	return t.Build(params), nil
}

// Build creates the legs of the template. Parameters are assumed validated.
func (t Template) Build(params Params) []models.Position {
	width := params.Width
	if width <= 0 {
		width = math.Round(params.Strike*0.05*100) / 100
	}
	qty := params.Quantity
	if qty <= 0 {
		qty = 1
	}

	legs := t.build(params.Strike, width)
	for i := range legs {
		legs[i].Quantity *= qty
		legs[i].Premium = premiumAt(params.Premiums, i)
		if params.Short {
			legs[i] = legs[i].Mirror()
		}
	}
	return legs
}

// Legs returns the number of legs the template produces.
func (t Template) Legs() int {
	return len(t.build(100, 5))
}

func premiumAt(premiums []float64, i int) float64 {
	if len(premiums) == 0 {
		return 0
	}
	if i >= len(premiums) {
		return premiums[len(premiums)-1]
	}
	return premiums[i]
}

func leg(dir models.Direction, kind models.OptionKind, strike float64, qty int) models.Position {
	return models.NewPosition(kind, dir, strike, 0, qty)
}
