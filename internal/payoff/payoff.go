// Package payoff evaluates expiration payoffs of option portfolios and derives
// their risk/reward profile: maximum gain, maximum loss and break-even prices.
//
// Every function in this package is a pure function of its input snapshot.
// Invalid legs (see models.Position.Valid) are neutralised instead of reported,
// so callers may pass half-edited portfolios at any time.
package payoff

import (
	"math"

	"options-payoff/internal/models"
)

// Point is one (price, profit) sample of a payoff curve.
type Point struct {
	Price float64 `json:"price"`
	Value float64 `json:"value"`
}

// Intrinsic returns the exercise value of a leg at the given underlying price,
// per unit and ignoring premium.
func Intrinsic(price float64, p models.Position) float64 {
	if p.IsCall() {
		return math.Max(0, price-p.Strike)
	}
	return math.Max(0, p.Strike-price)
}

// PayoffAt returns the profit of a single leg at expiration for the given
// underlying price. Invalid legs contribute exactly zero.
func PayoffAt(price float64, p models.Position) float64 {
	if !p.Valid() {
		return 0
	}
	intrinsic := Intrinsic(price, p)

	var perUnit float64
	if p.IsLong() {
		perUnit = intrinsic - p.Premium
	} else {
		perUnit = p.Premium - intrinsic
	}
	return perUnit * float64(p.Quantity)
}

// PortfolioPayoffAt returns the summed profit of all valid legs.
func PortfolioPayoffAt(price float64, portfolio []models.Position) float64 {
	var total float64
	for _, p := range portfolio {
		if !p.Valid() {
			continue
		}
		total += PayoffAt(price, p)
	}
	return total
}

// Curve evaluates the portfolio at each price.
func Curve(prices []float64, portfolio []models.Position) []Point {
	points := make([]Point, len(prices))
	for i, price := range prices {
		points[i] = Point{Price: price, Value: PortfolioPayoffAt(price, portfolio)}
	}
	return points
}

// LegCurve evaluates a single leg at each price.
func LegCurve(prices []float64, p models.Position) []Point {
	points := make([]Point, len(prices))
	for i, price := range prices {
		points[i] = Point{Price: price, Value: PayoffAt(price, p)}
	}
	return points
}

// NetPremium returns the premium collected minus the premium paid across the
// valid legs. A positive value is a net credit.
func NetPremium(portfolio []models.Position) float64 {
	var net float64
	for _, p := range portfolio {
		if !p.Valid() {
			continue
		}
		amount := p.Premium * float64(p.Quantity)
		if p.Direction == models.Short {
			net += amount
		} else {
			net -= amount
		}
	}
	return net
}

// ValidLegs returns the legs that take part in calculations.
func ValidLegs(portfolio []models.Position) []models.Position {
	valid := make([]models.Position, 0, len(portfolio))
	for _, p := range portfolio {
		if p.Valid() {
			valid = append(valid, p)
		}
	}
	return valid
}
