package payoff

import (
	"math"
	"sort"

	"options-payoff/internal/models"
)

// Price range returned when a portfolio has no valid legs.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 100000
)

// strikeOffsets clusters samples around every strike, where the payoff kinks.
var strikeOffsets = []float64{0.9, 0.95, 1, 1.05, 1.1}

// SamplerConfig controls how candidate prices are chosen.
type SamplerConfig struct {
	// FarMultiplier places the right-most sample at FarMultiplier * max(strike).
	FarMultiplier float64
	// IncludeLegBreakEvens adds each leg's own break-even (strike ± premium).
	IncludeLegBreakEvens bool
}

// DefaultSamplerConfig returns the sampling defaults.
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{
		FarMultiplier:        1.5,
		IncludeLegBreakEvens: true,
	}
}

// SamplePrices returns the candidate prices for the portfolio using the
// default sampling configuration.
func SamplePrices(portfolio []models.Position) []float64 {
	return DefaultSamplerConfig().Sample(portfolio)
}

// Sample returns an ascending list of distinct candidate prices: zero, a tight
// cluster around every valid strike, the far-right bound and optionally each
// leg's break-even. Payoff is linear between consecutive samples as long as no
// strike lies strictly between them, which the clustering guarantees.
func (c SamplerConfig) Sample(portfolio []models.Position) []float64 {
	legs := ValidLegs(portfolio)
	if len(legs) == 0 {
		return []float64{DefaultMinPrice, DefaultMaxPrice}
	}

	far := c.FarMultiplier
	if far <= 1 {
		far = DefaultSamplerConfig().FarMultiplier
	}

	prices := make([]float64, 0, len(legs)*7+2)
	prices = append(prices, 0)

	maxStrike := 0.0
	for _, p := range legs {
		for _, off := range strikeOffsets {
			prices = append(prices, p.Strike*off)
		}
		maxStrike = math.Max(maxStrike, p.Strike)

		if c.IncludeLegBreakEvens {
			if be, ok := legBreakEven(p); ok {
				prices = append(prices, be)
			}
		}
	}
	prices = append(prices, maxStrike*far)

	return sortedDistinct(prices)
}

// ChartPrices returns an evenly spaced grid of n prices over [lo, hi] merged
// with every strike inside the range, so kinks are drawn exactly.
func ChartPrices(lo, hi float64, n int, portfolio []models.Position) []float64 {
	if n < 2 {
		n = 2
	}
	if hi <= lo {
		hi = lo + 1
	}

	prices := make([]float64, 0, n+len(portfolio))
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		prices = append(prices, lo+step*float64(i))
	}
	for _, p := range ValidLegs(portfolio) {
		if p.Strike > lo && p.Strike < hi {
			prices = append(prices, p.Strike)
		}
	}
	return sortedDistinct(prices)
}

// DefaultDomain returns a display range that covers every strike and leg
// break-even with some margin on both sides.
func DefaultDomain(portfolio []models.Position) (lo, hi float64) {
	legs := ValidLegs(portfolio)
	if len(legs) == 0 {
		return DefaultMinPrice, DefaultMaxPrice
	}

	minStrike, maxStrike := math.Inf(1), 0.0
	maxBreakEven := 0.0
	for _, p := range legs {
		minStrike = math.Min(minStrike, p.Strike)
		maxStrike = math.Max(maxStrike, p.Strike)
		if be, ok := legBreakEven(p); ok {
			maxBreakEven = math.Max(maxBreakEven, be)
		}
	}

	lo = minStrike * 0.5
	hi = math.Max(maxStrike*1.5, maxBreakEven*1.1)
	return lo, hi
}

// legBreakEven is the price at which a single leg returns zero profit.
func legBreakEven(p models.Position) (float64, bool) {
	if p.IsCall() {
		return p.Strike + p.Premium, true
	}
	be := p.Strike - p.Premium
	if be < 0 {
		return 0, false
	}
	return be, true
}

// sortedDistinct sorts the finite values and drops repeats. Samples derived
// from huge strikes can overflow and are discarded.
func sortedDistinct(values []float64) []float64 {
	finite := values[:0]
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	sort.Float64s(finite)
	out := finite[:0]
	for i, v := range finite {
		if i > 0 && v == out[len(out)-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}
