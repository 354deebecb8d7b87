package payoff

import (
	"math"
	"sort"

	"options-payoff/internal/models"
)

// DefaultBreakEvenTolerance is the distance under which two break-evens are
// considered the same price.
const DefaultBreakEvenTolerance = 0.01

// RiskReward is the risk profile of a portfolio at expiration.
type RiskReward struct {
	MaxGain Bound `json:"max_gain"`
	MaxLoss Bound `json:"max_loss"`
	// BreakEvens is ascending and never nil; empty means there is none.
	BreakEvens []float64 `json:"break_evens"`
}

// AnalyzerConfig controls the risk/reward analysis.
type AnalyzerConfig struct {
	Sampler SamplerConfig
	// Tolerance is the absolute distance within which break-evens are merged.
	Tolerance float64
	// Precision is the number of decimals break-evens are rounded to; <= 0 keeps
	// the interpolated value.
	Precision int
}

// DefaultAnalyzerConfig returns the analysis defaults.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		Sampler:   DefaultSamplerConfig(),
		Tolerance: DefaultBreakEvenTolerance,
		Precision: 2,
	}
}

// Analyzer derives max gain, max loss and break-evens. It holds only its
// configuration and is safe for concurrent use.
type Analyzer struct {
	cfg AnalyzerConfig
}

// NewAnalyzer creates an analyzer. Non-positive tolerances fall back to the default.
func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	if cfg.Tolerance <= 0 || math.IsNaN(cfg.Tolerance) {
		cfg.Tolerance = DefaultBreakEvenTolerance
	}
	return &Analyzer{cfg: cfg}
}

var defaultAnalyzer = NewAnalyzer(DefaultAnalyzerConfig())

// Analyze computes the risk/reward profile with the default configuration.
func Analyze(portfolio []models.Position) RiskReward {
	return defaultAnalyzer.Analyze(portfolio)
}

// Config returns the analyzer configuration.
func (a *Analyzer) Config() AnalyzerConfig {
	return a.cfg
}

// Analyze computes the risk/reward profile of the portfolio.
//
// Extremes of a piecewise-linear payoff lie at a strike, at zero or at
// infinity. Strikes and zero are always sampled, so the sampled max/min is
// exact whenever the tail beyond the highest strike is flat; a sloped tail is
// reported as unbounded instead.
func (a *Analyzer) Analyze(portfolio []models.Position) RiskReward {
	legs := ValidLegs(portfolio)
	if len(legs) == 0 {
		return RiskReward{
			MaxGain:    Finite(0),
			MaxLoss:    Finite(0),
			BreakEvens: []float64{},
		}
	}

	slope := AsymptoticSlope(legs)
	points := Curve(a.cfg.Sampler.Sample(legs), legs)
	points = appendTailRoot(points, slope)

	maxV, minV := points[0].Value, points[0].Value
	for _, pt := range points[1:] {
		maxV = math.Max(maxV, pt.Value)
		minV = math.Min(minV, pt.Value)
	}

	result := RiskReward{
		MaxGain:    Finite(maxV),
		MaxLoss:    Finite(minV),
		BreakEvens: a.breakEvens(points),
	}
	if slope > 0 {
		result.MaxGain = UnlimitedGain()
	}
	if slope < 0 {
		result.MaxLoss = UnlimitedLoss()
	}
	return result
}

// AsymptoticSlope returns d(payoff)/d(price) above the highest strike: the net
// number of long calls. Puts expire worthless there and add nothing.
func AsymptoticSlope(portfolio []models.Position) float64 {
	var slope float64
	for _, p := range portfolio {
		if !p.Valid() || !p.IsCall() {
			continue
		}
		if p.IsLong() {
			slope += float64(p.Quantity)
		} else {
			slope -= float64(p.Quantity)
		}
	}
	return slope
}

// appendTailRoot adds the zero of the linear tail when it lies beyond the last
// sample, so a crossing past the far bound is still bracketed. The tail is
// exactly linear, so the root's value is zero by construction.
func appendTailRoot(points []Point, slope float64) []Point {
	last := points[len(points)-1]
	if slope == 0 || last.Value == 0 || (last.Value > 0) == (slope > 0) {
		return points
	}
	root := last.Price - last.Value/slope
	return append(points, Point{Price: root, Value: 0})
}

func (a *Analyzer) breakEvens(points []Point) []float64 {
	found := []float64{}
	for i := 0; i+1 < len(points); i++ {
		p1, p2 := points[i], points[i+1]
		if p1.Value*p2.Value > 0 {
			continue
		}
		x := a.round(interpolateZero(p1, p2))
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		if !containsWithin(found, x, a.cfg.Tolerance) {
			found = append(found, x)
		}
	}
	sort.Float64s(found)
	return found
}

// interpolateZero returns where the segment p1-p2 crosses zero. A flat
// segment yields its left end.
func interpolateZero(p1, p2 Point) float64 {
	if p1.Value == p2.Value {
		return p1.Price
	}
	return p1.Price - p1.Value*(p2.Price-p1.Price)/(p2.Value-p1.Value)
}

func (a *Analyzer) round(x float64) float64 {
	if a.cfg.Precision <= 0 {
		return x
	}
	scale := math.Pow(10, float64(a.cfg.Precision))
	if math.IsInf(x*scale, 0) {
		return x
	}
	return math.Round(x*scale) / scale
}

func containsWithin(values []float64, x, tol float64) bool {
	for _, v := range values {
		if math.Abs(v-x) < tol {
			return true
		}
	}
	return false
}
