package payoff

import (
	"options-payoff/internal/models"
)

// LegRiskResult is the closed-form risk profile of a single leg.
type LegRiskResult struct {
	MaxGain      Bound   `json:"max_gain"`
	MaxLoss      Bound   `json:"max_loss"`
	BreakEven    float64 `json:"break_even"`
	HasBreakEven bool    `json:"has_break_even"`
}

// LegRisk returns max gain, max loss and break-even of one leg. A put's payoff
// is capped at price zero, so only calls can be unbounded.
func LegRisk(p models.Position) LegRiskResult {
	if !p.Valid() {
		return LegRiskResult{MaxGain: Finite(0), MaxLoss: Finite(0)}
	}

	qty := float64(p.Quantity)
	premium := p.Premium * qty
	be, hasBE := legBreakEven(p)
	res := LegRiskResult{BreakEven: be, HasBreakEven: hasBE}

	switch {
	case p.Kind == models.Call && p.Direction == models.Long:
		res.MaxGain = UnlimitedGain()
		res.MaxLoss = Finite(-premium)
	case p.Kind == models.Call:
		res.MaxGain = Finite(premium)
		res.MaxLoss = UnlimitedLoss()
	case p.Direction == models.Long:
		res.MaxGain = Finite((p.Strike - p.Premium) * qty)
		res.MaxLoss = Finite(-premium)
	default:
		res.MaxGain = Finite(premium)
		res.MaxLoss = Finite(-(p.Strike - p.Premium) * qty)
	}
	return res
}

// LegSummary pairs a leg with its risk profile.
type LegSummary struct {
	Position models.Position `json:"position"`
	Valid    bool            `json:"valid"`
	Risk     LegRiskResult   `json:"risk"`
}

// Summary is the full analysis of a portfolio snapshot.
type Summary struct {
	RiskReward
	NetPremium float64      `json:"net_premium"`
	Slope      float64      `json:"asymptotic_slope"`
	Legs       []LegSummary `json:"legs"`
	Ignored    int          `json:"ignored_legs"`
}

// Summarize runs the portfolio analysis and the per-leg analysis together.
func (a *Analyzer) Summarize(portfolio []models.Position) Summary {
	s := Summary{
		RiskReward: a.Analyze(portfolio),
		NetPremium: NetPremium(portfolio),
		Slope:      AsymptoticSlope(portfolio),
		Legs:       make([]LegSummary, 0, len(portfolio)),
	}
	for _, p := range portfolio {
		valid := p.Valid()
		if !valid {
			s.Ignored++
		}
		s.Legs = append(s.Legs, LegSummary{Position: p, Valid: valid, Risk: LegRisk(p)})
	}
	return s
}

// Summarize runs Analyzer.Summarize with the default configuration.
func Summarize(portfolio []models.Position) Summary {
	return defaultAnalyzer.Summarize(portfolio)
}
