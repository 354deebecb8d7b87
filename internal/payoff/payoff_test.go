package payoff

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"options-payoff/internal/models"
)

func longCall(strike, premium float64, qty int) models.Position {
	return models.NewPosition(models.Call, models.Long, strike, premium, qty)
}

func shortCall(strike, premium float64, qty int) models.Position {
	return models.NewPosition(models.Call, models.Short, strike, premium, qty)
}

func longPut(strike, premium float64, qty int) models.Position {
	return models.NewPosition(models.Put, models.Long, strike, premium, qty)
}

func shortPut(strike, premium float64, qty int) models.Position {
	return models.NewPosition(models.Put, models.Short, strike, premium, qty)
}

func TestPayoffAt_LongCallSignConvention(t *testing.T) {
	p := longCall(100, 10, 1)

	assert.Equal(t, -10.0, PayoffAt(80, p))
	assert.Equal(t, -10.0, PayoffAt(100, p))
	assert.Equal(t, 0.0, PayoffAt(110, p))
	assert.Equal(t, 10.0, PayoffAt(120, p))
}

func TestPayoffAt_Puts(t *testing.T) {
	tests := []struct {
		name  string
		pos   models.Position
		price float64
		want  float64
	}{
		{"long put deep ITM", longPut(100, 5, 1), 0, 95},
		{"long put at strike", longPut(100, 5, 1), 100, -5},
		{"long put OTM", longPut(100, 5, 1), 150, -5},
		{"short put ITM", shortPut(100, 5, 2), 90, -10},
		{"short put OTM", shortPut(100, 5, 2), 120, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PayoffAt(tt.price, tt.pos), 1e-9)
		})
	}
}

func TestPayoffAt_QuantityScales(t *testing.T) {
	one := longCall(100, 4, 1)
	three := one.WithQuantity(3)

	for _, price := range []float64{0, 50, 100, 104, 130} {
		assert.InDelta(t, 3*PayoffAt(price, one), PayoffAt(price, three), 1e-9)
	}
}

func TestPayoffAt_InvalidLegsContributeZero(t *testing.T) {
	invalid := []models.Position{
		longCall(0, 5, 1),
		longCall(-10, 5, 1),
		shortPut(100, -1, 1),
		longCall(100, 5, 0),
		longCall(math.NaN(), 5, 1),
		shortCall(100, math.Inf(1), 1),
	}
	for _, p := range invalid {
		for _, price := range []float64{0, 50, 100, 1000} {
			assert.Equal(t, 0.0, PayoffAt(price, p), "leg %s at %v", p, price)
		}
	}
}

func TestPortfolioPayoffAt_SumsValidLegs(t *testing.T) {
	portfolio := []models.Position{
		longCall(100, 8, 1),
		shortCall(110, 3, 1),
		longCall(0, 5, 1), // mid-edit row
	}

	assert.InDelta(t, -5, PortfolioPayoffAt(90, portfolio), 1e-9)
	assert.InDelta(t, 0, PortfolioPayoffAt(105, portfolio), 1e-9)
	assert.InDelta(t, 5, PortfolioPayoffAt(130, portfolio), 1e-9)
	assert.Equal(t, 0.0, PortfolioPayoffAt(100, nil))
}

func TestCurve(t *testing.T) {
	portfolio := []models.Position{longCall(100, 5, 1)}
	points := Curve([]float64{90, 100, 110}, portfolio)

	require.Len(t, points, 3)
	assert.Equal(t, Point{Price: 90, Value: -5}, points[0])
	assert.Equal(t, Point{Price: 110, Value: 5}, points[2])

	leg := LegCurve([]float64{90, 110}, shortCall(100, 5, 1))
	assert.Equal(t, []Point{{90, 5}, {110, -5}}, leg)
}

func TestNetPremium(t *testing.T) {
	portfolio := []models.Position{
		longCall(100, 8, 1),
		shortCall(110, 3, 2),
		shortPut(0, 100, 1), // ignored
	}
	assert.InDelta(t, -2, NetPremium(portfolio), 1e-9)
}

func TestSamplePrices_Empty(t *testing.T) {
	assert.Equal(t, []float64{0, 100000}, SamplePrices(nil))
	assert.Equal(t, []float64{0, 100000}, SamplePrices([]models.Position{longCall(0, 1, 1)}))
}

func TestSamplePrices_ClustersAroundStrikes(t *testing.T) {
	prices := SamplePrices([]models.Position{longCall(100, 5, 1)})

	for _, want := range []float64{0, 90, 95, 100, 105, 110, 150} {
		assert.True(t, containsWithin(prices, want, 1e-9), "missing sample %v in %v", want, prices)
	}
	for i := 1; i < len(prices); i++ {
		assert.Less(t, prices[i-1], prices[i], "samples must be strictly ascending")
	}
}

func TestSamplePrices_IncludesLegBreakEvens(t *testing.T) {
	prices := SamplePrices([]models.Position{longPut(100, 7, 1), longCall(200, 65, 1)})

	assert.True(t, containsWithin(prices, 93, 1e-9))
	assert.True(t, containsWithin(prices, 265, 1e-9))
	assert.True(t, containsWithin(prices, 300, 1e-9))

	noBE := SamplerConfig{FarMultiplier: 2}.Sample([]models.Position{longPut(100, 7, 1)})
	assert.False(t, containsWithin(noBE, 93, 1e-9))
	assert.Equal(t, 200.0, noBE[len(noBE)-1])
}

func TestChartPrices(t *testing.T) {
	portfolio := []models.Position{longCall(103, 5, 1)}
	prices := ChartPrices(50, 150, 11, portfolio)

	assert.Equal(t, 50.0, prices[0])
	assert.Equal(t, 150.0, prices[len(prices)-1])
	assert.Contains(t, prices, 103.0)
	assert.Len(t, prices, 12)
}

func TestDefaultDomain(t *testing.T) {
	lo, hi := DefaultDomain([]models.Position{longCall(100, 5, 1), shortPut(80, 2, 1)})
	assert.Equal(t, 40.0, lo)
	assert.Equal(t, 150.0, hi)

	lo, hi = DefaultDomain(nil)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 100000.0, hi)
}
