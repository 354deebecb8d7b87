package cli

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"options-payoff/internal/payoff"
)

// For any amount, FormatMoney should:
// 1. Start with the symbol (or "-" and the symbol for negative amounts)
// 2. Have exactly 2 decimal places
// 3. Group the integer part in threes
// 4. Preserve the numeric value when parsed back
func TestProperty_MoneyFormatting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	grouped := regexp.MustCompile(`^\d{1,3}(,\d{3})*$`)

	properties.Property("FormatMoney produces grouped format", prop.ForAll(
		func(amount float64) bool {
			formatted := FormatMoney(amount, "$")

			if !strings.HasPrefix(strings.TrimPrefix(formatted, "-"), "$") {
				t.Logf("Expected $ prefix for %f, got %s", amount, formatted)
				return false
			}

			intPart, decPart, ok := strings.Cut(strings.TrimPrefix(strings.TrimPrefix(formatted, "-"), "$"), ".")
			if !ok || len(decPart) != 2 {
				t.Logf("Expected 2 decimal places for %f, got %s", amount, formatted)
				return false
			}
			if !grouped.MatchString(intPart) {
				t.Logf("Invalid grouping for %f: %s", amount, formatted)
				return false
			}
			return true
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.Property("FormatMoney preserves value", prop.ForAll(
		func(amount float64) bool {
			parsed := parseMoney(FormatMoney(amount, "$"))
			rounded := math.Round(amount*100) / 100
			if math.Abs(parsed-rounded) > 0.01 {
				t.Logf("Value not preserved: original=%f, parsed=%f", amount, parsed)
				return false
			}
			return true
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("FormatPnL signs non-zero amounts", prop.ForAll(
		func(amount float64) bool {
			formatted := FormatPnL(amount, "")
			switch {
			case math.Round(amount*100) == 0:
				return formatted == "0.00"
			case amount > 0:
				return strings.HasPrefix(formatted, "+")
			default:
				return strings.HasPrefix(formatted, "-")
			}
		},
		gen.Float64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}

func parseMoney(s string) float64 {
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, _ := strconv.ParseFloat(s, 64)
	if negative {
		v = -v
	}
	return v
}

func TestFormatMoneyExamples(t *testing.T) {
	testCases := []struct {
		amount   float64
		symbol   string
		expected string
	}{
		{0, "", "0.00"},
		{1, "$", "$1.00"},
		{999.999, "$", "$1,000.00"},
		{1000, "₹", "₹1,000.00"},
		{100000, "", "100,000.00"},
		{1234567.5, "$", "$1,234,567.50"},
		{-1234.56, "$", "-$1,234.56"},
		{-0.001, "$", "$0.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			result := FormatMoney(tc.amount, tc.symbol)
			if result != tc.expected {
				t.Errorf("FormatMoney(%f) = %s, want %s", tc.amount, result, tc.expected)
			}
		})
	}
}

func TestFormatBoundExamples(t *testing.T) {
	testCases := []struct {
		bound    payoff.Bound
		expected string
	}{
		{payoff.Finite(5), "5.00"},
		{payoff.Finite(-5), "-5.00"},
		{payoff.UnlimitedGain(), "Unlimited"},
		{payoff.UnlimitedLoss(), "-Unlimited"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			if got := FormatBound(tc.bound, ""); got != tc.expected {
				t.Errorf("FormatBound(%v) = %s, want %s", tc.bound, got, tc.expected)
			}
		})
	}
}

func TestFormatBreakEvens(t *testing.T) {
	if got := FormatBreakEvens(nil); got != "none" {
		t.Errorf("FormatBreakEvens(nil) = %s", got)
	}
	if got := FormatBreakEvens([]float64{96, 105.5}); got != "96.00, 105.50" {
		t.Errorf("FormatBreakEvens = %s", got)
	}
}
