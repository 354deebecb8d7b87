package cli

import (
	"fmt"
	"strings"

	"options-payoff/internal/payoff"
)

// FormatMoney formats an amount with two decimals, thousands separators and
// an optional currency symbol, e.g. "-$1,234.50".
func FormatMoney(amount float64, symbol string) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	intPart, decPart, _ := strings.Cut(str, ".")

	result := symbol + groupThousands(intPart) + "." + decPart
	if negative && strings.Trim(intPart+decPart, "0") != "" {
		result = "-" + result
	}
	return result
}

// groupThousands inserts a comma between every group of three digits.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPnL formats P&L with sign.
func FormatPnL(pnl float64, symbol string) string {
	formatted := FormatMoney(pnl, symbol)
	if pnl > 0 && formatted != FormatMoney(0, symbol) {
		return "+" + formatted
	}
	return formatted
}

// FormatBound formats a max gain or max loss figure.
func FormatBound(b payoff.Bound, symbol string) string {
	switch b.Kind {
	case payoff.UnboundedAbove:
		return "Unlimited"
	case payoff.UnboundedBelow:
		return "-Unlimited"
	}
	return FormatMoney(b.Value, symbol)
}

// FormatPrice formats an underlying price.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f", price)
}

// FormatBreakEvens formats a list of break-even prices.
func FormatBreakEvens(prices []float64) string {
	if len(prices) == 0 {
		return "none"
	}
	parts := make([]string, len(prices))
	for i, p := range prices {
		parts[i] = FormatPrice(p)
	}
	return strings.Join(parts, ", ")
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
