package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatEUR renders an amount as a two-decimal Dutch-locale euro string,
// e.g. "€ 1.234,56". Internal arithmetic stays in decimal; this is display
// only.
func FormatEUR(amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")

	// Insert dots as thousand separators.
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if negative {
		sign = "-"
	}

	return "€ " + sign + b.String() + "," + frac
}
