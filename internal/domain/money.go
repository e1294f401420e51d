package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a formatted monetary string holds no digits
var ErrInvalidAmount = fmt.Errorf("%w: unparseable monetary amount", ErrInvalidRecord)

const currencySymbol = "R$"

var hundred = decimal.NewFromInt(100)

// FormatCurrency renders an amount in Brazilian Real notation with exactly two
// fractional digits: 1234.5 -> "R$ 1.234,50", -3 -> "-R$ 3,00"
func FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.Round(2).IsNegative() {
		b.WriteString("-")
	}
	b.WriteString(currencySymbol)
	b.WriteString(" ")
	b.WriteString(groupThousands(intPart))
	b.WriteString(",")
	b.WriteString(fracPart)
	return b.String()
}

// groupThousands inserts '.' every three digits counting from the right
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseCurrency reads back an amount produced by FormatCurrency (or by the price
// table). Every non-digit is dropped and the result is read in cents, so the
// round trip ParseCurrency(FormatCurrency(x)) == x holds to the cent.
// A leading '-' marks a negative amount.
func ParseCurrency(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)

	var digits strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	cents, err := decimal.NewFromString(digits.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, s, err)
	}

	amount := cents.Div(hundred)
	if strings.HasPrefix(trimmed, "-") {
		amount = amount.Neg()
	}
	return amount, nil
}

// FormatSignedPercent renders a percentage with one fractional digit and an
// explicit sign for non-negative values: 5 -> "+5.0%", -8 -> "-8.0%"
func FormatSignedPercent(percent decimal.Decimal) string {
	rounded := percent.Round(1)
	if rounded.IsNegative() {
		return rounded.StringFixed(1) + "%"
	}
	return "+" + rounded.Abs().StringFixed(1) + "%"
}

// FractionToPercent converts a signed fraction (0.05) into percent points (5)
func FractionToPercent(fraction decimal.Decimal) decimal.Decimal {
	return fraction.Mul(hundred)
}
