package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with full decimal precision. Rounding to
// cents only happens when it is rendered.
type Money struct {
	decimal.Decimal
}

// New wraps a decimal.Decimal
func New(d decimal.Decimal) Money {
	return Money{d}
}

// NewFromString parses an amount such as "1234.56", "$1,234.56" or "-$1,234.56"
func NewFromString(value string) (Money, error) {
	cleaned := strings.TrimSpace(value)
	sign := ""
	if rest, ok := strings.CutPrefix(cleaned, "-"); ok {
		sign, cleaned = "-", rest
	}
	cleaned = strings.ReplaceAll(strings.TrimPrefix(cleaned, "$"), ",", "")
	d, err := decimal.NewFromString(sign + cleaned)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// String returns the amount fixed to two decimals without grouping
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Grouped returns the amount with thousands separators, e.g. "-16,914.00"
func (m Money) Grouped() string {
	fixed := m.Decimal.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if m.Decimal.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	lead := len(whole) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(whole[:lead])
	for i := lead; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// Format renders the amount as "$1,234.56", with a leading minus for negatives
func (m Money) Format() string {
	g := m.Grouped()
	if strings.HasPrefix(g, "-") {
		return "-$" + g[1:]
	}
	return "$" + g
}

// Percent returns part/whole*100, or zero when whole is not positive
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100))
}
