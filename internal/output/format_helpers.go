package output

import (
	"fmt"

	money "github.com/rpgo/tax-estimator/pkg/decimal"
	"github.com/shopspring/decimal"
)

const (
	labelWidth  = 44
	amountWidth = 14
	ruleWidth   = 80
)

var hundredPct = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as USD currency with 2 decimals and
// thousands separators.
func FormatCurrency(amount decimal.Decimal) string { return money.New(amount).Format() }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate renders a fractional rate such as 0.093 as "9.3%".
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(hundredPct).StringFixed(1) + "%"
}

// FormatAmount right-aligns an amount in the report's currency column.
func FormatAmount(amount decimal.Decimal) string {
	return fmt.Sprintf("$%*s", amountWidth, money.New(amount).Grouped())
}

// FormatCredit renders a payment or refund in parentheses, aligned with
// FormatAmount.
func FormatCredit(amount decimal.Decimal) string {
	return fmt.Sprintf("($%*s)", amountWidth-1, money.New(amount).Grouped())
}
