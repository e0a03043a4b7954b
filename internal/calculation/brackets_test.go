package calculation

import (
	"testing"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mustProfile(t *testing.T, year int, status domain.FilingStatus) domain.TaxYearProfile {
	t.Helper()
	p, err := ProfileFor(year, status)
	require.NoError(t, err)
	return p
}

func assertMoney(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, expected, actual.StringFixed(2), msgAndArgs...)
}

func TestApplyProgressive(t *testing.T) {
	single := mustProfile(t, 2025, domain.Single).OrdinaryBrackets()

	tests := []struct {
		name        string
		income      string
		expectedTax string
		rows        int
		description string
	}{
		{
			name:        "Scenario 1",
			income:      "100000",
			expectedTax: "16914.00",
			rows:        3,
			description: "11925 at 10%, 36550 at 12%, 51525 at 22%",
		},
		{
			name:        "W-2 only after standard deduction",
			income:      "135000",
			expectedTax: "25247.00",
			rows:        4,
			description: "$150,000 wages less $15,000 standard deduction",
		},
		{
			name:        "First bracket only",
			income:      "10000",
			expectedTax: "1000.00",
			rows:        1,
			description: "Income entirely in the 10% bracket",
		},
		{
			name:        "Exactly at a threshold",
			income:      "11925",
			expectedTax: "1192.50",
			rows:        1,
			description: "A threshold amount stays in the lower bracket",
		},
		{
			name:        "Top bracket",
			income:      "1000000",
			expectedTax: "327020.25",
			rows:        7,
			description: "Income reaching the unbounded 37% bracket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, detail := ApplyProgressive(d(tt.income), single)
			assertMoney(t, tt.expectedTax, tax, tt.description)
			assert.Len(t, detail, tt.rows)

			sum := decimal.Zero
			placed := decimal.Zero
			for _, row := range detail {
				sum = sum.Add(row.Tax)
				placed = placed.Add(row.Amount)
			}
			assert.True(t, sum.Equal(tax), "bracket detail must add up to the tax")
			assert.True(t, placed.Equal(d(tt.income)), "every dollar lands in exactly one bracket")
		})
	}
}

func TestApplyProgressiveNonPositive(t *testing.T) {
	schedule := mustProfile(t, 2025, domain.Single).OrdinaryBrackets()
	for _, income := range []string{"0", "-1", "-250000"} {
		tax, detail := ApplyProgressive(d(income), schedule)
		assert.True(t, tax.IsZero(), income)
		assert.Nil(t, detail, income)
	}
}

func TestApplyProgressiveContinuousAndMonotonic(t *testing.T) {
	schedule := mustProfile(t, 2025, domain.MarriedFilingJointly).OrdinaryBrackets()
	step := d("0.01")

	for _, b := range schedule[1:] {
		below, _ := ApplyProgressive(b.Threshold.Sub(step), schedule)
		at, _ := ApplyProgressive(b.Threshold, schedule)
		above, _ := ApplyProgressive(b.Threshold.Add(step), schedule)
		assert.True(t, below.LessThanOrEqual(at) && at.LessThanOrEqual(above), "monotonic around %s", b.Threshold)
		assert.True(t, above.Sub(below).LessThanOrEqual(step.Mul(d("0.74"))), "no cliff at %s", b.Threshold)
	}

	prev := decimal.Zero
	for income := int64(0); income <= 1000000; income += 7919 {
		tax, _ := ApplyProgressive(decimal.NewFromInt(income), schedule)
		assert.True(t, tax.GreaterThanOrEqual(prev), "tax fell at %d", income)
		prev = tax
	}
}

func TestApplyStacked(t *testing.T) {
	gains := mustProfile(t, 2025, domain.Single).LongTermGainBrackets()

	tests := []struct {
		name        string
		base        string
		amount      string
		expectedTax string
		description string
	}{
		{
			name:        "Scenario 2",
			base:        "100000",
			amount:      "50000",
			expectedTax: "7500.00",
			description: "Ordinary income already fills the 0% band, so all gains pay 15%",
		},
		{
			name:        "Straddles the 0% band",
			base:        "40000",
			amount:      "20000",
			expectedTax: "1747.50",
			description: "8350 at 0%, 11650 at 15%",
		},
		{
			name:        "Inside the 0% band",
			base:        "10000",
			amount:      "20000",
			expectedTax: "0.00",
			description: "Gains that fit under 48350 are untaxed",
		},
		{
			name:        "Reaches 20%",
			base:        "500000",
			amount:      "100000",
			expectedTax: "18330.00",
			description: "33400 at 15% then 66600 at 20%",
		},
		{
			name:        "Negative base",
			base:        "-5000",
			amount:      "50000",
			expectedTax: "247.50",
			description: "A negative stacking point is treated as zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, _ := ApplyStacked(d(tt.base), d(tt.amount), gains)
			assertMoney(t, tt.expectedTax, tax, tt.description)
		})
	}
}

func TestApplyStackedInvariants(t *testing.T) {
	schedule := mustProfile(t, 2024, domain.HeadOfHousehold).LongTermGainBrackets()

	for _, base := range []string{"0", "63000", "1000000"} {
		tax, detail := ApplyStacked(d(base), decimal.Zero, schedule)
		assert.True(t, tax.IsZero())
		assert.Nil(t, detail)
	}

	for _, y := range []string{"1", "48350", "63000.01", "600000"} {
		stacked, stackedDetail := ApplyStacked(decimal.Zero, d(y), schedule)
		plain, plainDetail := ApplyProgressive(d(y), schedule)
		assert.True(t, stacked.Equal(plain), y)
		assert.Equal(t, len(plainDetail), len(stackedDetail), y)
	}
}

func TestApplyStackedSkipsFilledBrackets(t *testing.T) {
	gains := mustProfile(t, 2025, domain.Single).LongTermGainBrackets()
	_, detail := ApplyStacked(d("100000"), d("50000"), gains)
	require.Len(t, detail, 1)
	assert.True(t, detail[0].Rate.Equal(d("0.15")))
	assert.True(t, detail[0].Amount.Equal(d("50000")))
}

func TestMarginalRate(t *testing.T) {
	schedule := mustProfile(t, 2025, domain.Single).OrdinaryBrackets()
	assert.True(t, MarginalRate(d("-10"), schedule).Equal(d("0.10")))
	assert.True(t, MarginalRate(d("100000"), schedule).Equal(d("0.22")))
	assert.True(t, MarginalRate(d("700000"), schedule).Equal(d("0.37")))
}
