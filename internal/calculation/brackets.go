package calculation

import (
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// BRACKET ENGINE ASSUMPTIONS:
//
// 1. Ordinary income always fills the lowest brackets first. Long-term gains
//    are stacked above it regardless of when they were realized.
// 2. A bracket covers [threshold, next threshold); the top bracket is unbounded.
// 3. No rounding happens here. Callers round to cents when presenting.

// ApplyProgressive applies a marginal-rate schedule to income and returns the
// tax plus one detail row per bracket that received income.
func ApplyProgressive(income decimal.Decimal, schedule domain.BracketSchedule) (decimal.Decimal, []domain.BracketDetail) {
	return placeIncome(decimal.Zero, income, schedule)
}

// ApplyStacked taxes gains as if they sit on top of base income that already
// consumed the lower brackets. Brackets entirely below base receive nothing.
func ApplyStacked(base, gains decimal.Decimal, schedule domain.BracketSchedule) (decimal.Decimal, []domain.BracketDetail) {
	if base.IsNegative() {
		base = decimal.Zero
	}
	return placeIncome(base, gains, schedule)
}

// placeIncome distributes amount across the schedule starting at the stacking
// point start.
func placeIncome(start, amount decimal.Decimal, schedule domain.BracketSchedule) (decimal.Decimal, []domain.BracketDetail) {
	if !amount.IsPositive() || len(schedule) == 0 {
		return decimal.Zero, nil
	}

	top := start.Add(amount)
	totalTax := decimal.Zero
	var detail []domain.BracketDetail

	for i, bracket := range schedule {
		var ceiling decimal.Decimal
		bounded := i+1 < len(schedule)
		if bounded {
			ceiling = schedule[i+1].Threshold
			if !ceiling.GreaterThan(start) {
				continue
			}
		}

		lower := decimal.Max(bracket.Threshold, start)
		if !top.GreaterThan(lower) {
			break
		}
		upper := top
		if bounded {
			upper = decimal.Min(top, ceiling)
		}

		inBracket := upper.Sub(lower)
		tax := inBracket.Mul(bracket.Rate)
		totalTax = totalTax.Add(tax)
		detail = append(detail, domain.BracketDetail{
			Floor:   bracket.Threshold,
			Ceiling: ceiling,
			Rate:    bracket.Rate,
			Amount:  inBracket,
			Tax:     tax,
		})

		if !bounded || !top.GreaterThan(ceiling) {
			break
		}
	}

	return totalTax, detail
}

// MarginalRate returns the ordinary rate that applies to the next dollar of
// taxable income.
func MarginalRate(taxable decimal.Decimal, schedule domain.BracketSchedule) decimal.Decimal {
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	return schedule.MarginalRate(taxable)
}
