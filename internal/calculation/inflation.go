package calculation

import (
	"fmt"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	federalBracketRounding   = decimal.NewFromInt(25)
	federalDeductionRounding = decimal.NewFromInt(50)
	stateRounding            = decimal.NewFromInt(1)
)

// Inflate derives a profile for year by scaling every indexed amount of base
// by factor. Federal bracket thresholds round down to a multiple of $25, the
// federal standard deduction to $50, California amounts to whole dollars.
// Rates and non-indexed amounts (NIIT threshold, SALT cap, mortgage insurance
// phase-out, CA surtax threshold) are carried over unchanged. The result is
// validated like any other profile.
func Inflate(base domain.TaxYearProfile, year int, factor decimal.Decimal) (domain.TaxYearProfile, error) {
	if base.IsZero() {
		return domain.TaxYearProfile{}, fmt.Errorf("inflate: %w: base profile", domain.ErrMissingRequiredInput)
	}
	if !factor.IsPositive() {
		return domain.TaxYearProfile{}, fmt.Errorf("inflate: factor must be positive, got %s", factor)
	}

	p := base.Params()
	p.Year = year
	p.OrdinaryBrackets = scaleSchedule(p.OrdinaryBrackets, factor, federalBracketRounding)
	p.LongTermGainBrackets = scaleSchedule(p.LongTermGainBrackets, factor, federalBracketRounding)
	p.StandardDeduction = scaleDown(p.StandardDeduction, factor, federalDeductionRounding)
	p.StateBrackets = scaleSchedule(p.StateBrackets, factor, stateRounding)
	p.StateStandardDeduction = scaleDown(p.StateStandardDeduction, factor, stateRounding)

	profile, err := domain.NewTaxYearProfile(p)
	if err != nil {
		return domain.TaxYearProfile{}, fmt.Errorf("inflate %d -> %d by %s: %w", base.Year(), year, factor, err)
	}
	return profile, nil
}

func scaleSchedule(s domain.BracketSchedule, factor, step decimal.Decimal) domain.BracketSchedule {
	out := make(domain.BracketSchedule, len(s))
	for i, b := range s {
		out[i] = domain.Bracket{Threshold: scaleDown(b.Threshold, factor, step), Rate: b.Rate}
	}
	return out
}

// scaleDown multiplies v by factor and rounds down to a multiple of step.
func scaleDown(v, factor, step decimal.Decimal) decimal.Decimal {
	return v.Mul(factor).Div(step).Floor().Mul(step)
}
