package calculation

import (
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// ItemizedInputs are the full-property amounts feeding Schedule A. The
// rental fraction is removed here; callers pass unscaled figures.
type ItemizedInputs struct {
	MortgageInterest        decimal.Decimal
	PropertyTaxes           decimal.Decimal
	MortgageInsurance       decimal.Decimal
	StateTaxWithheld        decimal.Decimal
	StateDisabilityWithheld decimal.Decimal
	RentalFraction          decimal.Decimal
	AGI                     decimal.Decimal
}

// personalShare returns 1 - rental fraction, with the fraction clamped to [0,1].
func personalShare(rentalFraction decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	rf := decimal.Min(decimal.Max(rentalFraction, decimal.Zero), one)
	return one.Sub(rf)
}

// CalculateItemized computes the itemized deduction components for the
// personal-use share of a home. It never compares the total against the
// standard deduction.
func CalculateItemized(profile domain.TaxYearProfile, in ItemizedInputs) domain.DeductionResult {
	personal := personalShare(in.RentalFraction)

	interest := in.MortgageInterest.Mul(personal)

	saltUncapped := decimal.Sum(in.StateTaxWithheld, in.StateDisabilityWithheld, in.PropertyTaxes.Mul(personal))
	salt := decimal.Min(saltUncapped, profile.SALTCap())

	insuranceRaw := in.MortgageInsurance.Mul(personal)
	insurance := phaseOut(insuranceRaw, in.AGI, profile.MortgageInsurancePhaseOutStart(), profile.MortgageInsurancePhaseOutWidth())

	return domain.DeductionResult{
		MortgageInterest:     interest,
		SALTUncapped:         saltUncapped,
		SALT:                 salt,
		SALTCap:              profile.SALTCap(),
		MortgageInsurance:    insurance,
		MortgageInsuranceRaw: insuranceRaw,
		Total:                decimal.Sum(interest, salt, insurance),
	}
}

// phaseOut reduces amount linearly to zero as agi moves across
// [start, start+width]. A zero width is a hard cutoff at start.
func phaseOut(amount, agi, start, width decimal.Decimal) decimal.Decimal {
	if !agi.GreaterThan(start) {
		return amount
	}
	end := start.Add(width)
	if !agi.LessThan(end) || !width.IsPositive() {
		return decimal.Zero
	}
	remaining := end.Sub(agi).Div(width)
	return amount.Mul(remaining)
}
