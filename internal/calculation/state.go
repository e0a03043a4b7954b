package calculation

import (
	"github.com/rpgo/tax-estimator/internal/domain"
	money "github.com/rpgo/tax-estimator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// CALIFORNIA ASSUMPTIONS:
//
// 1. Every income type, capital gains included, goes through one schedule.
// 2. The itemized alternative is personal mortgage interest plus personal
//    property tax. State income tax is never deductible against itself.
// 3. The 1% surtax applies to taxable income above the threshold and is
//    independent of the federal NIIT.
// 4. CA SDI withheld on the W-2 counts as a state payment.

// StateCode is the only state computed.
const StateCode = "CA"

// StateInputs are the income streams and payments for the California return.
type StateInputs struct {
	Wages               decimal.Decimal
	InterestIncome      decimal.Decimal
	CapitalGains        decimal.Decimal
	StockOrdinaryIncome decimal.Decimal
	NetRentalIncome     decimal.Decimal
	MortgageInterest    decimal.Decimal
	PropertyTaxes       decimal.Decimal
	RentalFraction      decimal.Decimal
	TaxWithheld         decimal.Decimal
	DisabilityWithheld  decimal.Decimal
	EstimatedPayments   decimal.Decimal
}

// CalculateCalifornia mirrors the federal pipeline with the state schedule.
func CalculateCalifornia(profile domain.TaxYearProfile, in StateInputs) domain.StateResult {
	res := domain.StateResult{
		State:               StateCode,
		Wages:               in.Wages,
		InterestIncome:      in.InterestIncome,
		CapitalGains:        in.CapitalGains,
		StockOrdinaryIncome: in.StockOrdinaryIncome,
		NetRentalIncome:     in.NetRentalIncome,
		TaxWithheld:         in.TaxWithheld,
		DisabilityWithheld:  in.DisabilityWithheld,
		EstimatedPayments:   in.EstimatedPayments,
	}
	res.TotalIncome = decimal.Sum(in.Wages, in.InterestIncome, in.CapitalGains, in.StockOrdinaryIncome, in.NetRentalIncome)

	personal := personalShare(in.RentalFraction)
	res.StandardDeduction = profile.StateStandardDeduction()
	res.ItemizedDeduction = in.MortgageInterest.Add(in.PropertyTaxes).Mul(personal)
	res.Deduction = res.StandardDeduction
	res.DeductionLabel = domain.DeductionStandard
	switch {
	case res.ItemizedDeduction.GreaterThan(res.StandardDeduction):
		res.Deduction = res.ItemizedDeduction
		res.DeductionLabel = domain.DeductionItemized
	case res.ItemizedDeduction.IsPositive():
		res.DeductionLabel = domain.DeductionStandardExceeds
	}

	res.TaxableIncome = decimal.Max(res.TotalIncome.Sub(res.Deduction), decimal.Zero)
	res.TaxBeforeSurtax, res.Brackets = ApplyProgressive(res.TaxableIncome, profile.StateBrackets())
	res.Surtax = decimal.Max(res.TaxableIncome.Sub(profile.StateSurtaxThreshold()), decimal.Zero).Mul(profile.StateSurtaxRate())
	res.TotalTax = res.TaxBeforeSurtax.Add(res.Surtax)

	res.TotalPayments = decimal.Sum(res.TaxWithheld, res.DisabilityWithheld, res.EstimatedPayments)
	res.NetDue, res.Refund = settle(res.TotalTax, res.TotalPayments)
	res.EffectiveRate = money.Percent(res.TotalTax, res.TotalIncome)
	return res
}

// Combine totals the federal and state outcomes. The effective rate is total
// tax over federal AGI.
func Combine(federal domain.LiabilityResult, state domain.StateResult) domain.CombinedSummary {
	total := federal.TotalLiability.Add(state.TotalTax)
	withheld := federal.TotalPayments.Add(state.TotalPayments)
	return domain.CombinedSummary{
		FederalLiability: federal.TotalLiability,
		StateLiability:   state.TotalTax,
		TotalLiability:   total,
		FederalWithheld:  federal.TotalPayments,
		StateWithheld:    state.TotalPayments,
		TotalWithheld:    withheld,
		NetOwed:          total.Sub(withheld),
		EffectiveRate:    money.Percent(total, federal.AGI),
	}
}
