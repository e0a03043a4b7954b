package calculation

import (
	"fmt"

	"github.com/rpgo/tax-estimator/internal/domain"
	money "github.com/rpgo/tax-estimator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// LIABILITY ASSUMPTIONS:
//
// 1. Short-term gains, ESPP ordinary income, interest and net rental income
//    (losses included) are ordinary income.
// 2. The deduction reduces ordinary income first; any excess reduces
//    long-term gains, never below zero.
// 3. Net investment income counts rental income only when positive.
// 4. No AMT, credits or carryovers.

// LiabilityInputs are the pre-computed income streams for one federal return.
// Itemized is nil when there is nothing to itemize.
type LiabilityInputs struct {
	Wages             decimal.Decimal
	WagesReported     bool
	InterestIncome    decimal.Decimal
	Gains             domain.CapitalGainSummary
	Rental            *domain.RentalResult
	Itemized          *ItemizedInputs
	FederalWithheld   decimal.Decimal
	EstimatedPayments decimal.Decimal
	StockTaxWithheld  decimal.Decimal
	Notes             []domain.Note
}

// CalculateLiability runs the federal pipeline: income, AGI, deduction,
// ordinary and stacked long-term gain tax, NIIT, then payments.
func CalculateLiability(profile domain.TaxYearProfile, in LiabilityInputs) (domain.LiabilityResult, error) {
	if profile.IsZero() {
		return domain.LiabilityResult{}, fmt.Errorf("federal liability: %w: tax year and filing status", domain.ErrMissingRequiredInput)
	}
	if !in.WagesReported {
		return domain.LiabilityResult{}, fmt.Errorf("federal liability: %w: W-2 wages", domain.ErrMissingRequiredInput)
	}
	if in.Wages.IsNegative() {
		return domain.LiabilityResult{}, fmt.Errorf("federal liability: wages: %w", domain.ErrNegativeAmount)
	}

	res := domain.LiabilityResult{
		TaxYear:           profile.Year(),
		FilingStatus:      profile.FilingStatus(),
		Wages:             in.Wages,
		InterestIncome:    in.InterestIncome,
		FederalWithheld:   in.FederalWithheld,
		EstimatedPayments: in.EstimatedPayments,
		StockTaxWithheld:  in.StockTaxWithheld,
		Notes:             append([]domain.Note(nil), in.Notes...),
	}

	// 1. equity and brokerage
	res.StockOrdinaryIncome = in.Gains.StockOrdinary
	res.ShortTermGains = in.Gains.ShortTerm.TaxableGain
	res.LongTermGains = in.Gains.LongTerm.TaxableGain
	if in.Rental != nil {
		res.NetRentalIncome = in.Rental.NetIncome
	}

	// 2-3. ordinary income and AGI
	res.TotalOrdinaryIncome = decimal.Sum(res.Wages, res.StockOrdinaryIncome, res.ShortTermGains,
		res.InterestIncome, res.NetRentalIncome)
	res.AGI = res.TotalOrdinaryIncome.Add(res.LongTermGains)

	// 4. deduction
	res.StandardDeduction = profile.StandardDeduction()
	res.Deduction = res.StandardDeduction
	res.DeductionLabel = domain.DeductionStandard
	if in.Itemized != nil {
		items := *in.Itemized
		items.AGI = res.AGI
		itemized := CalculateItemized(profile, items)
		res.Itemized = &itemized
		if itemized.Total.GreaterThan(res.StandardDeduction) {
			res.Deduction = itemized.Total
			res.DeductionLabel = domain.DeductionItemized
		} else {
			res.DeductionLabel = domain.DeductionStandardExceeds
		}
	}

	// 5. ordinary income absorbs the deduction first
	res.TaxableOrdinaryIncome = res.TotalOrdinaryIncome.Sub(res.Deduction)
	excess := decimal.Zero
	if res.TaxableOrdinaryIncome.IsNegative() {
		excess = res.TaxableOrdinaryIncome.Neg()
		res.TaxableOrdinaryIncome = decimal.Zero
	}
	res.TaxableLongTermGains = decimal.Max(res.LongTermGains.Sub(excess), decimal.Zero)

	// 6. brackets
	res.OrdinaryTax, res.OrdinaryBrackets = ApplyProgressive(res.TaxableOrdinaryIncome, profile.OrdinaryBrackets())
	res.LongTermGainTax, res.LongTermBrackets = ApplyStacked(res.TaxableOrdinaryIncome, res.TaxableLongTermGains, profile.LongTermGainBrackets())

	// 7. NIIT
	res.NetInvestmentIncome = decimal.Max(decimal.Sum(res.LongTermGains, res.ShortTermGains, res.InterestIncome,
		decimal.Max(res.NetRentalIncome, decimal.Zero)), decimal.Zero)
	res.NIIT = NIIT(res.AGI, res.NetInvestmentIncome, profile.NIITThreshold(), profile.NIITRate())

	// 8. total
	res.TotalLiability = decimal.Sum(res.OrdinaryTax, res.LongTermGainTax, res.NIIT)

	// 9. payments
	res.TotalPayments = decimal.Sum(res.FederalWithheld, res.EstimatedPayments, res.StockTaxWithheld)
	res.NetDue, res.Refund = settle(res.TotalLiability, res.TotalPayments)
	res.EffectiveRate = money.Percent(res.TotalLiability, res.AGI)

	return res, nil
}

// NIIT is rate * min(max(0, agi - threshold), nii).
func NIIT(agi, nii, threshold, rate decimal.Decimal) decimal.Decimal {
	over := decimal.Max(agi.Sub(threshold), decimal.Zero)
	base := decimal.Min(over, decimal.Max(nii, decimal.Zero))
	return base.Mul(rate)
}

// settle splits liability minus payments into an amount due and a refund,
// both non-negative.
func settle(liability, payments decimal.Decimal) (due, refund decimal.Decimal) {
	net := liability.Sub(payments)
	if net.IsPositive() {
		return net, decimal.Zero
	}
	return decimal.Zero, net.Neg()
}
