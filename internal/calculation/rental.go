package calculation

import (
	"fmt"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// RENTAL ASSUMPTIONS:
//
// 1. Residential property is depreciated straight-line over 27.5 years on 80%
//    of the purchase price; the remaining 20% is land.
// 2. The placed-in-service year uses the mid-month convention from the first
//    rental month: (12 - month + 0.5) / 12 of a full year.
// 3. Every expense is the full-property annual amount times the rental fraction.

var (
	depreciableShare = decimal.NewFromFloat(0.80)
	recoveryYears    = decimal.NewFromFloat(27.5)
	monthsPerYear    = decimal.NewFromInt(12)
	midMonth         = decimal.NewFromFloat(0.5)
)

// AnnualDepreciation is the full-year straight-line deduction for the rented
// share of a property.
func AnnualDepreciation(purchasePrice, rentalFraction decimal.Decimal) decimal.Decimal {
	return purchasePrice.Mul(depreciableShare).Div(recoveryYears).Mul(rentalFraction)
}

// FirstYearDepreciation applies the mid-month convention for a property first
// rented in startMonth.
func FirstYearDepreciation(purchasePrice, rentalFraction decimal.Decimal, startMonth int) decimal.Decimal {
	months := monthsPerYear.Sub(decimal.NewFromInt(int64(startMonth))).Add(midMonth)
	return AnnualDepreciation(purchasePrice, rentalFraction).Mul(months).Div(monthsPerYear)
}

// CalculateRental computes Schedule E net income for the rented share of a
// home. Mortgage interest, property tax, mortgage insurance and purchase
// price come from the 1098 unless the property record carries its own price.
func CalculateRental(property domain.RentalProperty, mortgage domain.Form1098, taxYear int) (domain.RentalResult, []domain.Note) {
	var notes []domain.Note
	rf := decimal.Min(decimal.Max(property.RentalFraction, decimal.Zero), decimal.NewFromInt(1))

	expenses := domain.RentalExpenses{
		MortgageInterest:  mortgage.MortgageInterest.Mul(rf),
		PropertyTaxes:     mortgage.PropertyTaxes.Mul(rf),
		MortgageInsurance: mortgage.MortgageInsurance.Mul(rf),
		HOA:               property.HOA.Mul(rf),
		Insurance:         property.Insurance.Mul(rf),
		Supplies:          property.Supplies.Mul(rf),
		Electricity:       property.Electricity.Mul(rf),
		Telephone:         property.Telephone.Mul(rf),
	}

	price := property.PurchasePrice
	if price.IsZero() {
		price = mortgage.PurchasePrice
	}

	depreciation := decimal.Zero
	switch {
	case price.IsZero():
		notes = append(notes, domain.Note{
			Kind:    domain.NoteDefaulted,
			Subject: "rental depreciation",
			Message: "no purchase price on the rental record or 1098; depreciation set to zero",
		})
	case property.PlacedInServiceYear > taxYear:
		notes = append(notes, domain.Note{
			Kind:    domain.NoteInfo,
			Subject: "rental depreciation",
			Message: fmt.Sprintf("placed in service in %d; no depreciation for %d", property.PlacedInServiceYear, taxYear),
		})
	case property.PlacedInServiceYear == 0 || property.PlacedInServiceYear == taxYear:
		month := property.StartMonth
		if month < 1 || month > 12 {
			month = 1
			notes = append(notes, domain.Note{
				Kind:    domain.NoteDefaulted,
				Subject: "rental start month",
				Message: "missing or invalid; January assumed",
			})
		}
		depreciation = FirstYearDepreciation(price, rf, month)
	default:
		depreciation = AnnualDepreciation(price, rf)
	}

	gross := property.RentalIncome.Add(property.OtherIncome)
	total := expenses.Total()

	return domain.RentalResult{
		RentalFraction: rf,
		GrossIncome:    gross,
		Expenses:       expenses,
		TotalExpenses:  total,
		Depreciation:   depreciation,
		NetIncome:      gross.Sub(total).Sub(depreciation),
	}, notes
}
