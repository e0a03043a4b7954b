package calculation

import (
	"fmt"
	"time"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// PROJECTION ASSUMPTIONS:
//
// 1. Base salary accrues evenly; it is extrapolated linearly from the pay date.
// 2. RSU income is lumpy and event-driven: year-to-date plus future vests in
//    the tax year at their price, or the estimated stock price.
// 3. Future ESPP purchases add their discount to wages: shares times price
//    minus basis, or 15% of price when basis is unknown. Never negative.
// 4. Year-to-date RSU income was withheld at supplemental rates (22% federal,
//    10.23% CA); the rest of withholding belongs to base pay and is extrapolated.
// 5. State wages equal projected W-2 wages.

var (
	federalSupplementalRate = decimal.NewFromFloat(0.22)
	stateSupplementalRate   = decimal.NewFromFloat(0.1023)
)

const (
	methodBase = "Linear extrapolation from YTD"
	methodRSU  = "Event-driven (YTD actual + future vests x stock price)"
)

// YearFraction is the share of the tax year elapsed through payDate,
// inclusive, clamped to [1/days, 1].
func YearFraction(payDate time.Time, taxYear int) decimal.Decimal {
	total := dateutil.DaysInYear(taxYear)
	elapsed := dateutil.DayOfYear(payDate, taxYear)
	return decimal.NewFromInt(int64(elapsed)).Div(decimal.NewFromInt(int64(total)))
}

func futureInYear(v domain.VestingEvent, taxYear int, plan domain.StockType) bool {
	return v.IsFuture && v.PlanType == plan && dateutil.InYear(v.Date, taxYear)
}

func vestPrice(v domain.VestingEvent, estimate decimal.Decimal) decimal.Decimal {
	if v.Price.IsPositive() {
		return v.Price
	}
	return estimate
}

// FutureRSUIncome sums shares times price for RSU vests still to come in taxYear.
func FutureRSUIncome(vesting []domain.VestingEvent, estimate decimal.Decimal, taxYear int) (decimal.Decimal, int) {
	total := decimal.Zero
	count := 0
	for _, v := range vesting {
		if !futureInYear(v, taxYear, domain.StockRSU) {
			continue
		}
		total = total.Add(v.Shares.Mul(vestPrice(v, estimate)))
		count++
	}
	return total, count
}

// FutureESPPDiscount estimates the taxable discount on ESPP purchases still to
// come in taxYear.
func FutureESPPDiscount(vesting []domain.VestingEvent, estimate decimal.Decimal, taxYear int) (decimal.Decimal, int) {
	total := decimal.Zero
	count := 0
	for _, v := range vesting {
		if !futureInYear(v, taxYear, domain.StockESPP) {
			continue
		}
		price := vestPrice(v, estimate)
		if v.CostBasisPerShare.IsPositive() {
			total = total.Add(v.Shares.Mul(price.Sub(v.CostBasisPerShare)))
		} else {
			total = total.Add(v.Shares.Mul(price).Mul(esppDiscountRate))
		}
		count++
	}
	return decimal.Max(total, decimal.Zero), count
}

// ProjectFullYear turns a mid-year paystub, the vesting schedule and planned
// sales into full-year inputs for the estimator.
func ProjectFullYear(in domain.ProjectionInputs) (*domain.Projection, error) {
	if !in.FilingStatus.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFilingStatus, in.FilingStatus)
	}
	if in.TaxYear == 0 {
		return nil, fmt.Errorf("tax year: %w", domain.ErrMissingRequiredInput)
	}
	if in.Paystub.PayDate.IsZero() {
		return nil, fmt.Errorf("pay date: %w", domain.ErrMissingRequiredInput)
	}
	p := in.Paystub
	if p.YTDRSUIncome.GreaterThan(p.YTDGrossWages) {
		return nil, fmt.Errorf("ytd RSU income %s exceeds ytd gross wages %s", p.YTDRSUIncome, p.YTDGrossWages)
	}

	frac := YearFraction(p.PayDate, in.TaxYear)

	ytdBase := p.YTDGrossWages.Sub(p.YTDRSUIncome)
	projectedBase := ytdBase.Div(frac)
	futureRSU, vestCount := FutureRSUIncome(in.Vesting, in.EstimatedStockPrice, in.TaxYear)
	projectedRSU := p.YTDRSUIncome.Add(futureRSU)
	futureESPP, esppCount := FutureESPPDiscount(in.Vesting, in.EstimatedStockPrice, in.TaxYear)
	wages := decimal.Sum(projectedBase, projectedRSU, futureESPP)

	fedWithheld := projectWithholding(p.YTDFedWithheld, p.YTDRSUIncome, futureRSU.Add(futureESPP), frac, federalSupplementalRate)
	stateWithheld := projectWithholding(p.YTDStateWithheld, p.YTDRSUIncome, futureRSU.Add(futureESPP), frac, stateSupplementalRate)

	var lots []domain.BrokerReportedLot
	plannedGains := decimal.Zero
	for i, sale := range in.PlannedSales {
		// No taxable gain is reported for a planned sale, so there is nothing
		// for the constructor to note.
		lot, _ := NewBrokerReportedLot(domain.BrokerReportedLot{
			Description:  fmt.Sprintf("planned sale %d", i+1),
			Level:        domain.LotLevelLot,
			Proceeds:     sale.Proceeds,
			CostBasis:    sale.CostBasis,
			IsLongTerm:   sale.IsLongTerm,
			IsCovered:    true,
			AcquiredDate: dateutil.Date(in.TaxYear, time.January, 1),
			SoldDate:     dateutil.Date(in.TaxYear, time.December, 31),
		})
		lots = append(lots, lot)
		plannedGains = plannedGains.Add(lot.RawGain)
	}

	inputs := domain.TaxInputs{
		TaxYear:      in.TaxYear,
		FilingStatus: in.FilingStatus,
		W2s: []domain.W2{{
			Employer:           "Projected",
			Wages:              wages.Round(2),
			FederalTaxWithheld: fedWithheld.Round(2),
			State:              StateCode,
			StateWages:         wages.Round(2),
			StateTaxWithheld:   stateWithheld.Round(2),
		}},
		Brokerage: domain.BrokerageData{Broker: "Projected", Lots: lots},
		Interest:  domain.Form1099INT{TotalInterest: in.EstimatedInterest.Round(2)},
		Vesting:   in.Vesting,
		Rental:    domain.RentalProperty{RentalFraction: in.RentalFraction},
		Payments:  domain.Payments{EstimatedPayments: in.EstimatedPayments},
	}
	if in.MortgageInterest.IsPositive() || in.PropertyTaxes.IsPositive() {
		inputs.Mortgage = &domain.Form1098{
			MortgageInterest: in.MortgageInterest.Round(2),
			PropertyTaxes:    in.PropertyTaxes.Round(2),
		}
	}

	return &domain.Projection{
		Inputs: inputs,
		Assumptions: domain.ProjectionAssumptions{
			PayDate:                p.PayDate,
			YearFraction:           frac.Round(4),
			YTDBaseSalary:          ytdBase,
			ProjectedBaseSalary:    projectedBase.Round(2),
			YTDRSUIncome:           p.YTDRSUIncome,
			FutureRSUIncome:        futureRSU.Round(2),
			FutureESPPDiscount:     futureESPP.Round(2),
			TotalProjectedRSU:      projectedRSU.Round(2),
			EstimatedStockPrice:    in.EstimatedStockPrice,
			FutureVestCount:        vestCount,
			FutureESPPCount:        esppCount,
			ProjectedW2Wages:       wages.Round(2),
			ProjectedFedWithheld:   fedWithheld.Round(2),
			ProjectedStateWithheld: stateWithheld.Round(2),
			PlannedSalesCount:      len(in.PlannedSales),
			TotalPlannedGains:      plannedGains.Round(2),
			MethodBase:             methodBase,
			MethodRSU:              methodRSU,
			MethodWithholding: fmt.Sprintf("Base: linear, RSU: %s%% fed / %s%% CA supplemental",
				federalSupplementalRate.Mul(hundred).StringFixed(0), stateSupplementalRate.Mul(hundred).StringFixed(2)),
		},
	}, nil
}

// projectWithholding splits year-to-date withholding into the RSU part at the
// supplemental rate and the base part, extrapolates the base part, and adds
// supplemental withholding on future equity income. The RSU part never
// exceeds what was actually withheld, so the base part is never negative.
func projectWithholding(ytdWithheld, ytdRSU, futureEquity, frac, rate decimal.Decimal) decimal.Decimal {
	rsuPart := decimal.Min(ytdRSU.Mul(rate), ytdWithheld)
	basePart := ytdWithheld.Sub(rsuPart)
	return decimal.Sum(basePart.Div(frac), rsuPart, futureEquity.Mul(rate))
}
