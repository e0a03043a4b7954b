package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/pricing"
	"github.com/rpgo/tax-estimator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// EQUITY ASSUMPTIONS:
//
// 1. Holding periods are calendar-day differences. Long-term means strictly
//    more than 365 days.
// 2. ESPP offer periods start Feb 1 and Aug 1. A purchase in Jan-Feb belongs
//    to the prior Aug offer, Mar-Aug to the Feb offer, Sep-Dec to the Aug offer.
// 3. ESPP purchase price is 85% of the lesser of offer and purchase date FMV.
// 4. Disqualifying ordinary income is the purchase-date spread and is not
//    capped by the realized gain, so the capital remainder may be a loss.

const (
	longTermDays           = 365
	qualifyingOfferDays    = 730
	qualifyingPurchaseDays = 365
)

var (
	esppDiscountRate = decimal.NewFromFloat(0.15)
	esppPriceFactor  = decimal.NewFromFloat(0.85)
)

// Unresolved records an equity sale that was left out of a batch.
type Unresolved struct {
	Subject string
	Ticker  string
	Date    time.Time
	Reason  string
}

// Note converts the skip into a result note.
func (u Unresolved) Note() domain.Note {
	return domain.Note{Kind: domain.NoteSkipped, Subject: u.Subject, Message: u.Reason}
}

// InferOfferDate maps an ESPP purchase date to the start of its offer period.
func InferOfferDate(purchase time.Time) time.Time {
	year := purchase.Year()
	switch month := purchase.Month(); {
	case month <= time.February:
		return dateutil.Date(year-1, time.August, 1)
	case month <= time.August:
		return dateutil.Date(year, time.February, 1)
	default:
		return dateutil.Date(year, time.August, 1)
	}
}

// IsQualifyingDisposition reports whether an ESPP sale was held at least two
// years from the offer date and at least one year from purchase.
func IsQualifyingDisposition(offer, purchase, sale time.Time) bool {
	return dateutil.HeldAtLeast(offer, sale, qualifyingOfferDays) &&
		dateutil.HeldAtLeast(purchase, sale, qualifyingPurchaseDays)
}

// ESPPPurchasePrice is the discounted price paid per share.
func ESPPPurchasePrice(offerFMV, purchaseFMV decimal.Decimal) decimal.Decimal {
	return decimal.Min(offerFMV, purchaseFMV).Mul(esppPriceFactor)
}

func checkSale(sale domain.EquitySale) error {
	if !sale.Shares.IsPositive() {
		return fmt.Errorf("%s: shares must be positive, got %s", sale.Label(), sale.Shares)
	}
	if sale.AcquiredDate.IsZero() || sale.SoldDate.IsZero() {
		return fmt.Errorf("%s: %w: acquired and sold dates", sale.Label(), domain.ErrMissingRequiredInput)
	}
	if sale.SoldDate.Before(sale.AcquiredDate) {
		return fmt.Errorf("%s: sold %s before acquired %s", sale.Label(),
			sale.SoldDate.Format("2006-01-02"), sale.AcquiredDate.Format("2006-01-02"))
	}
	if sale.SalePrice.IsNegative() {
		return fmt.Errorf("%s: sale price: %w", sale.Label(), domain.ErrNegativeAmount)
	}
	return nil
}

// ClassifyRSU computes basis and gain for a sold RSU lot. The vest-date FMV
// must already be present on the sale.
func ClassifyRSU(sale domain.EquitySale) (domain.EquityTransaction, error) {
	if err := checkSale(sale); err != nil {
		return domain.EquityTransaction{}, err
	}
	if !sale.AcquisitionFMV.IsPositive() {
		return domain.EquityTransaction{}, fmt.Errorf("%s: %w: vest date fair market value", sale.Label(), domain.ErrMissingRequiredInput)
	}

	proceeds := sale.SalePrice.Mul(sale.Shares)
	basis := sale.AcquisitionFMV.Mul(sale.Shares)
	gain := proceeds.Sub(basis)
	days := dateutil.DaysBetween(sale.AcquiredDate, sale.SoldDate)

	return domain.EquityTransaction{
		ID:              sale.ID,
		StockType:       domain.StockRSU,
		AcquiredDate:    sale.AcquiredDate,
		SoldDate:        sale.SoldDate,
		Shares:          sale.Shares,
		BasisPerShare:   sale.AcquisitionFMV,
		SalePrice:       sale.SalePrice,
		Proceeds:        proceeds,
		CostBasis:       basis,
		Gain:            gain,
		OrdinaryIncome:  decimal.Zero,
		CapitalGain:     gain,
		IsLongTerm:      dateutil.HeldMoreThan(sale.AcquiredDate, sale.SoldDate, longTermDays),
		HoldingDays:     days,
		FederalWithheld: sale.FederalWithheld,
	}, nil
}

// ClassifyESPP splits the gain on a sold ESPP lot into ordinary income and
// capital gain. Offer and purchase FMV must already be present; a missing
// offer date is inferred from the purchase date.
func ClassifyESPP(sale domain.EquitySale) (domain.EquityTransaction, error) {
	if err := checkSale(sale); err != nil {
		return domain.EquityTransaction{}, err
	}
	if !sale.AcquisitionFMV.IsPositive() || !sale.OfferFMV.IsPositive() {
		return domain.EquityTransaction{}, fmt.Errorf("%s: %w: offer and purchase date fair market value", sale.Label(), domain.ErrMissingRequiredInput)
	}

	offer := sale.OfferDate
	if offer.IsZero() {
		offer = InferOfferDate(sale.AcquiredDate)
	}

	price := ESPPPurchasePrice(sale.OfferFMV, sale.AcquisitionFMV)
	proceeds := sale.SalePrice.Mul(sale.Shares)
	basis := price.Mul(sale.Shares)
	gain := proceeds.Sub(basis)
	days := dateutil.DaysBetween(sale.AcquiredDate, sale.SoldDate)
	qualifying := IsQualifyingDisposition(offer, sale.AcquiredDate, sale.SoldDate)

	var ordinary decimal.Decimal
	longTerm := dateutil.HeldMoreThan(sale.AcquiredDate, sale.SoldDate, longTermDays)
	if qualifying {
		discount := sale.OfferFMV.Mul(esppDiscountRate).Mul(sale.Shares)
		ordinary = decimal.Max(decimal.Min(discount, gain), decimal.Zero)
		longTerm = true
	} else {
		ordinary = sale.AcquisitionFMV.Sub(price).Mul(sale.Shares)
	}

	return domain.EquityTransaction{
		ID:              sale.ID,
		StockType:       domain.StockESPP,
		AcquiredDate:    sale.AcquiredDate,
		SoldDate:        sale.SoldDate,
		OfferDate:       offer,
		Shares:          sale.Shares,
		BasisPerShare:   price,
		SalePrice:       sale.SalePrice,
		Proceeds:        proceeds,
		CostBasis:       basis,
		Gain:            gain,
		OrdinaryIncome:  ordinary,
		CapitalGain:     gain.Sub(ordinary),
		IsLongTerm:      longTerm,
		IsQualifying:    qualifying,
		HoldingDays:     days,
		FederalWithheld: sale.FederalWithheld,
	}, nil
}

// Classify dispatches on the sale's stock type.
func Classify(sale domain.EquitySale) (domain.EquityTransaction, error) {
	switch sale.StockType {
	case domain.StockRSU:
		return ClassifyRSU(sale)
	case domain.StockESPP:
		return ClassifyESPP(sale)
	default:
		return domain.EquityTransaction{}, fmt.Errorf("%s: unknown stock type %q", sale.Label(), sale.StockType)
	}
}

// priceNeed is one fair market value a sale is missing.
type priceNeed struct {
	field *decimal.Decimal
	req   pricing.Request
}

func missingPrices(sale *domain.EquitySale) []priceNeed {
	var needs []priceNeed
	if sale.AcquisitionFMV.IsZero() {
		needs = append(needs, priceNeed{&sale.AcquisitionFMV, pricing.Request{Ticker: sale.Ticker, Date: sale.AcquiredDate}})
	}
	if sale.StockType == domain.StockESPP && sale.OfferFMV.IsZero() {
		offer := sale.OfferDate
		if offer.IsZero() {
			offer = InferOfferDate(sale.AcquiredDate)
		}
		needs = append(needs, priceNeed{&sale.OfferFMV, pricing.Request{Ticker: sale.Ticker, Date: offer}})
	}
	return needs
}

// ClassifyBatch classifies every sale, resolving missing fair market values
// through lookup. A sale whose price cannot be resolved, or that is
// malformed, is excluded and reported as Unresolved; the rest of the batch
// continues. The error is non-nil only when ctx is done.
func ClassifyBatch(ctx context.Context, sales []domain.EquitySale, lookup pricing.Lookup) ([]domain.EquityTransaction, []Unresolved, error) {
	working := make([]domain.EquitySale, len(sales))
	copy(working, sales)

	var requests []pricing.Request
	for i := range working {
		if working[i].Ticker == "" {
			continue
		}
		for _, need := range missingPrices(&working[i]) {
			requests = append(requests, need.req)
		}
	}

	var outcomes map[string]pricing.Outcome
	if len(requests) > 0 {
		var err error
		outcomes, err = pricing.ResolveAll(ctx, lookup, requests, pricing.DefaultConcurrency)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving equity prices: %w", err)
		}
	}

	transactions := make([]domain.EquityTransaction, 0, len(working))
	var skipped []Unresolved

sales:
	for i := range working {
		sale := &working[i]
		for _, need := range missingPrices(sale) {
			if sale.Ticker == "" {
				skipped = append(skipped, Unresolved{
					Subject: sale.Label(),
					Date:    need.req.Date,
					Reason:  "fair market value missing and no ticker to look it up",
				})
				continue sales
			}
			out := outcomes[need.req.Key()]
			if !out.Resolved {
				reason := out.Reason
				if reason == "" {
					reason = "price unavailable"
				}
				skipped = append(skipped, Unresolved{
					Subject: sale.Label(),
					Ticker:  sale.Ticker,
					Date:    need.req.Date,
					Reason:  fmt.Sprintf("price for %s on %s unresolved: %s", pricing.NormalizeTicker(sale.Ticker), need.req.Date.Format("2006-01-02"), reason),
				})
				continue sales
			}
			*need.field = out.Price
		}

		tx, err := Classify(*sale)
		if err != nil {
			skipped = append(skipped, Unresolved{Subject: sale.Label(), Ticker: sale.Ticker, Date: sale.SoldDate, Reason: err.Error()})
			continue
		}
		transactions = append(transactions, tx)
	}

	return transactions, skipped, nil
}

// FillFromVesting copies vest-date cost basis from the vesting schedule onto
// sales that lack an acquisition FMV. A vest matches on date and plan type.
func FillFromVesting(sales []domain.EquitySale, vesting []domain.VestingEvent) []domain.EquitySale {
	out := make([]domain.EquitySale, len(sales))
	copy(out, sales)
	if len(vesting) == 0 {
		return out
	}
	for i := range out {
		if !out[i].AcquisitionFMV.IsZero() {
			continue
		}
		for _, v := range vesting {
			if v.IsFuture || v.PlanType != out[i].StockType || !v.CostBasisPerShare.IsPositive() {
				continue
			}
			if dateutil.CalendarDay(v.Date).Equal(dateutil.CalendarDay(out[i].AcquiredDate)) {
				out[i].AcquisitionFMV = v.CostBasisPerShare
				break
			}
		}
	}
	return out
}
