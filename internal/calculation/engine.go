package calculation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/pricing"
	"github.com/shopspring/decimal"
)

// digestNamespace scopes input digests so they never collide with other
// name-based UUIDs.
var digestNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("tax-estimator/inputs"))

// Engine orchestrates a full federal and California estimate.
type Engine struct {
	Prices pricing.Lookup
	// AnnualInflation derives tables for years after the latest published one.
	AnnualInflation decimal.Decimal
	Logger          Logger
}

// NewEngine creates an engine with no price source and no inflation.
func NewEngine() *Engine {
	return &Engine{
		Prices: pricing.None,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// SetPriceLookup sets the historical price source. Nil disables lookups.
func (e *Engine) SetPriceLookup(l pricing.Lookup) {
	if l == nil {
		e.Prices = pricing.None
		return
	}
	e.Prices = l
}

// InputDigest is a name-based UUID over the canonical JSON of the inputs.
// Identical inputs always produce the same digest.
func InputDigest(inputs domain.TaxInputs) (string, error) {
	data, err := json.Marshal(inputs)
	if err != nil {
		return "", fmt.Errorf("failed to encode inputs: %w", err)
	}
	return uuid.NewSHA1(digestNamespace, data).String(), nil
}

// Estimate runs every stage for one return. Per-item problems become notes;
// only missing top-level inputs, an unsupported year or a cancelled context
// fail the call.
func (e *Engine) Estimate(ctx context.Context, inputs domain.TaxInputs) (*domain.TaxReport, error) {
	if !inputs.FilingStatus.Valid() {
		if inputs.FilingStatus == "" {
			return nil, fmt.Errorf("filing status: %w", domain.ErrMissingRequiredInput)
		}
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFilingStatus, inputs.FilingStatus)
	}
	if inputs.TaxYear == 0 {
		return nil, fmt.Errorf("tax year: %w", domain.ErrMissingRequiredInput)
	}

	profile, err := ResolveProfile(inputs.TaxYear, inputs.FilingStatus, e.AnnualInflation)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tax tables: %w", err)
	}
	digest, err := InputDigest(inputs)
	if err != nil {
		return nil, err
	}
	e.Logger.Debugf("estimate %s: year %d, status %s", digest, profile.Year(), profile.FilingStatus())

	wages := inputs.TotalWages()
	mortgage := inputs.MortgageOrEmpty()
	var notes []domain.Note

	// equity sales
	sales := FillFromVesting(inputs.EquitySales, inputs.Vesting)
	transactions, unresolved, err := ClassifyBatch(ctx, sales, e.Prices)
	if err != nil {
		return nil, err
	}
	for _, u := range unresolved {
		notes = append(notes, u.Note())
	}

	gains := ReconcileGains(inputs.Brokerage.Lots, transactions, inputs.Overrides)
	notes = append(notes, gains.Notes...)
	e.Logger.Debugf("capital gains from %s: short-term %s, long-term %s",
		gains.Source, gains.ShortTerm.TaxableGain.StringFixed(2), gains.LongTerm.TaxableGain.StringFixed(2))

	// rental
	var rental *domain.RentalResult
	if inputs.Rental.Active() {
		r, rentalNotes := CalculateRental(inputs.Rental, mortgage, profile.Year())
		rental = &r
		notes = append(notes, rentalNotes...)
	}

	// itemized candidates
	var itemized *ItemizedInputs
	if inputs.Mortgage != nil || wages.StateTaxWithheld.IsPositive() || wages.StateDisabilityWithheld.IsPositive() {
		itemized = &ItemizedInputs{
			MortgageInterest:        mortgage.MortgageInterest,
			PropertyTaxes:           mortgage.PropertyTaxes,
			MortgageInsurance:       mortgage.MortgageInsurance,
			StateTaxWithheld:        wages.StateTaxWithheld,
			StateDisabilityWithheld: wages.StateDisabilityWithheld,
			RentalFraction:          inputs.Rental.RentalFraction,
		}
	}
	notes = append(notes, defaultNotes(inputs, wages)...)

	federal, err := CalculateLiability(profile, LiabilityInputs{
		Wages:             wages.Wages,
		WagesReported:     wages.WagesReported,
		InterestIncome:    inputs.Interest.Total(),
		Gains:             gains,
		Rental:            rental,
		Itemized:          itemized,
		FederalWithheld:   wages.FederalTaxWithheld,
		EstimatedPayments: inputs.Payments.EstimatedPayments,
		StockTaxWithheld:  inputs.Payments.StockTaxWithheld.Add(gains.StockWithheld),
		Notes:             notes,
	})
	if err != nil {
		return nil, err
	}
	logNotes(e.Logger, federal.Notes)
	e.Logger.Debugf("deduction %s %s; total liability %s; net due %s; refund %s",
		federal.DeductionLabel, federal.Deduction.StringFixed(2), federal.TotalLiability.StringFixed(2),
		federal.NetDue.StringFixed(2), federal.Refund.StringFixed(2))

	report := &domain.TaxReport{
		InputDigest:  digest,
		Federal:      federal,
		Gains:        gains,
		Transactions: transactions,
		Rental:       rental,
	}

	if wages.StateWages.IsPositive() {
		state := CalculateCalifornia(profile, StateInputs{
			Wages:               wages.StateWages,
			InterestIncome:      federal.InterestIncome,
			CapitalGains:        federal.ShortTermGains.Add(federal.LongTermGains),
			StockOrdinaryIncome: federal.StockOrdinaryIncome,
			NetRentalIncome:     federal.NetRentalIncome,
			MortgageInterest:    mortgage.MortgageInterest,
			PropertyTaxes:       mortgage.PropertyTaxes,
			RentalFraction:      inputs.Rental.RentalFraction,
			TaxWithheld:         wages.StateTaxWithheld,
			DisabilityWithheld:  wages.StateDisabilityWithheld,
			EstimatedPayments:   inputs.Payments.StateEstimatedPayments,
		})
		combined := Combine(federal, state)
		report.State = &state
		report.Combined = &combined
		e.Logger.Debugf("california tax %s; combined net owed %s", state.TotalTax.StringFixed(2), combined.NetOwed.StringFixed(2))
	}

	return report, nil
}

// defaultNotes records optional inputs that were absent and taken as zero.
func defaultNotes(inputs domain.TaxInputs, wages domain.WageTotals) []domain.Note {
	var notes []domain.Note
	if wages.StateWages.IsPositive() && wages.StateDisabilityWithheld.IsZero() {
		notes = append(notes, domain.Note{
			Kind:    domain.NoteDefaulted,
			Subject: "W-2 box 14",
			Message: "no CA SDI reported; defaulted to zero",
		})
	}
	if inputs.Mortgage == nil && inputs.Rental.Active() {
		notes = append(notes, domain.Note{
			Kind:    domain.NoteDefaulted,
			Subject: "Form 1098",
			Message: "rental reported without a 1098; mortgage interest, property tax and insurance defaulted to zero",
		})
	}
	return notes
}
