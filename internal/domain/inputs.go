package domain

import "github.com/shopspring/decimal"

// TaxInputs is the root input document for one tax year: everything the
// document collaborators extracted plus user-supplied parameters.
type TaxInputs struct {
	TaxYear      int            `yaml:"tax_year" json:"tax_year" validate:"required,gte=2000,lte=2100"`
	FilingStatus FilingStatus   `yaml:"filing_status" json:"filing_status" validate:"required,oneof=single mfj mfs hoh"`
	W2s          []W2           `yaml:"w2s" json:"w2s" validate:"required,min=1,dive"`
	Brokerage    BrokerageData  `yaml:"brokerage" json:"brokerage"`
	Mortgage     *Form1098      `yaml:"form_1098,omitempty" json:"form_1098,omitempty"`
	Interest     Form1099INT    `yaml:"form_1099_int" json:"form_1099_int"`
	Vesting      []VestingEvent `yaml:"vesting,omitempty" json:"vesting,omitempty" validate:"dive"`
	EquitySales  []EquitySale   `yaml:"equity_sales,omitempty" json:"equity_sales,omitempty" validate:"dive"`
	Rental       RentalProperty `yaml:"rental" json:"rental"`
	Payments     Payments       `yaml:"payments" json:"payments"`
	Overrides    GainOverrides  `yaml:"overrides" json:"overrides"`
}

// BrokerageData holds every 1099-B figure for the year.
type BrokerageData struct {
	Broker string              `yaml:"broker,omitempty" json:"broker,omitempty"`
	Lots   []BrokerReportedLot `yaml:"lots" json:"lots" validate:"dive"`
}

// WageTotals sums the W-2s of a return.
type WageTotals struct {
	Wages                   decimal.Decimal
	FederalTaxWithheld      decimal.Decimal
	StateWages              decimal.Decimal
	StateTaxWithheld        decimal.Decimal
	StateDisabilityWithheld decimal.Decimal
	WagesReported           bool
}

// TotalWages adds up all W-2s. WagesReported is false when there are no W-2s.
func (in TaxInputs) TotalWages() WageTotals {
	var t WageTotals
	for _, w := range in.W2s {
		t.WagesReported = true
		t.Wages = t.Wages.Add(w.Wages)
		t.FederalTaxWithheld = t.FederalTaxWithheld.Add(w.FederalTaxWithheld)
		t.StateWages = t.StateWages.Add(w.StateWages)
		t.StateTaxWithheld = t.StateTaxWithheld.Add(w.StateTaxWithheld)
		t.StateDisabilityWithheld = t.StateDisabilityWithheld.Add(w.StateDisabilityWithheld)
	}
	return t
}

// MortgageOrEmpty returns the 1098 data or a zero record.
func (in TaxInputs) MortgageOrEmpty() Form1098 {
	if in.Mortgage == nil {
		return Form1098{}
	}
	return *in.Mortgage
}
