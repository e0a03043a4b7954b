package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquityTransaction is the classified outcome of one EquitySale. It is built
// once by the classifier and never modified.
type EquityTransaction struct {
	ID              string          `json:"id"`
	StockType       StockType       `json:"stock_type"`
	AcquiredDate    time.Time       `json:"acquired_date"`
	SoldDate        time.Time       `json:"sold_date"`
	OfferDate       time.Time       `json:"offer_date,omitempty"`
	Shares          decimal.Decimal `json:"shares"`
	BasisPerShare   decimal.Decimal `json:"basis_per_share"`
	SalePrice       decimal.Decimal `json:"sale_price"`
	Proceeds        decimal.Decimal `json:"proceeds"`
	CostBasis       decimal.Decimal `json:"cost_basis"`
	Gain            decimal.Decimal `json:"gain"`
	OrdinaryIncome  decimal.Decimal `json:"ordinary_income"`
	CapitalGain     decimal.Decimal `json:"capital_gain"`
	IsLongTerm      bool            `json:"is_long_term"`
	IsQualifying    bool            `json:"is_qualifying"`
	HoldingDays     int             `json:"holding_days"`
	FederalWithheld decimal.Decimal `json:"federal_withheld"`
}

// Disposition describes the tax treatment in words.
func (t EquityTransaction) Disposition() string {
	term := "Short-term"
	if t.IsLongTerm {
		term = "Long-term"
	}
	switch t.StockType {
	case StockESPP:
		if t.IsQualifying {
			return "Qualifying ESPP"
		}
		return "Disqualifying ESPP (" + term + ")"
	default:
		return term
	}
}

// GainTotals sums one holding-period bucket of capital gain data.
type GainTotals struct {
	Proceeds           decimal.Decimal `json:"proceeds"`
	CostBasis          decimal.Decimal `json:"cost_basis"`
	RawGain            decimal.Decimal `json:"raw_gain"`
	WashSaleDisallowed decimal.Decimal `json:"wash_sale_disallowed"`
	TaxableGain        decimal.Decimal `json:"taxable_gain"`
	Count              int             `json:"count"`
}

// GainSource says where a capital gain summary came from.
type GainSource string

const (
	GainSourceNone         GainSource = "none"
	GainSourceBrokerTotals GainSource = "1099-B totals"
	GainSourceBrokerLots   GainSource = "1099-B lots"
	GainSourceComputed     GainSource = "computed transactions"
	GainSourceOverride     GainSource = "override"
)

// CapitalGainSummary is the reconciled short/long-term capital gain picture
// plus the ordinary income carried by ESPP dispositions.
type CapitalGainSummary struct {
	ShortTerm     GainTotals      `json:"short_term"`
	LongTerm      GainTotals      `json:"long_term"`
	StockOrdinary decimal.Decimal `json:"stock_ordinary_income"`
	StockWithheld decimal.Decimal `json:"stock_withheld"`
	Source        GainSource      `json:"source"`
	Notes         []Note          `json:"notes,omitempty"`
}

// DeductionResult holds itemized deduction components. It never decides
// between itemized and standard; the aggregator does.
type DeductionResult struct {
	MortgageInterest     decimal.Decimal `json:"mortgage_interest"`
	SALTUncapped         decimal.Decimal `json:"salt_uncapped"`
	SALT                 decimal.Decimal `json:"salt"`
	SALTCap              decimal.Decimal `json:"salt_cap"`
	MortgageInsurance    decimal.Decimal `json:"mortgage_insurance"`
	MortgageInsuranceRaw decimal.Decimal `json:"mortgage_insurance_before_phase_out"`
	Total                decimal.Decimal `json:"total"`
}

// RentalExpenses are the full-property amounts already scaled by the rental fraction.
type RentalExpenses struct {
	MortgageInterest  decimal.Decimal `json:"mortgage_interest"`
	PropertyTaxes     decimal.Decimal `json:"property_taxes"`
	MortgageInsurance decimal.Decimal `json:"mortgage_insurance"`
	HOA               decimal.Decimal `json:"hoa"`
	Insurance         decimal.Decimal `json:"insurance"`
	Supplies          decimal.Decimal `json:"supplies"`
	Electricity       decimal.Decimal `json:"electricity"`
	Telephone         decimal.Decimal `json:"telephone"`
}

// Total sums every category.
func (e RentalExpenses) Total() decimal.Decimal {
	return decimal.Sum(e.MortgageInterest, e.PropertyTaxes, e.MortgageInsurance,
		e.HOA, e.Insurance, e.Supplies, e.Electricity, e.Telephone)
}

// RentalResult is the Schedule E style outcome for the rented share of a home.
type RentalResult struct {
	RentalFraction decimal.Decimal `json:"rental_fraction"`
	GrossIncome    decimal.Decimal `json:"gross_income"`
	Expenses       RentalExpenses  `json:"expenses"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	Depreciation   decimal.Decimal `json:"depreciation"`
	NetIncome      decimal.Decimal `json:"net_income"`
}

// NoteKind classifies an attached note.
type NoteKind string

const (
	NoteSkipped   NoteKind = "skipped"
	NoteDefaulted NoteKind = "defaulted"
	NoteInfo      NoteKind = "info"
)

// Note records a skip, default or informational remark produced during a calculation.
type Note struct {
	Kind    NoteKind `json:"kind"`
	Subject string   `json:"subject"`
	Message string   `json:"message"`
}

// Deduction labels.
const (
	DeductionStandard        = "Standard"
	DeductionItemized        = "Itemized"
	DeductionStandardExceeds = "Standard (exceeds itemized)"
)

// LiabilityResult is the federal outcome of one calculation. Built once per
// call and read-only afterward.
type LiabilityResult struct {
	TaxYear      int          `json:"tax_year"`
	FilingStatus FilingStatus `json:"filing_status"`

	Wages               decimal.Decimal `json:"wages"`
	InterestIncome      decimal.Decimal `json:"interest_income"`
	StockOrdinaryIncome decimal.Decimal `json:"stock_ordinary_income"`
	ShortTermGains      decimal.Decimal `json:"short_term_gains"`
	LongTermGains       decimal.Decimal `json:"long_term_gains"`
	NetRentalIncome     decimal.Decimal `json:"net_rental_income"`
	TotalOrdinaryIncome decimal.Decimal `json:"total_ordinary_income"`
	AGI                 decimal.Decimal `json:"agi"`

	StandardDeduction decimal.Decimal  `json:"standard_deduction"`
	Itemized          *DeductionResult `json:"itemized,omitempty"`
	DeductionLabel    string           `json:"deduction_label"`
	Deduction         decimal.Decimal  `json:"deduction"`

	TaxableOrdinaryIncome decimal.Decimal `json:"taxable_ordinary_income"`
	TaxableLongTermGains  decimal.Decimal `json:"taxable_long_term_gains"`

	OrdinaryTax         decimal.Decimal `json:"ordinary_tax"`
	OrdinaryBrackets    []BracketDetail `json:"ordinary_brackets"`
	LongTermGainTax     decimal.Decimal `json:"long_term_gain_tax"`
	LongTermBrackets    []BracketDetail `json:"long_term_brackets"`
	NetInvestmentIncome decimal.Decimal `json:"net_investment_income"`
	NIIT                decimal.Decimal `json:"niit"`
	TotalLiability      decimal.Decimal `json:"total_liability"`

	FederalWithheld   decimal.Decimal `json:"federal_withheld"`
	EstimatedPayments decimal.Decimal `json:"estimated_payments"`
	StockTaxWithheld  decimal.Decimal `json:"stock_tax_withheld"`
	TotalPayments     decimal.Decimal `json:"total_payments"`

	NetDue        decimal.Decimal `json:"net_due"`
	Refund        decimal.Decimal `json:"refund"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`

	Notes []Note `json:"notes,omitempty"`
}

// StateResult is the California outcome mirroring LiabilityResult.
type StateResult struct {
	State               string          `json:"state"`
	Wages               decimal.Decimal `json:"wages"`
	InterestIncome      decimal.Decimal `json:"interest_income"`
	CapitalGains        decimal.Decimal `json:"capital_gains"`
	StockOrdinaryIncome decimal.Decimal `json:"stock_ordinary_income"`
	NetRentalIncome     decimal.Decimal `json:"net_rental_income"`
	TotalIncome         decimal.Decimal `json:"total_income"`

	StandardDeduction decimal.Decimal `json:"standard_deduction"`
	ItemizedDeduction decimal.Decimal `json:"itemized_deduction"`
	DeductionLabel    string          `json:"deduction_label"`
	Deduction         decimal.Decimal `json:"deduction"`
	TaxableIncome     decimal.Decimal `json:"taxable_income"`

	TaxBeforeSurtax decimal.Decimal `json:"tax_before_surtax"`
	Brackets        []BracketDetail `json:"brackets"`
	Surtax          decimal.Decimal `json:"surtax"`
	TotalTax        decimal.Decimal `json:"total_tax"`

	TaxWithheld        decimal.Decimal `json:"tax_withheld"`
	DisabilityWithheld decimal.Decimal `json:"disability_withheld"`
	EstimatedPayments  decimal.Decimal `json:"estimated_payments"`
	TotalPayments      decimal.Decimal `json:"total_payments"`
	NetDue             decimal.Decimal `json:"net_due"`
	Refund             decimal.Decimal `json:"refund"`
	EffectiveRate      decimal.Decimal `json:"effective_rate"`
}

// CombinedSummary totals federal and state results.
type CombinedSummary struct {
	FederalLiability decimal.Decimal `json:"federal_liability"`
	StateLiability   decimal.Decimal `json:"state_liability"`
	TotalLiability   decimal.Decimal `json:"total_liability"`
	FederalWithheld  decimal.Decimal `json:"federal_withheld"`
	StateWithheld    decimal.Decimal `json:"state_withheld"`
	TotalWithheld    decimal.Decimal `json:"total_withheld"`
	// NetOwed is positive when money is owed and negative for a net refund.
	NetOwed       decimal.Decimal `json:"net_owed"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
}

// TaxReport is everything one estimate run produces.
type TaxReport struct {
	InputDigest  string              `json:"input_digest"`
	Federal      LiabilityResult     `json:"federal"`
	State        *StateResult        `json:"state,omitempty"`
	Combined     *CombinedSummary    `json:"combined,omitempty"`
	Gains        CapitalGainSummary  `json:"gains"`
	Transactions []EquityTransaction `json:"transactions,omitempty"`
	Rental       *RentalResult       `json:"rental,omitempty"`
}
