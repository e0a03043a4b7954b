package domain

import (
	"fmt"
	"time"

	money "github.com/rpgo/tax-estimator/pkg/decimal"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// W2 holds the wage statement fields the estimator consumes.
type W2 struct {
	Employer                string          `yaml:"employer,omitempty" json:"employer,omitempty"`
	Wages                   decimal.Decimal `yaml:"wages" json:"wages" validate:"gte=0"`
	FederalTaxWithheld      decimal.Decimal `yaml:"federal_tax_withheld" json:"federal_tax_withheld" validate:"gte=0"`
	SocialSecurityWages     decimal.Decimal `yaml:"social_security_wages" json:"social_security_wages" validate:"gte=0"`
	SocialSecurityTax       decimal.Decimal `yaml:"social_security_tax" json:"social_security_tax" validate:"gte=0"`
	MedicareWages           decimal.Decimal `yaml:"medicare_wages" json:"medicare_wages" validate:"gte=0"`
	MedicareTax             decimal.Decimal `yaml:"medicare_tax" json:"medicare_tax" validate:"gte=0"`
	ElectiveDeferral401k    decimal.Decimal `yaml:"box12d_401k" json:"box12d_401k" validate:"gte=0"`
	HSAContribution         decimal.Decimal `yaml:"box12w_hsa" json:"box12w_hsa" validate:"gte=0"`
	State                   string          `yaml:"state,omitempty" json:"state,omitempty" validate:"omitempty,len=2"`
	StateWages              decimal.Decimal `yaml:"state_wages" json:"state_wages" validate:"gte=0"`
	StateTaxWithheld        decimal.Decimal `yaml:"state_tax_withheld" json:"state_tax_withheld" validate:"gte=0"`
	StateDisabilityWithheld decimal.Decimal `yaml:"box14_casdi" json:"box14_casdi" validate:"gte=0"`
}

// BrokerReportedLot is a 1099-B figure: either a Form 8949 box subtotal, a
// short/long-term summary total, or a single lot row. TaxableGain always
// equals RawGain plus WashSaleDisallowed.
type BrokerReportedLot struct {
	Description        string          `yaml:"description,omitempty" json:"description,omitempty"`
	Level              LotLevel        `yaml:"level" json:"level" validate:"omitempty,oneof=box summary lot"`
	Box                string          `yaml:"box,omitempty" json:"box,omitempty" validate:"omitempty,oneof=A B C D E F"`
	Proceeds           decimal.Decimal `yaml:"proceeds" json:"proceeds" validate:"gte=0"`
	CostBasis          decimal.Decimal `yaml:"cost_basis" json:"cost_basis" validate:"gte=0"`
	MarketDiscount     decimal.Decimal `yaml:"market_discount" json:"market_discount" validate:"gte=0"`
	WashSaleDisallowed decimal.Decimal `yaml:"wash_sale_disallowed" json:"wash_sale_disallowed" validate:"gte=0"`
	RawGain            decimal.Decimal `yaml:"raw_gain" json:"raw_gain"`
	TaxableGain        decimal.Decimal `yaml:"taxable_gain" json:"taxable_gain"`
	IsLongTerm         bool            `yaml:"is_long_term" json:"is_long_term"`
	IsCovered          bool            `yaml:"is_covered" json:"is_covered"`
	CostBasisMissing   bool            `yaml:"cost_basis_missing,omitempty" json:"cost_basis_missing,omitempty"`
	AcquiredDate       time.Time       `yaml:"acquired_date,omitempty" json:"acquired_date,omitempty"`
	SoldDate           time.Time       `yaml:"sold_date,omitempty" json:"sold_date,omitempty"`
}

// LotLevel says what a BrokerReportedLot aggregates.
type LotLevel string

const (
	LotLevelBox     LotLevel = "box"
	LotLevelSummary LotLevel = "summary"
	LotLevelLot     LotLevel = "lot"
)

// Form1098 is the mortgage interest statement, optionally carrying the
// purchase details needed for rental depreciation.
type Form1098 struct {
	Lender               string          `yaml:"lender,omitempty" json:"lender,omitempty"`
	MortgageInterest     decimal.Decimal `yaml:"mortgage_interest" json:"mortgage_interest" validate:"gte=0"`
	OutstandingPrincipal decimal.Decimal `yaml:"outstanding_principal" json:"outstanding_principal" validate:"gte=0"`
	MortgageInsurance    decimal.Decimal `yaml:"mortgage_insurance" json:"mortgage_insurance" validate:"gte=0"`
	PropertyTaxes        decimal.Decimal `yaml:"property_taxes" json:"property_taxes" validate:"gte=0"`
	PurchasePrice        decimal.Decimal `yaml:"purchase_price" json:"purchase_price" validate:"gte=0"`
	PurchaseDate         time.Time       `yaml:"purchase_date,omitempty" json:"purchase_date,omitempty"`
}

// InterestPayer is one 1099-INT payer line.
type InterestPayer struct {
	Payer    string          `yaml:"payer" json:"payer"`
	Interest decimal.Decimal `yaml:"interest" json:"interest" validate:"gte=0"`
}

// Form1099INT aggregates interest income across payers.
type Form1099INT struct {
	Payers        []InterestPayer `yaml:"payers,omitempty" json:"payers,omitempty" validate:"dive"`
	TotalInterest decimal.Decimal `yaml:"total_interest" json:"total_interest" validate:"gte=0"`
}

// Total returns TotalInterest when reported, otherwise the sum of payers.
func (f Form1099INT) Total() decimal.Decimal {
	if !f.TotalInterest.IsZero() {
		return f.TotalInterest
	}
	sum := decimal.Zero
	for _, p := range f.Payers {
		sum = sum.Add(p.Interest)
	}
	return sum
}

// StockType distinguishes equity compensation plans.
type StockType string

const (
	StockRSU  StockType = "RSU"
	StockESPP StockType = "ESPP"
)

// VestingEvent is one row of a vesting schedule. CostBasisPerShare is zero
// for events that have not happened yet.
type VestingEvent struct {
	Date              time.Time       `yaml:"date" json:"date" validate:"required"`
	Shares            decimal.Decimal `yaml:"shares" json:"shares" validate:"gt=0"`
	PlanType          StockType       `yaml:"plan_type" json:"plan_type" validate:"oneof=RSU ESPP"`
	GrantNumber       string          `yaml:"grant_number,omitempty" json:"grant_number,omitempty"`
	CostBasisPerShare decimal.Decimal `yaml:"cost_basis_per_share" json:"cost_basis_per_share" validate:"gte=0"`
	Price             decimal.Decimal `yaml:"price,omitempty" json:"price,omitempty" validate:"gte=0"`
	IsFuture          bool            `yaml:"is_future" json:"is_future"`
}

// EquitySale is one sold RSU or ESPP lot before classification. Fair market
// values left at zero are resolved through a price lookup on the ticker.
type EquitySale struct {
	ID              string          `yaml:"id,omitempty" json:"id,omitempty"`
	StockType       StockType       `yaml:"stock_type" json:"stock_type" validate:"oneof=RSU ESPP"`
	Ticker          string          `yaml:"ticker,omitempty" json:"ticker,omitempty"`
	AcquiredDate    time.Time       `yaml:"acquired_date" json:"acquired_date" validate:"required"`
	SoldDate        time.Time       `yaml:"sold_date" json:"sold_date" validate:"required"`
	Shares          decimal.Decimal `yaml:"shares" json:"shares" validate:"gt=0"`
	SalePrice       decimal.Decimal `yaml:"sale_price" json:"sale_price" validate:"gte=0"`
	AcquisitionFMV  decimal.Decimal `yaml:"acquisition_fmv" json:"acquisition_fmv" validate:"gte=0"`
	OfferFMV        decimal.Decimal `yaml:"offer_fmv" json:"offer_fmv" validate:"gte=0"`
	OfferDate       time.Time       `yaml:"offer_date,omitempty" json:"offer_date,omitempty"`
	FederalWithheld decimal.Decimal `yaml:"federal_withheld" json:"federal_withheld" validate:"gte=0"`
}

// Label identifies the sale in notes.
func (s EquitySale) Label() string {
	if s.ID != "" {
		return s.ID
	}
	return string(s.StockType) + " " + s.AcquiredDate.Format("2006-01-02") + " -> " + s.SoldDate.Format("2006-01-02")
}

// RentalProperty describes the rented share of a home.
type RentalProperty struct {
	RentalFraction      decimal.Decimal `yaml:"rental_fraction" json:"rental_fraction" validate:"gte=0,lte=1"`
	RentalIncome        decimal.Decimal `yaml:"rental_income" json:"rental_income" validate:"gte=0"`
	OtherIncome         decimal.Decimal `yaml:"other_income" json:"other_income" validate:"gte=0"`
	StartMonth          int             `yaml:"start_month" json:"start_month" validate:"omitempty,min=1,max=12"`
	PlacedInServiceYear int             `yaml:"placed_in_service_year,omitempty" json:"placed_in_service_year,omitempty" validate:"omitempty,gte=1900"`
	HOA                 decimal.Decimal `yaml:"hoa" json:"hoa" validate:"gte=0"`
	Insurance           decimal.Decimal `yaml:"insurance" json:"insurance" validate:"gte=0"`
	Supplies            decimal.Decimal `yaml:"supplies" json:"supplies" validate:"gte=0"`
	Electricity         decimal.Decimal `yaml:"electricity" json:"electricity" validate:"gte=0"`
	Telephone           decimal.Decimal `yaml:"telephone" json:"telephone" validate:"gte=0"`
	PurchasePrice       decimal.Decimal `yaml:"purchase_price" json:"purchase_price" validate:"gte=0"`
}

// Active reports whether any part of the property is rented.
func (r RentalProperty) Active() bool { return r.RentalFraction.IsPositive() }

// Payments are amounts paid toward the federal liability outside W-2 withholding.
type Payments struct {
	EstimatedPayments      decimal.Decimal `yaml:"estimated_payments" json:"estimated_payments" validate:"gte=0"`
	StockTaxWithheld       decimal.Decimal `yaml:"stock_tax_withheld" json:"stock_tax_withheld" validate:"gte=0"`
	StateEstimatedPayments decimal.Decimal `yaml:"state_estimated_payments" json:"state_estimated_payments" validate:"gte=0"`
}

// GainOverrides replace reconciled capital gain totals when set.
type GainOverrides struct {
	ShortTermGains *decimal.Decimal `yaml:"short_term_gains,omitempty" json:"short_term_gains,omitempty"`
	LongTermGains  *decimal.Decimal `yaml:"long_term_gains,omitempty" json:"long_term_gains,omitempty"`
}

// Any reports whether at least one override is present.
func (o GainOverrides) Any() bool { return o.ShortTermGains != nil || o.LongTermGains != nil }

// UnmarshalYAML decodes overrides from plain numbers or strings.
func (o *GainOverrides) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		ShortTermGains *string `yaml:"short_term_gains,omitempty"`
		LongTermGains  *string `yaml:"long_term_gains,omitempty"`
	}
	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}
	if aux.ShortTermGains != nil {
		val, err := money.NewFromString(*aux.ShortTermGains)
		if err != nil {
			return fmt.Errorf("short_term_gains: %w", err)
		}
		o.ShortTermGains = &val.Decimal
	}
	if aux.LongTermGains != nil {
		val, err := money.NewFromString(*aux.LongTermGains)
		if err != nil {
			return fmt.Errorf("long_term_gains: %w", err)
		}
		o.LongTermGains = &val.Decimal
	}
	return nil
}
