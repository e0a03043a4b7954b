package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaystubData is the year-to-date snapshot from the latest paystub.
type PaystubData struct {
	PayDate          time.Time       `yaml:"pay_date" json:"pay_date" validate:"required"`
	YTDGrossWages    decimal.Decimal `yaml:"ytd_gross_wages" json:"ytd_gross_wages" validate:"gte=0"`
	YTDRSUIncome     decimal.Decimal `yaml:"ytd_rsu_income" json:"ytd_rsu_income" validate:"gte=0"`
	YTDFedWithheld   decimal.Decimal `yaml:"ytd_fed_withheld" json:"ytd_fed_withheld" validate:"gte=0"`
	YTDStateWithheld decimal.Decimal `yaml:"ytd_state_withheld" json:"ytd_state_withheld" validate:"gte=0"`
}

// PlannedSale is a sale the user expects to make before year end.
type PlannedSale struct {
	Proceeds   decimal.Decimal `yaml:"proceeds" json:"proceeds" validate:"gte=0"`
	CostBasis  decimal.Decimal `yaml:"cost_basis" json:"cost_basis" validate:"gte=0"`
	IsLongTerm bool            `yaml:"is_long_term" json:"is_long_term"`
}

// ProjectionInputs drives a mid-year full-year projection.
type ProjectionInputs struct {
	TaxYear             int             `yaml:"tax_year" json:"tax_year" validate:"required,gte=2000,lte=2100"`
	FilingStatus        FilingStatus    `yaml:"filing_status" json:"filing_status" validate:"required,oneof=single mfj mfs hoh"`
	Paystub             PaystubData     `yaml:"paystub" json:"paystub"`
	Vesting             []VestingEvent  `yaml:"vesting,omitempty" json:"vesting,omitempty" validate:"dive"`
	EstimatedStockPrice decimal.Decimal `yaml:"estimated_stock_price" json:"estimated_stock_price" validate:"gte=0"`
	PlannedSales        []PlannedSale   `yaml:"planned_sales,omitempty" json:"planned_sales,omitempty" validate:"dive"`
	EstimatedInterest   decimal.Decimal `yaml:"estimated_interest" json:"estimated_interest" validate:"gte=0"`
	MortgageInterest    decimal.Decimal `yaml:"mortgage_interest" json:"mortgage_interest" validate:"gte=0"`
	PropertyTaxes       decimal.Decimal `yaml:"property_taxes" json:"property_taxes" validate:"gte=0"`
	RentalFraction      decimal.Decimal `yaml:"rental_fraction" json:"rental_fraction" validate:"gte=0,lte=1"`
	EstimatedPayments   decimal.Decimal `yaml:"estimated_payments" json:"estimated_payments" validate:"gte=0"`
}

// ProjectionAssumptions explains how each projected figure was derived.
type ProjectionAssumptions struct {
	PayDate                time.Time       `json:"pay_date"`
	YearFraction           decimal.Decimal `json:"year_fraction"`
	YTDBaseSalary          decimal.Decimal `json:"ytd_base_salary"`
	ProjectedBaseSalary    decimal.Decimal `json:"projected_base_salary"`
	YTDRSUIncome           decimal.Decimal `json:"ytd_rsu_income"`
	FutureRSUIncome        decimal.Decimal `json:"future_rsu_income"`
	FutureESPPDiscount     decimal.Decimal `json:"future_espp_discount"`
	TotalProjectedRSU      decimal.Decimal `json:"total_projected_rsu"`
	EstimatedStockPrice    decimal.Decimal `json:"estimated_stock_price"`
	FutureVestCount        int             `json:"future_vest_count"`
	FutureESPPCount        int             `json:"future_espp_count"`
	ProjectedW2Wages       decimal.Decimal `json:"projected_w2_wages"`
	ProjectedFedWithheld   decimal.Decimal `json:"projected_fed_withheld"`
	ProjectedStateWithheld decimal.Decimal `json:"projected_state_withheld"`
	PlannedSalesCount      int             `json:"planned_sales_count"`
	TotalPlannedGains      decimal.Decimal `json:"total_planned_gains"`
	MethodBase             string          `json:"method_base"`
	MethodRSU              string          `json:"method_rsu"`
	MethodWithholding      string          `json:"method_withholding"`
}

// Projection pairs the synthesized full-year inputs with their assumptions.
type Projection struct {
	Inputs      TaxInputs             `json:"inputs"`
	Assumptions ProjectionAssumptions `json:"assumptions"`
}
