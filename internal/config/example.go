package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CreateExampleInputs creates an example input document covering every
// section: two W-2s, broker totals, an ESPP and an RSU sale, a 1098 and a
// partly rented home.
func (ip *InputParser) CreateExampleInputs() *domain.TaxInputs {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	stGains := decimal.NewFromInt(1200)

	return &domain.TaxInputs{
		TaxYear:      2025,
		FilingStatus: domain.Single,
		W2s: []domain.W2{
			{
				Employer:                "Acme Corp",
				Wages:                   decimal.NewFromInt(185000),
				FederalTaxWithheld:      decimal.NewFromInt(32000),
				SocialSecurityWages:     decimal.NewFromInt(176100),
				SocialSecurityTax:       decimal.RequireFromString("10918.20"),
				MedicareWages:           decimal.NewFromInt(185000),
				MedicareTax:             decimal.RequireFromString("2682.50"),
				ElectiveDeferral401k:    decimal.NewFromInt(23500),
				State:                   "CA",
				StateWages:              decimal.NewFromInt(185000),
				StateTaxWithheld:        decimal.NewFromInt(14500),
				StateDisabilityWithheld: decimal.NewFromInt(2220),
			},
		},
		Brokerage: domain.BrokerageData{
			Broker: "Example Brokerage",
			Lots: []domain.BrokerReportedLot{
				{
					Description: "Box D total",
					Level:       domain.LotLevelBox,
					Box:         "D",
					Proceeds:    decimal.NewFromInt(24000),
					CostBasis:   decimal.NewFromInt(15000),
					IsLongTerm:  true,
					IsCovered:   true,
				},
			},
		},
		Mortgage: &domain.Form1098{
			Lender:               "Example Mortgage",
			MortgageInterest:     decimal.NewFromInt(18000),
			OutstandingPrincipal: decimal.NewFromInt(600000),
			PropertyTaxes:        decimal.NewFromInt(9000),
			PurchasePrice:        decimal.NewFromInt(800000),
			PurchaseDate:         day(2021, time.June, 1),
		},
		Interest: domain.Form1099INT{
			Payers: []domain.InterestPayer{
				{Payer: "Example Bank", Interest: decimal.NewFromInt(850)},
			},
		},
		Vesting: []domain.VestingEvent{
			{Date: day(2024, time.May, 15), Shares: decimal.NewFromInt(40), PlanType: domain.StockRSU, CostBasisPerShare: decimal.NewFromInt(180)},
		},
		EquitySales: []domain.EquitySale{
			{
				ID:             "espp-2024-01",
				StockType:      domain.StockESPP,
				Ticker:         "ACME",
				AcquiredDate:   day(2024, time.January, 31),
				SoldDate:       day(2025, time.March, 3),
				Shares:         decimal.NewFromInt(50),
				SalePrice:      decimal.NewFromInt(210),
				AcquisitionFMV: decimal.NewFromInt(170),
				OfferFMV:       decimal.NewFromInt(150),
			},
			{
				ID:           "rsu-2024-05",
				StockType:    domain.StockRSU,
				Ticker:       "ACME",
				AcquiredDate: day(2024, time.May, 15),
				SoldDate:     day(2025, time.June, 2),
				Shares:       decimal.NewFromInt(40),
				SalePrice:    decimal.NewFromInt(205),
			},
		},
		Rental: domain.RentalProperty{
			RentalFraction:      decimal.RequireFromString("0.25"),
			RentalIncome:        decimal.NewFromInt(14400),
			StartMonth:          1,
			PlacedInServiceYear: 2023,
			HOA:                 decimal.NewFromInt(4800),
			Insurance:           decimal.NewFromInt(1600),
			Electricity:         decimal.NewFromInt(1200),
		},
		Payments: domain.Payments{
			EstimatedPayments: decimal.NewFromInt(2000),
		},
		Overrides: domain.GainOverrides{ShortTermGains: &stGains},
	}
}

// SaveInputs writes an input document as YAML
func SaveInputs(inputs any, filename string) error {
	b, err := yaml.Marshal(inputs)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
