package calculation

import (
	"testing"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCalculateItemized(t *testing.T) {
	base := ItemizedInputs{
		MortgageInterest:        d("20000"),
		PropertyTaxes:           d("8000"),
		MortgageInsurance:       d("1200"),
		StateTaxWithheld:        d("9000"),
		StateDisabilityWithheld: d("1000"),
		RentalFraction:          d("0.25"),
	}

	tests := []struct {
		name        string
		year        int
		status      domain.FilingStatus
		agi         string
		interest    string
		saltRaw     string
		salt        string
		insurance   string
		total       string
		description string
	}{
		{
			name:        "Below phase-out",
			year:        2024,
			status:      domain.Single,
			agi:         "80000",
			interest:    "15000.00",
			saltRaw:     "16000.00",
			salt:        "10000.00",
			insurance:   "900.00",
			total:       "25900.00",
			description: "Personal share of interest and insurance, SALT capped",
		},
		{
			name:        "Halfway through phase-out",
			year:        2024,
			status:      domain.Single,
			agi:         "105000",
			interest:    "15000.00",
			saltRaw:     "16000.00",
			salt:        "10000.00",
			insurance:   "450.00",
			total:       "25450.00",
			description: "Insurance reduced linearly across the band",
		},
		{
			name:        "Past phase-out",
			year:        2024,
			status:      domain.Single,
			agi:         "110000",
			interest:    "15000.00",
			saltRaw:     "16000.00",
			salt:        "10000.00",
			insurance:   "0.00",
			total:       "25000.00",
			description: "No insurance deduction at the end of the band",
		},
		{
			name:        "Married filing separately",
			year:        2024,
			status:      domain.MarriedFilingSeparately,
			agi:         "52500",
			interest:    "15000.00",
			saltRaw:     "16000.00",
			salt:        "5000.00",
			insurance:   "450.00",
			total:       "20450.00",
			description: "Half the SALT cap and half the phase-out band",
		},
		{
			name:        "2025 cap",
			year:        2025,
			status:      domain.Single,
			agi:         "80000",
			interest:    "15000.00",
			saltRaw:     "16000.00",
			salt:        "16000.00",
			insurance:   "900.00",
			total:       "31900.00",
			description: "The raised cap leaves the whole SALT amount deductible",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.AGI = d(tt.agi)
			res := CalculateItemized(mustProfile(t, tt.year, tt.status), in)
			assertMoney(t, tt.interest, res.MortgageInterest, tt.description)
			assertMoney(t, tt.saltRaw, res.SALTUncapped, tt.description)
			assertMoney(t, tt.salt, res.SALT, tt.description)
			assertMoney(t, tt.insurance, res.MortgageInsurance, tt.description)
			assertMoney(t, "900.00", res.MortgageInsuranceRaw)
			assertMoney(t, tt.total, res.Total, tt.description)
		})
	}
}

func TestCalculateItemizedClampsRentalFraction(t *testing.T) {
	res := CalculateItemized(mustProfile(t, 2025, domain.Single), ItemizedInputs{
		MortgageInterest: d("1000"),
		RentalFraction:   d("1.5"),
	})
	assert.True(t, res.MortgageInterest.IsZero())

	res = CalculateItemized(mustProfile(t, 2025, domain.Single), ItemizedInputs{
		MortgageInterest: d("1000"),
		RentalFraction:   d("-0.5"),
	})
	assertMoney(t, "1000.00", res.MortgageInterest)
}

func TestCalculateRental(t *testing.T) {
	mortgage := domain.Form1098{
		MortgageInterest:  d("20000"),
		PropertyTaxes:     d("8000"),
		MortgageInsurance: d("1200"),
		PurchasePrice:     d("800000"),
	}
	property := domain.RentalProperty{
		RentalFraction:      d("0.25"),
		RentalIncome:        d("24000"),
		StartMonth:          7,
		PlacedInServiceYear: 2025,
		HOA:                 d("3600"),
		Insurance:           d("1200"),
	}

	tests := []struct {
		name         string
		year         int
		pisYear      int
		startMonth   int
		depreciation string
		net          string
		notes        int
		description  string
	}{
		{
			name:         "Placed in service mid-year",
			year:         2025,
			pisYear:      2025,
			startMonth:   7,
			depreciation: "2666.67",
			net:          "12833.33",
			description:  "5.5 of 12 months under the mid-month convention",
		},
		{
			name:         "Later year",
			year:         2026,
			pisYear:      2025,
			startMonth:   7,
			depreciation: "5818.18",
			net:          "9681.82",
			description:  "Full-year depreciation after the first year",
		},
		{
			name:         "January start",
			year:         2025,
			pisYear:      2025,
			startMonth:   1,
			depreciation: "5575.76",
			net:          "9924.24",
			description:  "11.5 of 12 months",
		},
		{
			name:         "Missing start month",
			year:         2025,
			pisYear:      0,
			startMonth:   0,
			depreciation: "5575.76",
			net:          "9924.24",
			notes:        1,
			description:  "January is assumed and noted",
		},
		{
			name:         "Not yet in service",
			year:         2024,
			pisYear:      2025,
			startMonth:   7,
			depreciation: "0.00",
			net:          "15500.00",
			notes:        1,
			description:  "No depreciation before the property is rented",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := property
			p.PlacedInServiceYear = tt.pisYear
			p.StartMonth = tt.startMonth
			res, notes := CalculateRental(p, mortgage, tt.year)

			assertMoney(t, "5000.00", res.Expenses.MortgageInterest)
			assertMoney(t, "2000.00", res.Expenses.PropertyTaxes)
			assertMoney(t, "300.00", res.Expenses.MortgageInsurance)
			assertMoney(t, "900.00", res.Expenses.HOA)
			assertMoney(t, "8500.00", res.TotalExpenses)
			assertMoney(t, tt.depreciation, res.Depreciation, tt.description)
			assertMoney(t, tt.net, res.NetIncome, tt.description)
			assert.Len(t, notes, tt.notes)
		})
	}
}

func TestCalculateRentalLossAndMissingPrice(t *testing.T) {
	res, notes := CalculateRental(domain.RentalProperty{
		RentalFraction: d("0.5"),
		RentalIncome:   d("1000"),
		Supplies:       d("4000"),
	}, domain.Form1098{}, 2025)

	assertMoney(t, "-1000.00", res.NetIncome, "rental losses are allowed")
	assert.True(t, res.Depreciation.IsZero())
	assert.Len(t, notes, 1)
	assert.Equal(t, domain.NoteDefaulted, notes[0].Kind)
}
