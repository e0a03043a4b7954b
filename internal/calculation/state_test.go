package calculation

import (
	"testing"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCalculateCalifornia(t *testing.T) {
	tests := []struct {
		name        string
		status      domain.FilingStatus
		in          StateInputs
		taxable     string
		beforeSur   string
		surtax      string
		total       string
		label       string
		description string
	}{
		{
			name:        "Wages only",
			status:      domain.Single,
			in:          StateInputs{Wages: d("150000")},
			taxable:     "144294.00",
			beforeSur:   "9857.98",
			surtax:      "0.00",
			total:       "9857.98",
			label:       domain.DeductionStandard,
			description: "Six brackets used after the 5706 standard deduction",
		},
		{
			name:   "Gains taxed as ordinary",
			status: domain.Single,
			in: StateInputs{
				Wages: d("100000"), CapitalGains: d("44294"), InterestIncome: d("3000"),
				StockOrdinaryIncome: d("2000"), NetRentalIncome: d("-5000"),
			},
			taxable:     "138588.00",
			beforeSur:   "9327.32",
			surtax:      "0.00",
			total:       "9327.32",
			label:       domain.DeductionStandard,
			description: "No preferential rate; rental loss reduces income",
		},
		{
			name:   "Itemized mortgage and property tax",
			status: domain.MarriedFilingJointly,
			in: StateInputs{
				Wages: d("200000"), MortgageInterest: d("20000"), PropertyTaxes: d("10000"), RentalFraction: d("0.2"),
			},
			taxable:     "176000.00",
			beforeSur:   "9245.28",
			surtax:      "0.00",
			total:       "9245.28",
			label:       domain.DeductionItemized,
			description: "Personal share 24000 beats 11412",
		},
		{
			name:        "Surtax",
			status:      domain.Single,
			in:          StateInputs{Wages: d("1105706")},
			taxable:     "1100000.00",
			beforeSur:   "116136.61",
			surtax:      "1000.00",
			total:       "117136.61",
			label:       domain.DeductionStandard,
			description: "1% on taxable income above 1,000,000",
		},
		{
			name:        "Small itemized loses",
			status:      domain.Single,
			in:          StateInputs{Wages: d("50000"), PropertyTaxes: d("3000")},
			taxable:     "44294.00",
			beforeSur:   "1192.53",
			surtax:      "0.00",
			total:       "1192.53",
			label:       domain.DeductionStandardExceeds,
			description: "Itemized computed but smaller than standard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateCalifornia(mustProfile(t, 2025, tt.status), tt.in)
			assert.Equal(t, StateCode, res.State)
			assertMoney(t, tt.taxable, res.TaxableIncome, tt.description)
			assertMoney(t, tt.beforeSur, res.TaxBeforeSurtax, tt.description)
			assertMoney(t, tt.surtax, res.Surtax, tt.description)
			assertMoney(t, tt.total, res.TotalTax, tt.description)
			assert.Equal(t, tt.label, res.DeductionLabel, tt.description)
		})
	}
}

func TestCalculateCaliforniaPayments(t *testing.T) {
	res := CalculateCalifornia(mustProfile(t, 2025, domain.Single), StateInputs{
		Wages:              d("150000"),
		TaxWithheld:        d("9000"),
		DisabilityWithheld: d("1800"),
	})
	assertMoney(t, "10800.00", res.TotalPayments, "SDI counts as a state payment")
	assertMoney(t, "0.00", res.NetDue)
	assertMoney(t, "942.02", res.Refund)
	assertMoney(t, "6.57", res.EffectiveRate)
}

func TestCombine(t *testing.T) {
	federal := domain.LiabilityResult{TotalLiability: d("25247"), TotalPayments: d("30000"), AGI: d("150000")}
	state := domain.StateResult{TotalTax: d("9857.98"), TotalPayments: d("9000")}

	c := Combine(federal, state)
	assertMoney(t, "35104.98", c.TotalLiability)
	assertMoney(t, "39000.00", c.TotalWithheld)
	assertMoney(t, "-3895.02", c.NetOwed, "negative means a net refund")
	assertMoney(t, "23.40", c.EffectiveRate)
}
