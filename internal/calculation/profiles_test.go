package calculation

import (
	"testing"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileForEveryPublishedYear(t *testing.T) {
	for _, year := range SupportedYears() {
		for _, status := range domain.FilingStatuses {
			p, err := ProfileFor(year, status)
			require.NoError(t, err, "%d %s", year, status)

			assert.Equal(t, year, p.Year())
			assert.Equal(t, status, p.FilingStatus())
			for _, s := range []domain.BracketSchedule{p.OrdinaryBrackets(), p.LongTermGainBrackets(), p.StateBrackets()} {
				assert.NoError(t, s.Validate())
				assert.True(t, s[0].Threshold.IsZero())
			}
			assert.True(t, p.StandardDeduction().IsPositive())
			assert.True(t, p.StateStandardDeduction().IsPositive())
			assert.True(t, p.NIITRate().Equal(d("0.038")))
			assert.True(t, p.StateSurtaxThreshold().Equal(d("1000000")))
		}
	}
}

func TestProfileForPublishedAmounts(t *testing.T) {
	tests := []struct {
		name        string
		year        int
		status      domain.FilingStatus
		standard    string
		niit        string
		saltCap     string
		stateStd    string
		description string
	}{
		{
			name:        "2025 single",
			year:        2025,
			status:      domain.Single,
			standard:    "15000",
			niit:        "200000",
			saltCap:     "40000",
			stateStd:    "5706",
			description: "Published 2025 single amounts",
		},
		{
			name:        "2025 joint",
			year:        2025,
			status:      domain.MarriedFilingJointly,
			standard:    "30000",
			niit:        "250000",
			saltCap:     "40000",
			stateStd:    "11412",
			description: "Joint filers double most amounts",
		},
		{
			name:        "2024 separate",
			year:        2024,
			status:      domain.MarriedFilingSeparately,
			standard:    "14600",
			niit:        "125000",
			saltCap:     "5000",
			stateStd:    "5540",
			description: "Separate filers get half the NIIT threshold and SALT cap",
		},
		{
			name:        "2024 head of household",
			year:        2024,
			status:      domain.HeadOfHousehold,
			standard:    "21900",
			niit:        "200000",
			saltCap:     "10000",
			stateStd:    "11080",
			description: "Head of household amounts",
		},
		{
			name:        "2025 separate",
			year:        2025,
			status:      domain.MarriedFilingSeparately,
			standard:    "15000",
			niit:        "125000",
			saltCap:     "20000",
			stateStd:    "5706",
			description: "The 2025 SALT cap is four times the 2024 one",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustProfile(t, tt.year, tt.status)
			assert.True(t, p.StandardDeduction().Equal(d(tt.standard)), tt.description)
			assert.True(t, p.NIITThreshold().Equal(d(tt.niit)), tt.description)
			assert.True(t, p.SALTCap().Equal(d(tt.saltCap)), tt.description)
			assert.True(t, p.StateStandardDeduction().Equal(d(tt.stateStd)), tt.description)
		})
	}
}

func TestProfileForErrors(t *testing.T) {
	_, err := ProfileFor(2019, domain.Single)
	assert.ErrorIs(t, err, domain.ErrUnsupportedTaxYear)

	_, err = ProfileFor(2025, domain.FilingStatus("widow"))
	assert.ErrorIs(t, err, domain.ErrUnknownFilingStatus)
}

func TestProfileIsNotShared(t *testing.T) {
	a := mustProfile(t, 2025, domain.Single)
	brackets := a.OrdinaryBrackets()
	brackets[1].Rate = d("0.99")

	b := mustProfile(t, 2025, domain.Single)
	assert.True(t, a.OrdinaryBrackets()[1].Rate.Equal(d("0.12")), "accessor returned a shared slice")
	assert.True(t, b.OrdinaryBrackets()[1].Rate.Equal(d("0.12")), "profiles share state")
}

func TestInflate(t *testing.T) {
	base := mustProfile(t, 2025, domain.Single)
	inflated, err := Inflate(base, 2026, d("1.03"))
	require.NoError(t, err)

	assert.Equal(t, 2026, inflated.Year())
	// 11925 * 1.03 = 12282.75, down to a multiple of 25
	assert.True(t, inflated.OrdinaryBrackets()[1].Threshold.Equal(d("12275")))
	assert.True(t, inflated.StandardDeduction().Equal(d("15450")))
	// 11079 * 1.03 = 11411.37, whole dollars
	assert.True(t, inflated.StateBrackets()[1].Threshold.Equal(d("11411")))
	assert.True(t, inflated.StateStandardDeduction().Equal(d("5877")))

	for i, b := range inflated.OrdinaryBrackets() {
		assert.True(t, b.Rate.Equal(base.OrdinaryBrackets()[i].Rate), "rates are not indexed")
		assert.True(t, b.Threshold.Mod(d("25")).IsZero())
	}
	assert.True(t, inflated.NIITThreshold().Equal(base.NIITThreshold()))
	assert.True(t, inflated.SALTCap().Equal(base.SALTCap()))
	assert.True(t, inflated.StateSurtaxThreshold().Equal(base.StateSurtaxThreshold()))
}

func TestInflateRejectsBadInput(t *testing.T) {
	base := mustProfile(t, 2025, domain.Single)

	_, err := Inflate(base, 2026, decimal.Zero)
	assert.Error(t, err)

	_, err = Inflate(domain.TaxYearProfile{}, 2026, d("1.02"))
	assert.ErrorIs(t, err, domain.ErrMissingRequiredInput)
}

func TestResolveProfile(t *testing.T) {
	p, err := ResolveProfile(2024, domain.Single, d("0.03"))
	require.NoError(t, err)
	assert.True(t, p.StandardDeduction().Equal(d("14600")), "published years are never inflated")

	p, err = ResolveProfile(2027, domain.Single, d("0.03"))
	require.NoError(t, err)
	assert.Equal(t, 2027, p.Year())
	// 15000 * 1.0609 = 15913.5, down to a multiple of 50
	assert.True(t, p.StandardDeduction().Equal(d("15900")))

	_, err = ResolveProfile(2026, domain.Single, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrUnsupportedTaxYear)
}
