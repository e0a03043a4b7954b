package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sched(pairs ...string) BracketSchedule {
	out := make(BracketSchedule, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Bracket{
			Threshold: decimal.RequireFromString(pairs[i]),
			Rate:      decimal.RequireFromString(pairs[i+1]),
		})
	}
	return out
}

func TestBracketScheduleValidate(t *testing.T) {
	tests := []struct {
		name     string
		schedule BracketSchedule
		valid    bool
	}{
		{name: "Valid", schedule: sched("0", "0.10", "10000", "0.20"), valid: true},
		{name: "Empty", schedule: nil},
		{name: "Does not start at zero", schedule: sched("100", "0.10")},
		{name: "Fractional threshold", schedule: sched("0", "0.10", "100.5", "0.20")},
		{name: "Thresholds not increasing", schedule: sched("0", "0.10", "5000", "0.20", "5000", "0.30")},
		{name: "Rate above one", schedule: sched("0", "1.5")},
		{name: "Decreasing rate", schedule: sched("0", "0.20", "5000", "0.10")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schedule.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidSchedule)
		})
	}
}

func TestBracketScheduleRates(t *testing.T) {
	s := sched("0", "0.10", "10000", "0.20", "50000", "0.30")
	assert.True(t, s.TopRate().Equal(decimal.RequireFromString("0.30")))
	assert.True(t, s.MarginalRate(decimal.NewFromInt(9999)).Equal(decimal.RequireFromString("0.10")))
	assert.True(t, s.MarginalRate(decimal.NewFromInt(10000)).Equal(decimal.RequireFromString("0.20")))
	assert.True(t, BracketSchedule(nil).TopRate().IsZero())
}

func validParams() ProfileParams {
	return ProfileParams{
		Year:                           2025,
		FilingStatus:                   Single,
		OrdinaryBrackets:               sched("0", "0.10", "11925", "0.12"),
		LongTermGainBrackets:           sched("0", "0", "48350", "0.15"),
		StandardDeduction:              decimal.NewFromInt(15000),
		NIITThreshold:                  decimal.NewFromInt(200000),
		NIITRate:                       decimal.RequireFromString("0.038"),
		SALTCap:                        decimal.NewFromInt(10000),
		MortgageInsurancePhaseOutStart: decimal.NewFromInt(100000),
		MortgageInsurancePhaseOutWidth: decimal.NewFromInt(10000),
		StateBrackets:                  sched("0", "0.01"),
		StateStandardDeduction:         decimal.NewFromInt(5706),
		StateSurtaxThreshold:           decimal.NewFromInt(1000000),
		StateSurtaxRate:                decimal.RequireFromString("0.01"),
	}
}

func TestNewTaxYearProfile(t *testing.T) {
	params := validParams()
	p, err := NewTaxYearProfile(params)
	require.NoError(t, err)
	assert.Equal(t, 2025, p.Year())
	assert.False(t, p.IsZero())

	// The profile keeps its own copy of every schedule.
	params.OrdinaryBrackets[1].Rate = decimal.RequireFromString("0.99")
	assert.True(t, p.OrdinaryBrackets()[1].Rate.Equal(decimal.RequireFromString("0.12")))
	got := p.OrdinaryBrackets()
	got[0].Rate = decimal.NewFromInt(1)
	assert.True(t, p.OrdinaryBrackets()[0].Rate.Equal(decimal.RequireFromString("0.10")))
}

func TestNewTaxYearProfileErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProfileParams)
		err    error
	}{
		{name: "Missing year", mutate: func(p *ProfileParams) { p.Year = 0 }, err: ErrMissingRequiredInput},
		{name: "Unknown status", mutate: func(p *ProfileParams) { p.FilingStatus = "widow" }, err: ErrUnknownFilingStatus},
		{name: "Bad state schedule", mutate: func(p *ProfileParams) { p.StateBrackets = nil }, err: ErrInvalidSchedule},
		{name: "Negative SALT cap", mutate: func(p *ProfileParams) { p.SALTCap = decimal.NewFromInt(-1) }, err: ErrNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(&params)
			_, err := NewTaxYearProfile(params)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
