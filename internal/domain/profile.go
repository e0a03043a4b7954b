package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bracket is one marginal-rate step: income at or above Threshold is taxed at Rate
// until the next bracket's threshold.
type Bracket struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// BracketSchedule is an ordered progressive rate schedule.
type BracketSchedule []Bracket

// Validate checks the schedule invariants: starts at 0, thresholds are
// non-negative whole dollars in strictly increasing order, rates are in [0,1]
// and non-decreasing.
func (s BracketSchedule) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: no brackets", ErrInvalidSchedule)
	}
	if !s[0].Threshold.IsZero() {
		return fmt.Errorf("%w: first threshold must be 0, got %s", ErrInvalidSchedule, s[0].Threshold)
	}
	one := decimal.NewFromInt(1)
	for i, b := range s {
		if b.Threshold.IsNegative() || !b.Threshold.Equal(b.Threshold.Truncate(0)) {
			return fmt.Errorf("%w: threshold %s at index %d is not a non-negative whole amount", ErrInvalidSchedule, b.Threshold, i)
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return fmt.Errorf("%w: rate %s at index %d outside [0,1]", ErrInvalidSchedule, b.Rate, i)
		}
		if i == 0 {
			continue
		}
		prev := s[i-1]
		if !b.Threshold.GreaterThan(prev.Threshold) {
			return fmt.Errorf("%w: threshold %s at index %d not above %s", ErrInvalidSchedule, b.Threshold, i, prev.Threshold)
		}
		if b.Rate.LessThan(prev.Rate) {
			return fmt.Errorf("%w: rate %s at index %d below previous rate %s", ErrInvalidSchedule, b.Rate, i, prev.Rate)
		}
	}
	return nil
}

// Clone returns an independent copy.
func (s BracketSchedule) Clone() BracketSchedule {
	if s == nil {
		return nil
	}
	out := make(BracketSchedule, len(s))
	copy(out, s)
	return out
}

// TopRate returns the rate of the highest bracket.
func (s BracketSchedule) TopRate() decimal.Decimal {
	if len(s) == 0 {
		return decimal.Zero
	}
	return s[len(s)-1].Rate
}

// MarginalRate returns the rate applied to the next dollar above income.
func (s BracketSchedule) MarginalRate(income decimal.Decimal) decimal.Decimal {
	rate := decimal.Zero
	for _, b := range s {
		if income.LessThan(b.Threshold) {
			break
		}
		rate = b.Rate
	}
	return rate
}

// BracketDetail records how much income landed in one bracket and the tax on it.
// Ceiling is zero for the unbounded top bracket.
type BracketDetail struct {
	Floor   decimal.Decimal `json:"floor"`
	Ceiling decimal.Decimal `json:"ceiling"`
	Rate    decimal.Decimal `json:"rate"`
	Amount  decimal.Decimal `json:"amount"`
	Tax     decimal.Decimal `json:"tax"`
}

// TaxYearProfile holds every statutory constant for one (year, filing status).
// Build it with calculation.ProfileFor; the fields are unexported so a profile
// cannot be changed after construction.
type TaxYearProfile struct {
	year   int
	status FilingStatus

	ordinary          BracketSchedule
	longTermGains     BracketSchedule
	standardDeduction decimal.Decimal

	niitThreshold decimal.Decimal
	niitRate      decimal.Decimal

	saltCap          decimal.Decimal
	pmiPhaseOutStart decimal.Decimal
	pmiPhaseOutWidth decimal.Decimal

	state                BracketSchedule
	stateStandardDeduct  decimal.Decimal
	stateSurtaxThreshold decimal.Decimal
	stateSurtaxRate      decimal.Decimal
}

// ProfileParams is the mutable construction-time form of a TaxYearProfile.
type ProfileParams struct {
	Year                           int             `yaml:"year" json:"year"`
	FilingStatus                   FilingStatus    `yaml:"filing_status" json:"filing_status"`
	OrdinaryBrackets               BracketSchedule `yaml:"ordinary_brackets" json:"ordinary_brackets"`
	LongTermGainBrackets           BracketSchedule `yaml:"long_term_gain_brackets" json:"long_term_gain_brackets"`
	StandardDeduction              decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	NIITThreshold                  decimal.Decimal `yaml:"niit_threshold" json:"niit_threshold"`
	NIITRate                       decimal.Decimal `yaml:"niit_rate" json:"niit_rate"`
	SALTCap                        decimal.Decimal `yaml:"salt_cap" json:"salt_cap"`
	MortgageInsurancePhaseOutStart decimal.Decimal `yaml:"mortgage_insurance_phase_out_start" json:"mortgage_insurance_phase_out_start"`
	MortgageInsurancePhaseOutWidth decimal.Decimal `yaml:"mortgage_insurance_phase_out_width" json:"mortgage_insurance_phase_out_width"`
	StateBrackets                  BracketSchedule `yaml:"state_brackets" json:"state_brackets"`
	StateStandardDeduction         decimal.Decimal `yaml:"state_standard_deduction" json:"state_standard_deduction"`
	StateSurtaxThreshold           decimal.Decimal `yaml:"state_surtax_threshold" json:"state_surtax_threshold"`
	StateSurtaxRate                decimal.Decimal `yaml:"state_surtax_rate" json:"state_surtax_rate"`
}

// NewTaxYearProfile validates params and freezes them into a profile.
func NewTaxYearProfile(p ProfileParams) (TaxYearProfile, error) {
	if p.Year <= 0 {
		return TaxYearProfile{}, fmt.Errorf("tax year: %w", ErrMissingRequiredInput)
	}
	if !p.FilingStatus.Valid() {
		return TaxYearProfile{}, fmt.Errorf("%w: %q", ErrUnknownFilingStatus, p.FilingStatus)
	}
	schedules := []struct {
		name string
		s    BracketSchedule
	}{
		{"ordinary", p.OrdinaryBrackets},
		{"long-term gain", p.LongTermGainBrackets},
		{"state", p.StateBrackets},
	}
	for _, sc := range schedules {
		if err := sc.s.Validate(); err != nil {
			return TaxYearProfile{}, fmt.Errorf("%d %s %s schedule: %w", p.Year, p.FilingStatus, sc.name, err)
		}
	}
	amounts := map[string]decimal.Decimal{
		"standard deduction":       p.StandardDeduction,
		"NIIT threshold":           p.NIITThreshold,
		"NIIT rate":                p.NIITRate,
		"SALT cap":                 p.SALTCap,
		"PMI phase-out start":      p.MortgageInsurancePhaseOutStart,
		"PMI phase-out width":      p.MortgageInsurancePhaseOutWidth,
		"state standard deduction": p.StateStandardDeduction,
		"state surtax threshold":   p.StateSurtaxThreshold,
		"state surtax rate":        p.StateSurtaxRate,
	}
	for name, v := range amounts {
		if v.IsNegative() {
			return TaxYearProfile{}, fmt.Errorf("%s: %w", name, ErrNegativeAmount)
		}
	}
	return TaxYearProfile{
		year:                 p.Year,
		status:               p.FilingStatus,
		ordinary:             p.OrdinaryBrackets.Clone(),
		longTermGains:        p.LongTermGainBrackets.Clone(),
		standardDeduction:    p.StandardDeduction,
		niitThreshold:        p.NIITThreshold,
		niitRate:             p.NIITRate,
		saltCap:              p.SALTCap,
		pmiPhaseOutStart:     p.MortgageInsurancePhaseOutStart,
		pmiPhaseOutWidth:     p.MortgageInsurancePhaseOutWidth,
		state:                p.StateBrackets.Clone(),
		stateStandardDeduct:  p.StateStandardDeduction,
		stateSurtaxThreshold: p.StateSurtaxThreshold,
		stateSurtaxRate:      p.StateSurtaxRate,
	}, nil
}

// Params returns a copy of the profile's values for inspection or derivation.
func (p TaxYearProfile) Params() ProfileParams {
	return ProfileParams{
		Year:                           p.year,
		FilingStatus:                   p.status,
		OrdinaryBrackets:               p.ordinary.Clone(),
		LongTermGainBrackets:           p.longTermGains.Clone(),
		StandardDeduction:              p.standardDeduction,
		NIITThreshold:                  p.niitThreshold,
		NIITRate:                       p.niitRate,
		SALTCap:                        p.saltCap,
		MortgageInsurancePhaseOutStart: p.pmiPhaseOutStart,
		MortgageInsurancePhaseOutWidth: p.pmiPhaseOutWidth,
		StateBrackets:                  p.state.Clone(),
		StateStandardDeduction:         p.stateStandardDeduct,
		StateSurtaxThreshold:           p.stateSurtaxThreshold,
		StateSurtaxRate:                p.stateSurtaxRate,
	}
}

func (p TaxYearProfile) Year() int { return p.year }
func (p TaxYearProfile) FilingStatus() FilingStatus { return p.status }
func (p TaxYearProfile) OrdinaryBrackets() BracketSchedule { return p.ordinary.Clone() }
func (p TaxYearProfile) LongTermGainBrackets() BracketSchedule { return p.longTermGains.Clone() }
func (p TaxYearProfile) StandardDeduction() decimal.Decimal { return p.standardDeduction }
func (p TaxYearProfile) NIITThreshold() decimal.Decimal { return p.niitThreshold }
func (p TaxYearProfile) NIITRate() decimal.Decimal { return p.niitRate }
func (p TaxYearProfile) SALTCap() decimal.Decimal { return p.saltCap }
func (p TaxYearProfile) MortgageInsurancePhaseOutStart() decimal.Decimal { return p.pmiPhaseOutStart }
func (p TaxYearProfile) MortgageInsurancePhaseOutWidth() decimal.Decimal { return p.pmiPhaseOutWidth }
func (p TaxYearProfile) StateBrackets() BracketSchedule { return p.state.Clone() }
func (p TaxYearProfile) StateStandardDeduction() decimal.Decimal { return p.stateStandardDeduct }
func (p TaxYearProfile) StateSurtaxThreshold() decimal.Decimal { return p.stateSurtaxThreshold }
func (p TaxYearProfile) StateSurtaxRate() decimal.Decimal { return p.stateSurtaxRate }

// IsZero reports whether the profile was never constructed.
func (p TaxYearProfile) IsZero() bool { return p.year == 0 }
