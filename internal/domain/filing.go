package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors surfaced to callers at the input boundary.
var (
	ErrUnknownFilingStatus  = errors.New("unknown filing status")
	ErrMissingRequiredInput = errors.New("missing required input")
	ErrInvalidAllocation    = errors.New("allocation percentages must sum to 100")
	ErrInvalidSchedule      = errors.New("invalid bracket schedule")
	ErrUnsupportedTaxYear   = errors.New("unsupported tax year")
	ErrNegativeAmount       = errors.New("amount must not be negative")
)

// FilingStatus identifies the federal filing status of a return.
type FilingStatus string

const (
	Single                  FilingStatus = "single"
	MarriedFilingJointly    FilingStatus = "mfj"
	MarriedFilingSeparately FilingStatus = "mfs"
	HeadOfHousehold         FilingStatus = "hoh"
)

// FilingStatuses lists every supported status in display order.
var FilingStatuses = []FilingStatus{Single, MarriedFilingJointly, MarriedFilingSeparately, HeadOfHousehold}

var filingStatusAliases = map[string]FilingStatus{
	"single":                    Single,
	"s":                         Single,
	"mfj":                       MarriedFilingJointly,
	"married_filing_jointly":    MarriedFilingJointly,
	"married-filing-jointly":    MarriedFilingJointly,
	"joint":                     MarriedFilingJointly,
	"mfs":                       MarriedFilingSeparately,
	"married_filing_separately": MarriedFilingSeparately,
	"married-filing-separately": MarriedFilingSeparately,
	"separate":                  MarriedFilingSeparately,
	"hoh":                       HeadOfHousehold,
	"head_of_household":         HeadOfHousehold,
	"head-of-household":         HeadOfHousehold,
}

// ParseFilingStatus normalizes user input into a FilingStatus.
func ParseFilingStatus(s string) (FilingStatus, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return "", fmt.Errorf("filing status: %w", ErrMissingRequiredInput)
	}
	if fs, ok := filingStatusAliases[key]; ok {
		return fs, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilingStatus, s)
}

// Valid reports whether fs is one of the four supported statuses.
func (fs FilingStatus) Valid() bool {
	switch fs {
	case Single, MarriedFilingJointly, MarriedFilingSeparately, HeadOfHousehold:
		return true
	}
	return false
}

// Label returns the long human-readable name.
func (fs FilingStatus) Label() string {
	switch fs {
	case Single:
		return "Single"
	case MarriedFilingJointly:
		return "Married Filing Jointly"
	case MarriedFilingSeparately:
		return "Married Filing Separately"
	case HeadOfHousehold:
		return "Head of Household"
	}
	return string(fs)
}

// UnmarshalText accepts any alias understood by ParseFilingStatus.
func (fs *FilingStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseFilingStatus(string(text))
	if err != nil {
		return err
	}
	*fs = parsed
	return nil
}
