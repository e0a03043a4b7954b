package calculation

import (
	"fmt"
	"sort"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX TABLE ASSUMPTIONS:
//
// 1. Federal brackets, long-term gain breakpoints and standard deductions are
//    the published amounts for each year (Rev. Proc. 2023-34 for 2024,
//    Rev. Proc. 2024-40 for 2025).
// 2. NIIT thresholds are statutory and not indexed.
// 3. SALT cap is set per year: $10,000 ($5,000 married filing separately) for
//    2024, $40,000 ($20,000) for 2025. The 2025 phase-down above $500,000 of
//    modified AGI is not modeled.
// 4. Mortgage insurance premiums phase out between $100,000 and $110,000 AGI
//    ($50,000 to $55,000 married filing separately).
// 5. California uses the FTB rate schedules; married filing jointly thresholds
//    are double the single ones. The 1% mental health services surtax applies
//    above $1,000,000 of taxable income for every filing status.
// 6. Years without a published table are derived with Inflate.

var (
	federalRates = rates("0.10", "0.12", "0.22", "0.24", "0.32", "0.35", "0.37")
	gainRates    = rates("0", "0.15", "0.20")
	caRates      = rates("0.01", "0.02", "0.04", "0.06", "0.08", "0.093", "0.103", "0.113", "0.123")

	niitRate          = decimal.RequireFromString("0.038")
	caSurtaxRate      = decimal.RequireFromString("0.01")
	caSurtaxThreshold = decimal.NewFromInt(1000000)
	niitThresholds    = statusAmounts(200000, 250000, 125000, 200000)
	pmiPhaseOutStarts = statusAmounts(100000, 100000, 50000, 100000)
	pmiPhaseOutWidths = statusAmounts(10000, 10000, 5000, 10000)
)

// yearTable holds the indexed amounts for one tax year.
type yearTable struct {
	ordinary      map[domain.FilingStatus][]int64
	gains         map[domain.FilingStatus][]int64
	standard      map[domain.FilingStatus]int64
	state         map[domain.FilingStatus][]int64
	stateStandard map[domain.FilingStatus]int64
	saltCap       map[domain.FilingStatus]int64
}

var tables = map[int]yearTable{
	2024: {
		ordinary: map[domain.FilingStatus][]int64{
			domain.Single:                  {0, 11600, 47150, 100525, 191950, 243725, 609350},
			domain.MarriedFilingJointly:    {0, 23200, 94300, 201050, 383900, 487450, 731200},
			domain.MarriedFilingSeparately: {0, 11600, 47150, 100525, 191950, 243725, 365600},
			domain.HeadOfHousehold:         {0, 16550, 63100, 100500, 191950, 243700, 609350},
		},
		gains: map[domain.FilingStatus][]int64{
			domain.Single:                  {0, 47025, 518900},
			domain.MarriedFilingJointly:    {0, 94050, 583750},
			domain.MarriedFilingSeparately: {0, 47025, 291850},
			domain.HeadOfHousehold:         {0, 63000, 551350},
		},
		standard: map[domain.FilingStatus]int64{
			domain.Single:                  14600,
			domain.MarriedFilingJointly:    29200,
			domain.MarriedFilingSeparately: 14600,
			domain.HeadOfHousehold:         21900,
		},
		state: map[domain.FilingStatus][]int64{
			domain.Single:                  {0, 10756, 25499, 40245, 55866, 70606, 360659, 432787, 721314},
			domain.MarriedFilingJointly:    {0, 21512, 50998, 80490, 111732, 141212, 721318, 865574, 1442628},
			domain.MarriedFilingSeparately: {0, 10756, 25499, 40245, 55866, 70606, 360659, 432787, 721314},
			domain.HeadOfHousehold:         {0, 21527, 51000, 65744, 81364, 96107, 490493, 588593, 980987},
		},
		stateStandard: map[domain.FilingStatus]int64{
			domain.Single:                  5540,
			domain.MarriedFilingJointly:    11080,
			domain.MarriedFilingSeparately: 5540,
			domain.HeadOfHousehold:         11080,
		},
	},
	2025: {
		ordinary: map[domain.FilingStatus][]int64{
			domain.Single:                  {0, 11925, 48475, 103350, 197300, 250525, 626350},
			domain.MarriedFilingJointly:    {0, 23850, 96950, 206700, 394600, 501050, 751600},
			domain.MarriedFilingSeparately: {0, 11925, 48475, 103350, 197300, 250525, 375800},
			domain.HeadOfHousehold:         {0, 17000, 64850, 103350, 197300, 250500, 626350},
		},
		gains: map[domain.FilingStatus][]int64{
			domain.Single:                  {0, 48350, 533400},
			domain.MarriedFilingJointly:    {0, 96700, 600050},
			domain.MarriedFilingSeparately: {0, 48350, 300000},
			domain.HeadOfHousehold:         {0, 64750, 566700},
		},
		standard: map[domain.FilingStatus]int64{
			domain.Single:                  15000,
			domain.MarriedFilingJointly:    30000,
			domain.MarriedFilingSeparately: 15000,
			domain.HeadOfHousehold:         22500,
		},
		state: map[domain.FilingStatus][]int64{
			domain.Single:                  {0, 11079, 26264, 41452, 57542, 72724, 371479, 445771, 742953},
			domain.MarriedFilingJointly:    {0, 22158, 52528, 82904, 115084, 145448, 742958, 891542, 1485906},
			domain.MarriedFilingSeparately: {0, 11079, 26264, 41452, 57542, 72724, 371479, 445771, 742953},
			domain.HeadOfHousehold:         {0, 22173, 52530, 67716, 83805, 98990, 505208, 606251, 1010417},
		},
		stateStandard: map[domain.FilingStatus]int64{
			domain.Single:                  5706,
			domain.MarriedFilingJointly:    11412,
			domain.MarriedFilingSeparately: 5706,
			domain.HeadOfHousehold:         11412,
		},
	},
}

// SupportedYears returns the years with published tables, ascending.
func SupportedYears() []int {
	years := make([]int, 0, len(tables))
	for y := range tables {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// LatestYear returns the most recent year with a published table.
func LatestYear() int {
	years := SupportedYears()
	return years[len(years)-1]
}

// ProfileFor builds the immutable profile for a published (year, status).
// Every call returns a fresh value; nothing is cached or shared.
func ProfileFor(year int, status domain.FilingStatus) (domain.TaxYearProfile, error) {
	if !status.Valid() {
		return domain.TaxYearProfile{}, fmt.Errorf("%w: %q", domain.ErrUnknownFilingStatus, status)
	}
	table, ok := tables[year]
	if !ok {
		return domain.TaxYearProfile{}, fmt.Errorf("%w: %d (published: %v)", domain.ErrUnsupportedTaxYear, year, SupportedYears())
	}
	return domain.NewTaxYearProfile(domain.ProfileParams{
		Year:                           year,
		FilingStatus:                   status,
		OrdinaryBrackets:               schedule(table.ordinary[status], federalRates),
		LongTermGainBrackets:           schedule(table.gains[status], gainRates),
		StandardDeduction:              decimal.NewFromInt(table.standard[status]),
		NIITThreshold:                  niitThresholds[status],
		NIITRate:                       niitRate,
		SALTCap:                        decimal.NewFromInt(table.saltCap[status]),
		MortgageInsurancePhaseOutStart: pmiPhaseOutStarts[status],
		MortgageInsurancePhaseOutWidth: pmiPhaseOutWidths[status],
		StateBrackets:                  schedule(table.state[status], caRates),
		StateStandardDeduction:         decimal.NewFromInt(table.stateStandard[status]),
		StateSurtaxThreshold:           caSurtaxThreshold,
		StateSurtaxRate:                caSurtaxRate,
	})
}

// ResolveProfile returns the published profile for year, or derives one from
// the latest published year by compounding annualInflation when year is later.
// annualInflation of zero disables derivation.
func ResolveProfile(year int, status domain.FilingStatus, annualInflation decimal.Decimal) (domain.TaxYearProfile, error) {
	if _, ok := tables[year]; ok {
		return ProfileFor(year, status)
	}
	latest := LatestYear()
	if year < latest || !annualInflation.IsPositive() {
		return ProfileFor(year, status)
	}
	base, err := ProfileFor(latest, status)
	if err != nil {
		return domain.TaxYearProfile{}, err
	}
	factor := decimal.NewFromInt(1).Add(annualInflation).Pow(decimal.NewFromInt(int64(year - latest)))
	return Inflate(base, year, factor)
}

func rates(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func statusAmounts(single, joint, separate, head int64) map[domain.FilingStatus]decimal.Decimal {
	return map[domain.FilingStatus]decimal.Decimal{
		domain.Single:                  decimal.NewFromInt(single),
		domain.MarriedFilingJointly:    decimal.NewFromInt(joint),
		domain.MarriedFilingSeparately: decimal.NewFromInt(separate),
		domain.HeadOfHousehold:         decimal.NewFromInt(head),
	}
}

func schedule(thresholds []int64, rateList []decimal.Decimal) domain.BracketSchedule {
	out := make(domain.BracketSchedule, len(thresholds))
	for i, t := range thresholds {
		out[i] = domain.Bracket{Threshold: decimal.NewFromInt(t), Rate: rateList[i]}
	}
	return out
}
