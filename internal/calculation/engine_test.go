package calculation

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Debugf(string, ...any) {}
func (l *recordingLogger) Infof(string, ...any)  {}
func (l *recordingLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Errorf(string, ...any) {}

func sampleInputs() domain.TaxInputs {
	return domain.TaxInputs{
		TaxYear:      2025,
		FilingStatus: domain.Single,
		W2s: []domain.W2{{
			Employer:                "Acme",
			Wages:                   d("150000"),
			FederalTaxWithheld:      d("30000"),
			State:                   "CA",
			StateWages:              d("150000"),
			StateTaxWithheld:        d("9000"),
			StateDisabilityWithheld: d("1800"),
		}},
	}
}

func TestEngineEstimate(t *testing.T) {
	engine := NewEngine()
	report, err := engine.Estimate(context.Background(), sampleInputs())
	require.NoError(t, err)

	fed := report.Federal
	assertMoney(t, "25247.00", fed.TotalLiability)
	assert.Equal(t, domain.DeductionStandardExceeds, fed.DeductionLabel, "SALT alone is below the standard deduction")
	require.NotNil(t, fed.Itemized)
	assertMoney(t, "10800.00", fed.Itemized.SALT)
	assertMoney(t, "4753.00", fed.Refund)

	require.NotNil(t, report.State)
	assertMoney(t, "9857.98", report.State.TotalTax)
	assertMoney(t, "942.02", report.State.Refund)

	require.NotNil(t, report.Combined)
	assertMoney(t, "35104.98", report.Combined.TotalLiability)
	assertMoney(t, "-5695.02", report.Combined.NetOwed)
	assert.Equal(t, domain.GainSourceNone, report.Gains.Source)
	assert.Nil(t, report.Rental)
}

func TestEngineEstimateWithoutStateWages(t *testing.T) {
	in := sampleInputs()
	in.W2s[0].StateWages = d("0")
	in.W2s[0].StateTaxWithheld = d("0")
	in.W2s[0].StateDisabilityWithheld = d("0")

	report, err := NewEngine().Estimate(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, report.State)
	assert.Nil(t, report.Combined)
	assert.Nil(t, report.Federal.Itemized, "nothing to itemize")
	assert.Equal(t, domain.DeductionStandard, report.Federal.DeductionLabel)
}

func TestEngineEstimateSkipsUnresolvedSales(t *testing.T) {
	in := sampleInputs()
	in.EquitySales = []domain.EquitySale{
		{ID: "lot-1", StockType: domain.StockRSU, Ticker: "ACME", AcquiredDate: date(2024, 3, 5), SoldDate: date(2025, 6, 1), Shares: d("10"), SalePrice: d("400")},
		{ID: "lot-2", StockType: domain.StockRSU, AcquiredDate: date(2024, 3, 5), SoldDate: date(2025, 6, 1), Shares: d("10"), SalePrice: d("400"), AcquisitionFMV: d("200")},
	}
	logger := &recordingLogger{}
	engine := NewEngine()
	engine.SetLogger(logger)

	report, err := engine.Estimate(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, report.Transactions, 1)
	assert.Equal(t, "lot-2", report.Transactions[0].ID)
	assertMoney(t, "2000.00", report.Federal.LongTermGains)

	var skipped []domain.Note
	for _, n := range report.Federal.Notes {
		if n.Kind == domain.NoteSkipped {
			skipped = append(skipped, n)
		}
	}
	require.Len(t, skipped, 1)
	assert.Equal(t, "lot-1", skipped[0].Subject)
	require.Len(t, logger.warns, 1)
	assert.Contains(t, logger.warns[0], "lot-1")
}

func TestEngineEstimateRequiredInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.TaxInputs)
		err    error
	}{
		{name: "No filing status", mutate: func(in *domain.TaxInputs) { in.FilingStatus = "" }, err: domain.ErrMissingRequiredInput},
		{name: "Unknown filing status", mutate: func(in *domain.TaxInputs) { in.FilingStatus = "widow" }, err: domain.ErrUnknownFilingStatus},
		{name: "No tax year", mutate: func(in *domain.TaxInputs) { in.TaxYear = 0 }, err: domain.ErrMissingRequiredInput},
		{name: "No W-2", mutate: func(in *domain.TaxInputs) { in.W2s = nil }, err: domain.ErrMissingRequiredInput},
		{name: "Unpublished year", mutate: func(in *domain.TaxInputs) { in.TaxYear = 2019 }, err: domain.ErrUnsupportedTaxYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleInputs()
			tt.mutate(&in)
			_, err := NewEngine().Estimate(context.Background(), in)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestEngineEstimateIdempotent(t *testing.T) {
	in := sampleInputs()
	in.Mortgage = &domain.Form1098{MortgageInterest: d("18000"), PropertyTaxes: d("7000"), MortgageInsurance: d("600"), PurchasePrice: d("700000")}
	in.Rental = domain.RentalProperty{RentalFraction: d("0.3"), RentalIncome: d("15000"), StartMonth: 4, PlacedInServiceYear: 2024}
	in.Brokerage.Lots = []domain.BrokerReportedLot{
		{Level: domain.LotLevelSummary, Proceeds: d("5000"), CostBasis: d("4000"), WashSaleDisallowed: d("120"), IsCovered: true},
	}

	engine := NewEngine()
	first, err := engine.Estimate(context.Background(), in)
	require.NoError(t, err)
	second, err := engine.Estimate(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first.InputDigest)

	in.W2s[0].Wages = d("150001")
	third, err := engine.Estimate(context.Background(), in)
	require.NoError(t, err)
	assert.NotEqual(t, first.InputDigest, third.InputDigest)
}

func TestEngineSetLoggerNil(t *testing.T) {
	engine := NewEngine()
	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
	engine.SetPriceLookup(nil)
	assert.NotNil(t, engine.Prices)
}
