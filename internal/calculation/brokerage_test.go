package calculation

import (
	"testing"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBrokerReportedLot(t *testing.T) {
	tests := []struct {
		name        string
		lot         domain.BrokerReportedLot
		raw         string
		taxable     string
		box         string
		level       domain.LotLevel
		notes       int
		description string
	}{
		{
			name:        "Wash sale added back",
			lot:         domain.BrokerReportedLot{Proceeds: d("1000"), CostBasis: d("1500"), WashSaleDisallowed: d("300"), IsCovered: true, SoldDate: date(2025, 4, 1)},
			raw:         "-500.00",
			taxable:     "-200.00",
			box:         "A",
			level:       domain.LotLevelLot,
			description: "A disallowed loss increases the taxable amount",
		},
		{
			name:        "Reported raw gain kept",
			lot:         domain.BrokerReportedLot{Proceeds: d("24338.78"), CostBasis: d("11906.73"), RawGain: d("12432.05"), IsLongTerm: true, IsCovered: true},
			raw:         "12432.05",
			taxable:     "12432.05",
			box:         "D",
			level:       domain.LotLevelSummary,
			description: "Summary totals without dates",
		},
		{
			name:        "Inconsistent taxable gain replaced",
			lot:         domain.BrokerReportedLot{Proceeds: d("100"), CostBasis: d("50"), TaxableGain: d("75"), IsLongTerm: true},
			raw:         "50.00",
			taxable:     "50.00",
			box:         "E",
			level:       domain.LotLevelSummary,
			notes:       1,
			description: "The invariant wins over a broker typo, with a note",
		},
		{
			name:        "Explicit box kept",
			lot:         domain.BrokerReportedLot{Level: domain.LotLevelBox, Box: "B", Proceeds: d("10"), CostBasis: d("0")},
			raw:         "10.00",
			taxable:     "10.00",
			box:         "B",
			level:       domain.LotLevelBox,
			description: "Box subtotals keep their letter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lot, notes := NewBrokerReportedLot(tt.lot)
			assertMoney(t, tt.raw, lot.RawGain, tt.description)
			assertMoney(t, tt.taxable, lot.TaxableGain, tt.description)
			assert.Equal(t, tt.box, lot.Box)
			assert.Equal(t, tt.level, lot.Level)
			assert.Len(t, notes, tt.notes)
			assert.NoError(t, CheckLot(lot))
		})
	}
}

func TestCheckLot(t *testing.T) {
	err := CheckLot(domain.BrokerReportedLot{RawGain: d("100"), WashSaleDisallowed: d("10"), TaxableGain: d("100")})
	assert.Error(t, err)

	err = CheckLot(domain.BrokerReportedLot{Proceeds: d("-1"), RawGain: d("-1"), TaxableGain: d("-1")})
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestForm8949Box(t *testing.T) {
	assert.Equal(t, "A", Form8949Box(false, true))
	assert.Equal(t, "B", Form8949Box(false, false))
	assert.Equal(t, "D", Form8949Box(true, true))
	assert.Equal(t, "E", Form8949Box(true, false))
}

func disqualifyingTransaction() domain.EquityTransaction {
	return domain.EquityTransaction{
		StockType:       domain.StockESPP,
		Proceeds:        d("1100"),
		CostBasis:       d("850"),
		Gain:            d("250"),
		OrdinaryIncome:  d("350"),
		CapitalGain:     d("-100"),
		FederalWithheld: d("77"),
	}
}

func TestReconcileGainsPrecedence(t *testing.T) {
	summaryST := domain.BrokerReportedLot{Level: domain.LotLevelSummary, Proceeds: d("52431.25"), CostBasis: d("52670.44"), WashSaleDisallowed: d("852.24"), IsCovered: true}
	summaryLT := domain.BrokerReportedLot{Level: domain.LotLevelSummary, Proceeds: d("24338.78"), CostBasis: d("11906.73"), IsLongTerm: true, IsCovered: true}
	row := domain.BrokerReportedLot{Level: domain.LotLevelLot, Proceeds: d("500"), CostBasis: d("100"), IsCovered: true, SoldDate: date(2025, 3, 3)}
	boxA := domain.BrokerReportedLot{Level: domain.LotLevelBox, Box: "A", Proceeds: d("1000"), CostBasis: d("600"), IsCovered: true}
	summaryOfBoxA := domain.BrokerReportedLot{Level: domain.LotLevelSummary, Proceeds: d("1000"), CostBasis: d("600"), IsCovered: true}
	tx := disqualifyingTransaction()

	tests := []struct {
		name        string
		lots        []domain.BrokerReportedLot
		txs         []domain.EquityTransaction
		source      domain.GainSource
		shortTerm   string
		longTerm    string
		notes       int
		description string
	}{
		{
			name:        "Totals beat rows and transactions",
			lots:        []domain.BrokerReportedLot{summaryST, summaryLT, row},
			txs:         []domain.EquityTransaction{tx},
			source:      domain.GainSourceBrokerTotals,
			shortTerm:   "613.05",
			longTerm:    "12432.05",
			description: "Summary totals are authoritative",
		},
		{
			name:        "Box subtotals beat summary totals",
			lots:        []domain.BrokerReportedLot{boxA, summaryOfBoxA, row},
			source:      domain.GainSourceBrokerTotals,
			shortTerm:   "400.00",
			longTerm:    "0.00",
			notes:       2,
			description: "Matching summary totals are not added on top of the box subtotal",
		},
		{
			name:        "Rows beat transactions",
			lots:        []domain.BrokerReportedLot{row},
			txs:         []domain.EquityTransaction{tx},
			source:      domain.GainSourceBrokerLots,
			shortTerm:   "400.00",
			longTerm:    "0.00",
			description: "Lot rows are used when there are no totals",
		},
		{
			name:        "Transactions alone",
			txs:         []domain.EquityTransaction{tx},
			source:      domain.GainSourceComputed,
			shortTerm:   "-100.00",
			longTerm:    "0.00",
			description: "Only the capital part of a sale is a capital gain",
		},
		{
			name:        "Nothing",
			source:      domain.GainSourceNone,
			shortTerm:   "0.00",
			longTerm:    "0.00",
			description: "No capital gain data at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ReconcileGains(tt.lots, tt.txs, domain.GainOverrides{})
			assert.Equal(t, tt.source, s.Source, tt.description)
			assertMoney(t, tt.shortTerm, s.ShortTerm.TaxableGain, tt.description)
			assertMoney(t, tt.longTerm, s.LongTerm.TaxableGain, tt.description)
			if tt.notes > 0 {
				assert.Len(t, s.Notes, tt.notes)
				assert.Equal(t, 1, s.ShortTerm.Count+s.LongTerm.Count)
			}
			if len(tt.txs) > 0 {
				assertMoney(t, "350.00", s.StockOrdinary, "ESPP ordinary income counts whatever the gain source")
				assertMoney(t, "77.00", s.StockWithheld)
			}
		})
	}
}

func TestReconcileGainsComputedTotals(t *testing.T) {
	s := ReconcileGains(nil, []domain.EquityTransaction{disqualifyingTransaction()}, domain.GainOverrides{})
	assertMoney(t, "1100.00", s.ShortTerm.Proceeds)
	assertMoney(t, "1200.00", s.ShortTerm.CostBasis, "basis includes the ordinary income already taxed")
	assert.Equal(t, 1, s.ShortTerm.Count)
}

func TestReconcileGainsNotes(t *testing.T) {
	lots := []domain.BrokerReportedLot{
		{Description: "empty box", Level: domain.LotLevelBox, Box: "A"},
		{Description: "noncovered", Level: domain.LotLevelLot, Proceeds: d("900"), IsLongTerm: true, SoldDate: date(2025, 5, 1)},
	}
	s := ReconcileGains(lots, nil, domain.GainOverrides{})

	require.Len(t, s.Notes, 2)
	assert.Equal(t, domain.NoteDefaulted, s.Notes[0].Kind)
	assert.Equal(t, "empty box", s.Notes[0].Subject)
	assert.Equal(t, domain.NoteInfo, s.Notes[1].Kind)
	assert.Equal(t, "noncovered", s.Notes[1].Subject)

	assert.Equal(t, domain.GainSourceBrokerLots, s.Source)
	assert.Equal(t, 1, s.LongTerm.Count, "noncovered zero-basis lots are kept")
	assertMoney(t, "900.00", s.LongTerm.TaxableGain)
}

func TestReconcileGainsOverrides(t *testing.T) {
	st := d("1234.56")
	lots := []domain.BrokerReportedLot{
		{Level: domain.LotLevelSummary, Proceeds: d("100"), CostBasis: d("50"), IsCovered: true},
		{Level: domain.LotLevelSummary, Proceeds: d("100"), CostBasis: d("50"), IsLongTerm: true, IsCovered: true},
	}
	s := ReconcileGains(lots, nil, domain.GainOverrides{ShortTermGains: &st})

	assert.Equal(t, domain.GainSourceOverride, s.Source)
	assertMoney(t, "1234.56", s.ShortTerm.TaxableGain)
	assertMoney(t, "50.00", s.LongTerm.TaxableGain, "only the overridden term changes")
	require.Len(t, s.Notes, 1)
	assert.Equal(t, "short-term gains", s.Notes[0].Subject)
}
