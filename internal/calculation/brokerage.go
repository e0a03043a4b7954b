package calculation

import (
	"fmt"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// BROKERAGE RECONCILIATION ASSUMPTIONS:
//
// 1. Taxable gain is raw gain plus wash sale disallowed, always. A disallowed
//    loss is added back.
// 2. Box subtotals from a 1099-B win over its summary totals, which win over
//    lot rows, which win over gains recomputed from equity sales. Only one
//    level is ever summed. Brokers track wash sales across accounts;
//    recomputation cannot.
// 3. ESPP ordinary income from classified sales is counted whatever the
//    capital gain source is.
// 4. Overrides replace the reconciled totals for their term only.

// NewBrokerReportedLot completes a 1099-B record: raw gain defaults to
// proceeds minus basis when the broker left it blank, taxable gain is derived
// from raw gain and wash sale, and the level and Form 8949 box are filled in.
func NewBrokerReportedLot(lot domain.BrokerReportedLot) (domain.BrokerReportedLot, []domain.Note) {
	var notes []domain.Note
	subject := lotSubject(lot)

	if lot.RawGain.IsZero() && !lot.Proceeds.Equal(lot.CostBasis) {
		lot.RawGain = lot.Proceeds.Sub(lot.CostBasis)
	}

	taxable := lot.RawGain.Add(lot.WashSaleDisallowed)
	if !lot.TaxableGain.IsZero() && !lot.TaxableGain.Equal(taxable) {
		notes = append(notes, domain.Note{
			Kind:    domain.NoteDefaulted,
			Subject: subject,
			Message: fmt.Sprintf("reported taxable gain %s replaced by raw gain plus wash sale %s",
				lot.TaxableGain.StringFixed(2), taxable.StringFixed(2)),
		})
	}
	lot.TaxableGain = taxable

	if lot.Level == "" {
		if lot.SoldDate.IsZero() {
			lot.Level = domain.LotLevelSummary
		} else {
			lot.Level = domain.LotLevelLot
		}
	}
	if lot.Box == "" {
		lot.Box = Form8949Box(lot.IsLongTerm, lot.IsCovered)
	}
	return lot, notes
}

// Form8949Box returns the box letter for a 1099-B reported transaction.
func Form8949Box(longTerm, covered bool) string {
	switch {
	case !longTerm && covered:
		return "A"
	case !longTerm:
		return "B"
	case covered:
		return "D"
	default:
		return "E"
	}
}

// CheckLot reports a violation of the taxable gain invariant.
func CheckLot(lot domain.BrokerReportedLot) error {
	want := lot.RawGain.Add(lot.WashSaleDisallowed)
	if !lot.TaxableGain.Equal(want) {
		return fmt.Errorf("%s: taxable gain %s != raw gain %s + wash sale %s",
			lotSubject(lot), lot.TaxableGain, lot.RawGain, lot.WashSaleDisallowed)
	}
	if lot.Proceeds.IsNegative() || lot.CostBasis.IsNegative() || lot.WashSaleDisallowed.IsNegative() {
		return fmt.Errorf("%s: %w", lotSubject(lot), domain.ErrNegativeAmount)
	}
	return nil
}

func lotSubject(lot domain.BrokerReportedLot) string {
	if lot.Description != "" {
		return lot.Description
	}
	term := "short-term"
	if lot.IsLongTerm {
		term = "long-term"
	}
	if lot.Box != "" {
		return fmt.Sprintf("1099-B box %s (%s)", lot.Box, term)
	}
	return "1099-B " + term
}

func addLot(t *domain.GainTotals, lot domain.BrokerReportedLot) {
	t.Proceeds = t.Proceeds.Add(lot.Proceeds)
	t.CostBasis = t.CostBasis.Add(lot.CostBasis)
	t.RawGain = t.RawGain.Add(lot.RawGain)
	t.WashSaleDisallowed = t.WashSaleDisallowed.Add(lot.WashSaleDisallowed)
	t.TaxableGain = t.TaxableGain.Add(lot.TaxableGain)
	t.Count++
}

// addTransaction adds the capital part of a classified sale. Ordinary income
// is folded into basis so proceeds minus basis equals the capital gain.
func addTransaction(t *domain.GainTotals, tx domain.EquityTransaction) {
	t.Proceeds = t.Proceeds.Add(tx.Proceeds)
	t.CostBasis = t.CostBasis.Add(tx.CostBasis.Add(tx.OrdinaryIncome))
	t.RawGain = t.RawGain.Add(tx.CapitalGain)
	t.TaxableGain = t.TaxableGain.Add(tx.CapitalGain)
	t.Count++
}

// ReconcileGains builds the short/long-term capital gain picture from 1099-B
// records and classified equity transactions, then applies overrides.
func ReconcileGains(lots []domain.BrokerReportedLot, transactions []domain.EquityTransaction, overrides domain.GainOverrides) domain.CapitalGainSummary {
	summary := domain.CapitalGainSummary{Source: domain.GainSourceNone}

	var boxes, summaries, rows []domain.BrokerReportedLot
	for _, raw := range lots {
		lot, notes := NewBrokerReportedLot(raw)
		summary.Notes = append(summary.Notes, notes...)

		if lot.Proceeds.IsZero() && lot.CostBasis.IsZero() {
			summary.Notes = append(summary.Notes, domain.Note{
				Kind:    domain.NoteDefaulted,
				Subject: lotSubject(lot),
				Message: "zero proceeds and zero cost basis; treated as not present",
			})
			continue
		}
		if !lot.IsCovered && lot.CostBasis.IsZero() {
			lot.CostBasisMissing = true
			summary.Notes = append(summary.Notes, domain.Note{
				Kind:    domain.NoteInfo,
				Subject: lotSubject(lot),
				Message: "noncovered lot reported with zero basis; verify cost basis before filing",
			})
		}

		switch lot.Level {
		case domain.LotLevelBox:
			boxes = append(boxes, lot)
		case domain.LotLevelSummary:
			summaries = append(summaries, lot)
		default:
			rows = append(rows, lot)
		}
	}

	switch {
	case len(boxes) > 0:
		summary.Source = domain.GainSourceBrokerTotals
		for _, lot := range boxes {
			addLot(bucket(&summary, lot.IsLongTerm), lot)
		}
		summary.Notes = appendIgnored(summary.Notes, len(summaries), "summary totals", "box subtotals")
		summary.Notes = appendIgnored(summary.Notes, len(rows), "lot rows", "box subtotals")
	case len(summaries) > 0:
		summary.Source = domain.GainSourceBrokerTotals
		for _, lot := range summaries {
			addLot(bucket(&summary, lot.IsLongTerm), lot)
		}
		summary.Notes = appendIgnored(summary.Notes, len(rows), "lot rows", "summary totals")
	case len(rows) > 0:
		summary.Source = domain.GainSourceBrokerLots
		for _, lot := range rows {
			addLot(bucket(&summary, lot.IsLongTerm), lot)
		}
	case len(transactions) > 0:
		summary.Source = domain.GainSourceComputed
		for _, tx := range transactions {
			addTransaction(bucket(&summary, tx.IsLongTerm), tx)
		}
	}

	if summary.Source == domain.GainSourceBrokerTotals || summary.Source == domain.GainSourceBrokerLots {
		if len(transactions) > 0 {
			summary.Notes = append(summary.Notes, domain.Note{
				Kind:    domain.NoteInfo,
				Subject: "equity sales",
				Message: fmt.Sprintf("capital gains of %d classified sales superseded by %s", len(transactions), summary.Source),
			})
		}
	}

	for _, tx := range transactions {
		summary.StockOrdinary = summary.StockOrdinary.Add(tx.OrdinaryIncome)
		summary.StockWithheld = summary.StockWithheld.Add(tx.FederalWithheld)
	}

	applyOverrides(&summary, overrides)
	return summary
}

func appendIgnored(notes []domain.Note, n int, what, winner string) []domain.Note {
	if n == 0 {
		return notes
	}
	return append(notes, domain.Note{
		Kind:    domain.NoteInfo,
		Subject: "1099-B",
		Message: fmt.Sprintf("%d %s ignored; %s take precedence", n, what, winner),
	})
}

func bucket(s *domain.CapitalGainSummary, longTerm bool) *domain.GainTotals {
	if longTerm {
		return &s.LongTerm
	}
	return &s.ShortTerm
}

func applyOverrides(s *domain.CapitalGainSummary, o domain.GainOverrides) {
	if !o.Any() {
		return
	}
	override := func(t *domain.GainTotals, v *decimal.Decimal, term string) {
		if v == nil {
			return
		}
		s.Notes = append(s.Notes, domain.Note{
			Kind:    domain.NoteInfo,
			Subject: term + " gains",
			Message: fmt.Sprintf("override %s replaces reconciled %s", v.StringFixed(2), t.TaxableGain.StringFixed(2)),
		})
		t.TaxableGain = *v
	}
	override(&s.ShortTerm, o.ShortTermGains, "short-term")
	override(&s.LongTerm, o.LongTermGains, "long-term")
	s.Source = domain.GainSourceOverride
}
