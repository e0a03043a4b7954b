package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// TextFormatter renders the human-readable liability report.
type TextFormatter struct{}

func (t TextFormatter) Name() string { return "text" }

func (t TextFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("nil report")
	}
	var buf bytes.Buffer
	fed := report.Federal

	title := fmt.Sprintf("%d FEDERAL TAX LIABILITY ESTIMATE", fed.TaxYear)
	if report.State != nil {
		title = fmt.Sprintf("%d FEDERAL + %s TAX LIABILITY ESTIMATE", fed.TaxYear, report.State.State)
	}
	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintf(&buf, "  %s\n", title)
	fmt.Fprintf(&buf, "  Filing status: %s\n", fed.FilingStatus.Label())
	if report.InputDigest != "" {
		fmt.Fprintf(&buf, "  Input digest:  %s\n", report.InputDigest)
	}
	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))

	writeIncome(&buf, report)
	writeDeductions(&buf, fed)
	writeFederalTax(&buf, fed)
	writePayments(&buf, fed)
	writeResult(&buf, "RESULT", fed.NetDue, fed.Refund)
	if report.State != nil {
		writeState(&buf, report.State)
	}
	if report.Combined != nil {
		writeCombined(&buf, report)
	}
	if len(report.Transactions) > 0 {
		writeTransactions(&buf, report.Transactions)
	}
	writeNotes(&buf, fed.Notes)

	return buf.Bytes(), nil
}

func section(w io.Writer, name string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, name)
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
}

func line(w io.Writer, label string, amount decimal.Decimal) {
	fmt.Fprintf(w, "  %-*s %s\n", labelWidth, label, FormatAmount(amount))
}

func credit(w io.Writer, label string, amount decimal.Decimal) {
	fmt.Fprintf(w, "  %-*s %s\n", labelWidth, label, FormatCredit(amount))
}

func text(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-*s %*s\n", labelWidth, label, amountWidth+1, value)
}

func subtotal(w io.Writer, char string) {
	fmt.Fprintf(w, "  %-*s %s\n", labelWidth, "", strings.Repeat(char, amountWidth+1))
}

func writeIncome(w io.Writer, report *domain.TaxReport) {
	fed := report.Federal
	section(w, "INCOME")
	line(w, "W-2 Wages", fed.Wages)
	line(w, "Interest Income", fed.InterestIncome)
	if !fed.StockOrdinaryIncome.IsZero() {
		line(w, "Equity Compensation Ordinary Income", fed.StockOrdinaryIncome)
	}
	line(w, "Short-Term Capital Gains", fed.ShortTermGains)
	line(w, "Long-Term Capital Gains", fed.LongTermGains)
	if report.Gains.Source != "" && report.Gains.Source != domain.GainSourceNone {
		fmt.Fprintf(w, "    (capital gains from %s)\n", report.Gains.Source)
	}
	if r := report.Rental; r != nil {
		fmt.Fprintf(w, "  Rental Property (%s of home):\n", FormatPercentage(r.RentalFraction.Mul(hundredPct)))
		line(w, "  Gross Rental Income", r.GrossIncome)
		line(w, "  Expenses", r.TotalExpenses.Neg())
		line(w, "  Depreciation", r.Depreciation.Neg())
		line(w, "Net Rental Income", r.NetIncome)
	}
	subtotal(w, "-")
	line(w, "Total Ordinary Income", fed.TotalOrdinaryIncome)
	line(w, "Adjusted Gross Income", fed.AGI)
}

func writeDeductions(w io.Writer, fed domain.LiabilityResult) {
	section(w, "DEDUCTIONS")
	line(w, "Standard Deduction", fed.StandardDeduction)
	if it := fed.Itemized; it != nil {
		line(w, "Mortgage Interest", it.MortgageInterest)
		line(w, fmt.Sprintf("State & Local Taxes (cap %s)", FormatCurrency(it.SALTCap)), it.SALT)
		if !it.MortgageInsuranceRaw.IsZero() {
			line(w, "Mortgage Insurance", it.MortgageInsurance)
		}
		line(w, "Itemized Total", it.Total)
	}
	subtotal(w, "-")
	line(w, "Deduction Used: "+fed.DeductionLabel, fed.Deduction)
}

func writeBrackets(w io.Writer, details []domain.BracketDetail) {
	for _, b := range details {
		label := fmt.Sprintf("  %6s on %s", FormatRate(b.Rate), strings.TrimSpace(FormatCurrency(b.Amount)))
		line(w, label, b.Tax)
	}
}

func writeFederalTax(w io.Writer, fed domain.LiabilityResult) {
	section(w, "FEDERAL TAX CALCULATION")
	line(w, "Taxable Ordinary Income", fed.TaxableOrdinaryIncome)
	writeBrackets(w, fed.OrdinaryBrackets)
	line(w, "Ordinary Income Tax", fed.OrdinaryTax)
	if fed.TaxableLongTermGains.IsPositive() {
		line(w, "Taxable Long-Term Gains", fed.TaxableLongTermGains)
		writeBrackets(w, fed.LongTermBrackets)
		line(w, "Long-Term Capital Gains Tax", fed.LongTermGainTax)
	}
	if fed.NIIT.IsPositive() {
		line(w, "Net Investment Income", fed.NetInvestmentIncome)
		line(w, "Net Investment Income Tax", fed.NIIT)
	}
	subtotal(w, "-")
	line(w, "TOTAL FEDERAL TAX LIABILITY", fed.TotalLiability)
	text(w, "Effective Rate (of AGI)", FormatPercentage(fed.EffectiveRate))
}

func writePayments(w io.Writer, fed domain.LiabilityResult) {
	section(w, "PAYMENTS & WITHHOLDINGS")
	credit(w, "Federal Tax Withheld (W-2)", fed.FederalWithheld)
	if !fed.StockTaxWithheld.IsZero() {
		credit(w, "Stock Sale Withholding", fed.StockTaxWithheld)
	}
	if !fed.EstimatedPayments.IsZero() {
		credit(w, "Estimated Payments", fed.EstimatedPayments)
	}
	subtotal(w, "-")
	credit(w, "Total Payments", fed.TotalPayments)
}

func writeResult(w io.Writer, title string, due, refund decimal.Decimal) {
	section(w, title)
	switch {
	case due.IsPositive():
		line(w, "NET TAX DUE", due)
	case refund.IsPositive():
		credit(w, "REFUND", refund)
	default:
		fmt.Fprintln(w, "  EXACTLY EVEN - No tax due and no refund.")
	}
}

func writeState(w io.Writer, st *domain.StateResult) {
	section(w, "CALIFORNIA STATE TAX")
	line(w, "CA Wages", st.Wages)
	line(w, "Interest Income", st.InterestIncome)
	line(w, "Capital Gains", st.CapitalGains)
	if !st.StockOrdinaryIncome.IsZero() {
		line(w, "Equity Compensation Ordinary Income", st.StockOrdinaryIncome)
	}
	if !st.NetRentalIncome.IsZero() {
		line(w, "Net Rental Income", st.NetRentalIncome)
	}
	line(w, "Total CA Income", st.TotalIncome)
	line(w, "CA Standard Deduction", st.StandardDeduction)
	if st.ItemizedDeduction.IsPositive() {
		line(w, "CA Itemized Deduction", st.ItemizedDeduction)
	}
	line(w, "Deduction Used: "+st.DeductionLabel, st.Deduction)
	line(w, "CA Taxable Income", st.TaxableIncome)
	writeBrackets(w, st.Brackets)
	line(w, "CA Tax", st.TaxBeforeSurtax)
	if st.Surtax.IsPositive() {
		line(w, "Mental Health Services Surtax", st.Surtax)
	}
	subtotal(w, "-")
	line(w, "TOTAL CA TAX LIABILITY", st.TotalTax)
	credit(w, "CA Tax Withheld", st.TaxWithheld)
	if !st.DisabilityWithheld.IsZero() {
		credit(w, "CA SDI Withheld", st.DisabilityWithheld)
	}
	if !st.EstimatedPayments.IsZero() {
		credit(w, "CA Estimated Payments", st.EstimatedPayments)
	}
	credit(w, "Total CA Payments", st.TotalPayments)
	subtotal(w, "=")
	switch {
	case st.NetDue.IsPositive():
		line(w, "CA NET DUE", st.NetDue)
	case st.Refund.IsPositive():
		credit(w, "CA REFUND", st.Refund)
	default:
		fmt.Fprintln(w, "  CA: EXACTLY EVEN - No tax due and no refund.")
	}
	text(w, "CA Effective Rate", FormatPercentage(st.EffectiveRate))
}

func writeCombined(w io.Writer, report *domain.TaxReport) {
	c := report.Combined
	fed := report.Federal
	st := report.State

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
	fmt.Fprintln(w, "  COMBINED FEDERAL + CALIFORNIA SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
	line(w, "Federal Tax Liability", c.FederalLiability)
	line(w, "California Tax Liability", c.StateLiability)
	subtotal(w, "-")
	line(w, "TOTAL TAX LIABILITY (Fed + CA)", c.TotalLiability)
	fmt.Fprintln(w)
	credit(w, "Total Federal Withheld", c.FederalWithheld)
	credit(w, "Total CA Withheld", c.StateWithheld)
	subtotal(w, "-")
	credit(w, "Total Withheld", c.TotalWithheld)
	fmt.Fprintln(w)

	jurisdiction := func(name string, due, refund decimal.Decimal) {
		if refund.IsPositive() {
			credit(w, name+" Refund", refund)
			return
		}
		line(w, name+" Net Due", due)
	}
	jurisdiction("Federal", fed.NetDue, fed.Refund)
	if st != nil {
		jurisdiction("CA", st.NetDue, st.Refund)
	}
	subtotal(w, "=")
	switch {
	case c.NetOwed.IsPositive():
		line(w, "TOTAL NET OWED", c.NetOwed)
	case c.NetOwed.IsNegative():
		line(w, "TOTAL NET REFUND", c.NetOwed.Neg())
	default:
		fmt.Fprintln(w, "  EXACTLY EVEN - No tax due and no refund.")
	}
	fmt.Fprintln(w)
	text(w, "Combined Effective Rate (Fed + CA)", FormatPercentage(c.EffectiveRate))
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
}

func writeTransactions(w io.Writer, txs []domain.EquityTransaction) {
	section(w, "EQUITY SALES")
	fmt.Fprintf(w, "  %-18s %-32s %12s %14s\n", "Sale", "Treatment", "Ordinary", "Capital Gain")
	for _, t := range txs {
		fmt.Fprintf(w, "  %-18s %-32s %12s %14s\n",
			truncate(t.ID, 18), t.Disposition(),
			FormatCurrency(t.OrdinaryIncome), FormatCurrency(t.CapitalGain))
	}
}

func writeNotes(w io.Writer, notes []domain.Note) {
	section(w, "NOTES")
	if len(notes) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, n := range notes {
		fmt.Fprintf(w, "  [%s] %s: %s\n", n.Kind, n.Subject, n.Message)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}
