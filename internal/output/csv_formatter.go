package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter exports one row per line item of the report.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

// LineItem is one labeled amount of a report.
type LineItem struct {
	Section string
	Item    string
	Amount  decimal.Decimal
}

// LineItems flattens a report into labeled amounts in report order.
func LineItems(report *domain.TaxReport) []LineItem {
	var items []LineItem
	add := func(section, item string, amount decimal.Decimal) {
		items = append(items, LineItem{Section: section, Item: item, Amount: amount})
	}

	fed := report.Federal
	add("income", "wages", fed.Wages)
	add("income", "interest", fed.InterestIncome)
	add("income", "stock_ordinary_income", fed.StockOrdinaryIncome)
	add("income", "short_term_gains", fed.ShortTermGains)
	add("income", "long_term_gains", fed.LongTermGains)
	add("income", "net_rental_income", fed.NetRentalIncome)
	add("income", "total_ordinary_income", fed.TotalOrdinaryIncome)
	add("income", "agi", fed.AGI)

	add("deductions", "standard", fed.StandardDeduction)
	if it := fed.Itemized; it != nil {
		add("deductions", "mortgage_interest", it.MortgageInterest)
		add("deductions", "salt", it.SALT)
		add("deductions", "mortgage_insurance", it.MortgageInsurance)
		add("deductions", "itemized_total", it.Total)
	}
	add("deductions", "used", fed.Deduction)

	add("federal", "taxable_ordinary_income", fed.TaxableOrdinaryIncome)
	add("federal", "ordinary_tax", fed.OrdinaryTax)
	add("federal", "taxable_long_term_gains", fed.TaxableLongTermGains)
	add("federal", "long_term_gain_tax", fed.LongTermGainTax)
	add("federal", "net_investment_income", fed.NetInvestmentIncome)
	add("federal", "niit", fed.NIIT)
	add("federal", "total_liability", fed.TotalLiability)
	add("federal", "effective_rate", fed.EffectiveRate)

	add("payments", "federal_withheld", fed.FederalWithheld)
	add("payments", "stock_tax_withheld", fed.StockTaxWithheld)
	add("payments", "estimated_payments", fed.EstimatedPayments)
	add("payments", "total", fed.TotalPayments)

	add("result", "net_due", fed.NetDue)
	add("result", "refund", fed.Refund)

	if st := report.State; st != nil {
		add("state", "total_income", st.TotalIncome)
		add("state", "deduction", st.Deduction)
		add("state", "taxable_income", st.TaxableIncome)
		add("state", "tax_before_surtax", st.TaxBeforeSurtax)
		add("state", "surtax", st.Surtax)
		add("state", "total_tax", st.TotalTax)
		add("state", "total_payments", st.TotalPayments)
		add("state", "net_due", st.NetDue)
		add("state", "refund", st.Refund)
		add("state", "effective_rate", st.EffectiveRate)
	}
	if c := report.Combined; c != nil {
		add("combined", "total_liability", c.TotalLiability)
		add("combined", "total_withheld", c.TotalWithheld)
		add("combined", "net_owed", c.NetOwed)
		add("combined", "effective_rate", c.EffectiveRate)
	}
	return items
}

func (c CSVFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Section", "Item", "Amount"}); err != nil {
		return nil, err
	}
	for _, li := range LineItems(report) {
		if err := w.Write([]string{li.Section, li.Item, li.Amount.StringFixed(2)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
