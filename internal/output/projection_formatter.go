package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/tax-estimator/internal/domain"
)

// FormatProjectionText renders the projection assumptions followed by the
// full estimate built from the projected inputs.
func FormatProjectionText(p *domain.Projection, report *domain.TaxReport) ([]byte, error) {
	var buf bytes.Buffer
	a := p.Assumptions

	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintf(&buf, "  %d FULL-YEAR PROJECTION FROM PAYSTUB DATED %s\n", p.Inputs.TaxYear, a.PayDate.Format("2006-01-02"))
	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	text(&buf, "Share of Year Elapsed", FormatPercentage(a.YearFraction.Mul(hundredPct)))
	line(&buf, "YTD Base Salary", a.YTDBaseSalary)
	line(&buf, "Projected Base Salary", a.ProjectedBaseSalary)
	line(&buf, "YTD RSU Income", a.YTDRSUIncome)
	line(&buf, fmt.Sprintf("Future RSU Vests (%d)", a.FutureVestCount), a.FutureRSUIncome)
	line(&buf, fmt.Sprintf("Future ESPP Discount (%d)", a.FutureESPPCount), a.FutureESPPDiscount)
	line(&buf, "Projected RSU Income", a.TotalProjectedRSU)
	subtotal(&buf, "-")
	line(&buf, "Projected W-2 Wages", a.ProjectedW2Wages)
	line(&buf, "Projected Federal Withholding", a.ProjectedFedWithheld)
	line(&buf, "Projected CA Withholding", a.ProjectedStateWithheld)
	if a.PlannedSalesCount > 0 {
		line(&buf, fmt.Sprintf("Planned Sale Gains (%d)", a.PlannedSalesCount), a.TotalPlannedGains)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "  Base salary:  %s\n", a.MethodBase)
	fmt.Fprintf(&buf, "  RSU income:   %s\n", a.MethodRSU)
	fmt.Fprintf(&buf, "  Withholding:  %s\n", a.MethodWithholding)
	if !a.EstimatedStockPrice.IsZero() {
		fmt.Fprintf(&buf, "  Stock price estimate: %s\n", FormatCurrency(a.EstimatedStockPrice))
	}
	fmt.Fprintln(&buf)

	if report != nil {
		body, err := TextFormatter{}.Format(report)
		if err != nil {
			return nil, err
		}
		buf.Write(body)
	}
	return buf.Bytes(), nil
}

// projectionDocument is the JSON shape of a projection run.
type projectionDocument struct {
	Projection *domain.Projection `json:"projection"`
	Report     *domain.TaxReport  `json:"report,omitempty"`
}

// FormatProjectionJSON serializes the projection and its estimate together.
func FormatProjectionJSON(p *domain.Projection, report *domain.TaxReport) ([]byte, error) {
	return marshalJSON(projectionDocument{Projection: p, Report: report})
}
