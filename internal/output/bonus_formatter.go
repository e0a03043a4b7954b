package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/rpgo/tax-estimator/internal/domain"
)

// FormatBonusText renders the RSU/ISO comparison table.
func FormatBonusText(cmp *domain.BonusComparison) []byte {
	var buf bytes.Buffer
	in := cmp.Inputs

	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintln(&buf, "  BONUS ALLOCATION: RSU vs ISO")
	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	line(&buf, "Bonus Amount", in.BonusAmount)
	line(&buf, "Strike / Grant Price", in.StrikePrice)
	line(&buf, "Target Price", in.TargetPrice)
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "  %-9s %11s %11s %15s %15s %15s %9s\n",
		"RSU/ISO", "RSU Shares", "ISO Shares", "RSU Proceeds", "ISO Proceeds", "Total", "Return")
	fmt.Fprintln(&buf, "  "+strings.Repeat("-", ruleWidth-2))
	for _, a := range cmp.Allocations {
		marker := " "
		if a.Split.Name() == cmp.Best {
			marker = "*"
		}
		fmt.Fprintf(&buf, "%s %-9s %11s %11s %15s %15s %15s %9s\n",
			marker, a.Split.Name(),
			a.RSUShares.StringFixed(2), a.ISOSharesTotal.StringFixed(2),
			FormatCurrency(a.RSUProceeds), FormatCurrency(a.ISOProceeds), FormatCurrency(a.TotalProceeds),
			FormatPercentage(a.TotalReturnPercent))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "  Best allocation at target: %s\n", cmp.Best)
	fmt.Fprintln(&buf, "  Proceeds are pre-tax; ISOs exercised cashless at the target price.")
	return buf.Bytes()
}

// FormatBonusCSV exports one row per split.
func FormatBonusCSV(cmp *domain.BonusComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Split", "RSUPercent", "ISOPercent", "RSUShares", "ISOSharesBase", "ISOSharesTotal", "RSUProceeds", "ISOProceeds", "TotalProceeds", "ReturnPercent", "Best"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, a := range cmp.Allocations {
		row := []string{
			a.Split.Name(),
			a.Split.RSUPercent.String(),
			a.Split.ISOPercent.String(),
			a.RSUShares.StringFixed(4),
			a.ISOSharesBase.StringFixed(4),
			a.ISOSharesTotal.StringFixed(4),
			a.RSUProceeds.StringFixed(2),
			a.ISOProceeds.StringFixed(2),
			a.TotalProceeds.StringFixed(2),
			a.TotalReturnPercent.StringFixed(2),
			boolToString(a.Split.Name() == cmp.Best),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
