package main

import (
	"encoding/json"

	"github.com/rpgo/tax-estimator/internal/calculation"
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// runTables dumps the profile an estimate for --year / --status would use,
// including years derived with TAXEST_INFLATION.
func runTables(cmd *cobra.Command, args []string) error {
	status, err := domain.ParseFilingStatus(tablesStatus)
	if err != nil {
		return err
	}
	year := tablesYear
	if year == 0 {
		year = calculation.LatestYear()
	}

	profile, err := calculation.ResolveProfile(year, status, settings.InflationFactor)
	if err != nil {
		return err
	}
	params := profile.Params()

	out := cmd.OutOrStdout()
	if output.NormalizeFormatName(outFormat) == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(params)
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(params); err != nil {
		return err
	}
	return enc.Close()
}
