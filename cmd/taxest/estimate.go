package main

import (
	"fmt"
	"io"

	"github.com/rpgo/tax-estimator/internal/config"
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/output"
	money "github.com/rpgo/tax-estimator/pkg/decimal"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func runEstimate(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()
	inputs, err := parser.LoadFromFile(args[0])
	if err != nil {
		return err
	}
	if err := applyGainOverrides(cmd, inputs); err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}
	report, err := engine.Estimate(cmd.Context(), *inputs)
	if err != nil {
		return err
	}

	return emit(cmd, "tax_report",
		func(w io.Writer) error { return output.Render(w, report, outFormat) },
		func() ([]string, error) { return output.GenerateReport(report, outFormat, settings.OutputDir) })
}

// applyGainOverrides lets --st-gains / --lt-gains replace the reconciled totals.
func applyGainOverrides(cmd *cobra.Command, inputs *domain.TaxInputs) error {
	parse := func(flag, value string) (*decimal.Decimal, error) {
		if !cmd.Flags().Changed(flag) {
			return nil, nil
		}
		m, err := money.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("--%s: invalid amount %q: %w", flag, value, err)
		}
		return &m.Decimal, nil
	}

	st, err := parse("st-gains", stGains)
	if err != nil {
		return err
	}
	lt, err := parse("lt-gains", ltGains)
	if err != nil {
		return err
	}
	if st != nil {
		inputs.Overrides.ShortTermGains = st
	}
	if lt != nil {
		inputs.Overrides.LongTermGains = lt
	}
	return nil
}
