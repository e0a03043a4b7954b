package main

import (
	"io"

	"github.com/rpgo/tax-estimator/internal/calculation"
	"github.com/rpgo/tax-estimator/internal/config"
	"github.com/rpgo/tax-estimator/internal/output"
	"github.com/spf13/cobra"
)

func runBonus(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()
	inputs, err := parser.LoadBonusFile(args[0])
	if err != nil {
		return err
	}
	lookup, err := priceLookup()
	if err != nil {
		return err
	}

	cmp, err := calculation.RunBonusScenarios(cmd.Context(), *inputs, lookup)
	if err != nil {
		return err
	}

	return emit(cmd, "bonus_allocation",
		func(w io.Writer) error { return output.RenderBonus(w, cmp, outFormat) }, nil)
}
