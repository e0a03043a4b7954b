package main

import (
	"io"

	"github.com/rpgo/tax-estimator/internal/calculation"
	"github.com/rpgo/tax-estimator/internal/config"
	"github.com/rpgo/tax-estimator/internal/output"
	"github.com/spf13/cobra"
)

func runProject(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()
	inputs, err := parser.LoadProjectionFile(args[0])
	if err != nil {
		return err
	}

	projection, err := calculation.ProjectFullYear(*inputs)
	if err != nil {
		return err
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}
	report, err := engine.Estimate(cmd.Context(), projection.Inputs)
	if err != nil {
		return err
	}

	return emit(cmd, "tax_projection",
		func(w io.Writer) error { return output.RenderProjection(w, projection, report, outFormat) }, nil)
}
