package main

import (
	"fmt"

	"github.com/rpgo/tax-estimator/internal/config"
	"github.com/spf13/cobra"
)

func runExample(cmd *cobra.Command, args []string) error {
	filename := "tax_inputs_example.yaml"
	if len(args) == 1 {
		filename = args[0]
	}

	parser := config.NewInputParser()
	if err := config.SaveInputs(parser.CreateExampleInputs(), filename); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Example inputs written to %s\n", filename)
	fmt.Fprintf(cmd.OutOrStdout(), "Run: taxest estimate %s\n", filename)
	return nil
}
