package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rpgo/tax-estimator/internal/calculation"
	"github.com/rpgo/tax-estimator/internal/logging"
	"github.com/rpgo/tax-estimator/internal/output"
	"github.com/rpgo/tax-estimator/internal/pricing"
	"github.com/spf13/cobra"
)

// priceLookup returns the configured closing-price source, or nil when no
// price file is set.
func priceLookup() (pricing.Lookup, error) {
	if settings.PriceFile == "" {
		return nil, nil
	}
	table, err := pricing.LoadTableFile(settings.PriceFile)
	if err != nil {
		return nil, err
	}
	logging.L.Debug("price table loaded", "file", settings.PriceFile)
	return pricing.NewCachedLookup(table), nil
}

// newEngine builds an estimator wired to the process logger, price source and
// inflation setting.
func newEngine() (*calculation.Engine, error) {
	lookup, err := priceLookup()
	if err != nil {
		return nil, err
	}
	engine := calculation.NewEngine()
	engine.SetLogger(logging.ForCalculation())
	engine.SetPriceLookup(lookup)
	engine.AnnualInflation = settings.InflationFactor
	return engine, nil
}

// emit writes rendered output to stdout, or to a timestamped file under the
// output directory when --save is set.
func emit(cmd *cobra.Command, prefix string, render func(w io.Writer) error, save func() ([]string, error)) error {
	if !saveFiles {
		return render(cmd.OutOrStdout())
	}
	var files []string
	var err error
	if save != nil {
		files, err = save()
	} else {
		var buf bytes.Buffer
		if err = render(&buf); err == nil {
			var name string
			name, err = saveRendered(buf.Bytes(), prefix)
			files = []string{name}
		}
	}
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
	}
	return nil
}

func saveRendered(data []byte, prefix string) (string, error) {
	return output.SaveRendered(data, settings.OutputDir, prefix, outFormat)
}
