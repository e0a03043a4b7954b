package main

import (
	"fmt"
	"strings"

	"github.com/rpgo/tax-estimator/internal/config"
	"github.com/rpgo/tax-estimator/internal/logging"
	"github.com/rpgo/tax-estimator/internal/output"
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	logLevel  string
	logFormat string
	outFormat string
	outputDir string
	priceFile string
	envFile   string
	saveFiles bool

	stGains string
	ltGains string

	tablesYear   int
	tablesStatus string

	settings config.Settings

	rootCmd = &cobra.Command{
		Use:   "taxest",
		Short: "Estimate federal and California income tax liability",
		Long: `taxest estimates a year's federal and California income tax from W-2,
1099 and 1098 figures plus RSU and ESPP sales, compares RSU/ISO bonus
allocations, and projects a full year from a mid-year paystub.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	// --- Estimates ---
	estimateCmd = &cobra.Command{
		Use:   "estimate [inputs.yaml]",
		Short: "Compute the liability, payments and refund or amount due for a tax year",
		Args:  cobra.ExactArgs(1),
		RunE:  runEstimate, // Defined in estimate.go
	}
	projectCmd = &cobra.Command{
		Use:   "project [projection.yaml]",
		Short: "Project a full year from a mid-year paystub and estimate it",
		Args:  cobra.ExactArgs(1),
		RunE:  runProject, // Defined in project.go
	}

	// --- Equity ---
	bonusCmd = &cobra.Command{
		Use:   "bonus [bonus.yaml]",
		Short: "Compare RSU/ISO splits of an equity bonus at a target price",
		Args:  cobra.ExactArgs(1),
		RunE:  runBonus, // Defined in bonus.go
	}

	// --- Utilities ---
	tablesCmd = &cobra.Command{
		Use:   "tables",
		Short: "Print the tax tables used for a year and filing status",
		Args:  cobra.NoArgs,
		RunE:  runTables, // Defined in tables.go
	}
	exampleCmd = &cobra.Command{
		Use:   "example [output.yaml]",
		Short: "Write an example inputs file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExample, // Defined in example.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, error (default from TAXEST_LOG_LEVEL or warn)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Log format: text or json (default from TAXEST_LOG_FORMAT or text)")
	rootCmd.PersistentFlags().StringVarP(&outFormat, "format", "f", "text",
		"Output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "",
		"Directory for saved reports (default from TAXEST_OUTPUT_DIR or .)")
	rootCmd.PersistentFlags().StringVar(&priceFile, "prices", "",
		"CSV of daily closing prices (ticker,date,close) used to fill missing FMVs")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file with TAXEST_* settings")
	rootCmd.PersistentFlags().BoolVar(&saveFiles, "save", false, "Write the report to a timestamped file instead of stdout")

	rootCmd.AddCommand(estimateCmd)
	estimateCmd.Flags().StringVar(&stGains, "st-gains", "", "Override short-term capital gains")
	estimateCmd.Flags().StringVar(&ltGains, "lt-gains", "", "Override long-term capital gains")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(bonusCmd)

	rootCmd.AddCommand(tablesCmd)
	tablesCmd.Flags().IntVar(&tablesYear, "year", 0, "Tax year (default: latest published)")
	tablesCmd.Flags().StringVar(&tablesStatus, "status", "single", "Filing status: single, mfj, mfs, hoh")

	rootCmd.AddCommand(exampleCmd)
}

// setup loads settings, lets explicit flags win over the environment and
// installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	s, err := config.LoadEnv(envFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		s.LogLevel = logLevel
	}
	if logFormat != "" {
		s.LogFormat = logFormat
	}
	if outputDir != "" {
		s.OutputDir = outputDir
	}
	if priceFile != "" {
		s.PriceFile = priceFile
	}
	settings = s

	if err := logging.InitLogger(settings.LogLevel, settings.LogFormat); err != nil {
		return fmt.Errorf("invalid logging settings: %w", err)
	}
	return nil
}
