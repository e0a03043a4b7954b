package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Environment variables read by LoadEnv.
const (
	EnvLogLevel        = "TAXEST_LOG_LEVEL"
	EnvLogFormat       = "TAXEST_LOG_FORMAT"
	EnvPriceFile       = "TAXEST_PRICE_FILE"
	EnvOutputDir       = "TAXEST_OUTPUT_DIR"
	EnvInflationFactor = "TAXEST_INFLATION"
)

// Settings are the process-level knobs that do not belong in an input document.
type Settings struct {
	LogLevel  string
	LogFormat string
	// PriceFile is a CSV of closing prices (date,ticker,close). Empty means
	// no price source.
	PriceFile string
	OutputDir string
	// InflationFactor is the annual rate used to derive tax tables for years
	// after the latest published one. Zero disables derivation.
	InflationFactor decimal.Decimal
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:        "warn",
		LogFormat:       "text",
		OutputDir:       ".",
		InflationFactor: decimal.Zero,
	}
}

// LoadEnv reads the optional dotenv files (".env" when none are named) into
// the process environment, then builds Settings from TAXEST_* variables.
// Variables already set in the environment win over the file.
func LoadEnv(files ...string) (Settings, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	s := DefaultSettings()
	s.LogLevel = getEnv(EnvLogLevel, s.LogLevel)
	s.LogFormat = getEnv(EnvLogFormat, s.LogFormat)
	s.PriceFile = getEnv(EnvPriceFile, s.PriceFile)
	s.OutputDir = getEnv(EnvOutputDir, s.OutputDir)

	if raw := getEnv(EnvInflationFactor, ""); raw != "" {
		factor, err := decimal.NewFromString(raw)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", EnvInflationFactor, err)
		}
		if factor.IsNegative() {
			return Settings{}, fmt.Errorf("%s must not be negative, got %s", EnvInflationFactor, factor)
		}
		s.InflationFactor = factor
	}
	return s, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}
