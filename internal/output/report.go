package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rpgo/tax-estimator/internal/domain"
)

// now is replaced in tests.
var now = time.Now

// WriteFormatted runs a formatter and writes output to a timestamped file in dir.
func WriteFormatted(f Formatter, report *domain.TaxReport, dir string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	return writeTimestamped(dir, fmt.Sprintf("tax_report_%d", report.Federal.TaxYear), extensionFor(f.Name()), data)
}

func writeTimestamped(dir, prefix, ext string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	filename := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", prefix, now().Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// GenerateReport writes the report in the requested format ("all" writes
// every registered format) and returns the files written.
func GenerateReport(report *domain.TaxReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range builtInFormatters {
			name, err := WriteFormatted(f, report, dir)
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	name, err := WriteFormatted(f, report, dir)
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// Render writes the report to w in the requested format.
func Render(w io.Writer, report *domain.TaxReport, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return unsupported(format)
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// RenderBonus writes a bonus comparison as text, json or csv.
func RenderBonus(w io.Writer, cmp *domain.BonusComparison, format string) error {
	var (
		data []byte
		err  error
	)
	switch NormalizeFormatName(format) {
	case "text":
		data = FormatBonusText(cmp)
	case "json":
		data, err = marshalJSON(cmp)
	case "csv":
		data, err = FormatBonusCSV(cmp)
	default:
		return unsupported(format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// RenderProjection writes a projection and its estimate as text or json.
func RenderProjection(w io.Writer, p *domain.Projection, report *domain.TaxReport, format string) error {
	var (
		data []byte
		err  error
	)
	switch NormalizeFormatName(format) {
	case "text":
		data, err = FormatProjectionText(p, report)
	case "json":
		data, err = FormatProjectionJSON(p, report)
	case "csv":
		if report == nil {
			return fmt.Errorf("%w: csv needs an estimate", ErrUnsupportedFormat)
		}
		data, err = CSVFormatter{}.Format(report)
	default:
		return unsupported(format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SaveRendered writes already rendered output to a timestamped file in dir.
func SaveRendered(data []byte, dir, prefix, format string) (string, error) {
	return writeTimestamped(dir, prefix, extensionFor(NormalizeFormatName(format)), data)
}

func unsupported(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
