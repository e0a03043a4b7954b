package pricing

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultWindowDays is how far from the requested date a close may be taken
// when the market was shut on the requested day.
const DefaultWindowDays = 5

type closeRow struct {
	date  time.Time
	price decimal.Decimal
}

// TableLookup serves closing prices from an in-memory table, picking the
// trading day closest to the requested date within WindowDays.
type TableLookup struct {
	WindowDays int
	closes     map[string][]closeRow
}

// NewTableLookup creates an empty table.
func NewTableLookup() *TableLookup {
	return &TableLookup{WindowDays: DefaultWindowDays, closes: make(map[string][]closeRow)}
}

// Add records a closing price.
func (t *TableLookup) Add(ticker string, date time.Time, price decimal.Decimal) {
	key := NormalizeTicker(ticker)
	rows := append(t.closes[key], closeRow{date: date, price: price})
	sort.Slice(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })
	t.closes[key] = rows
}

// LoadTableFile reads a CSV file with a date,ticker,close header.
func LoadTableFile(filename string) (*TableLookup, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open price file %s: %w", filename, err)
	}
	defer f.Close()
	table, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read price file %s: %w", filename, err)
	}
	return table, nil
}

// ReadTable parses CSV rows of date (YYYY-MM-DD), ticker and close.
func ReadTable(r io.Reader) (*TableLookup, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = 3

	table := NewTableLookup()
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "date") {
			continue
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad date %q: %w", line, record[0], err)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad close %q: %w", line, record[2], err)
		}
		table.Add(record[1], date, price)
	}
	return table, nil
}

// Price implements Lookup.
func (t *TableLookup) Price(ctx context.Context, ticker string, date time.Time) Outcome {
	if err := ctx.Err(); err != nil {
		return Unresolved(ticker, date, err.Error())
	}
	rows := t.closes[NormalizeTicker(ticker)]
	if len(rows) == 0 {
		return Unresolved(ticker, date, fmt.Sprintf("no prices for %s", NormalizeTicker(ticker)))
	}

	window := time.Duration(t.WindowDays) * 24 * time.Hour
	best := -1
	var bestGap time.Duration
	for i, row := range rows {
		gap := row.date.Sub(date)
		if gap < 0 {
			gap = -gap
		}
		if gap > window {
			continue
		}
		if best < 0 || gap < bestGap {
			best, bestGap = i, gap
		}
	}
	if best < 0 {
		return Unresolved(ticker, date, fmt.Sprintf("no close for %s within %d days of %s",
			NormalizeTicker(ticker), t.WindowDays, date.Format("2006-01-02")))
	}
	return Found(ticker, date, rows[best].price, rows[best].date)
}
