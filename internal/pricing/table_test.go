package pricing

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `date,ticker,close
2024-02-29,acme,181.50
2024-03-01,ACME,183.00
2024-03-04,ACME,179.25
2023-08-01,ACME,150.00
`

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTableLookupClosestTradingDay(t *testing.T) {
	table, err := ReadTable(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	tests := []struct {
		name        string
		ticker      string
		date        time.Time
		resolved    bool
		price       string
		tradingDate time.Time
		description string
	}{
		{
			name:        "exact",
			ticker:      "ACME",
			date:        day(2024, 3, 1),
			resolved:    true,
			price:       "183",
			tradingDate: day(2024, 3, 1),
			description: "A trading day returns its own close",
		},
		{
			name:        "weekend",
			ticker:      "acme",
			date:        day(2024, 3, 3),
			resolved:    true,
			price:       "179.25",
			tradingDate: day(2024, 3, 4),
			description: "Sunday resolves to Monday, one day away",
		},
		{
			name:        "window miss",
			ticker:      "ACME",
			date:        day(2023, 9, 1),
			resolved:    false,
			description: "No close within five days is unresolved",
		},
		{
			name:        "unknown ticker",
			ticker:      "ZZZ",
			date:        day(2024, 3, 1),
			resolved:    false,
			description: "Tickers absent from the table are unresolved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := table.Price(context.Background(), tt.ticker, tt.date)
			assert.Equal(t, tt.resolved, out.Resolved, tt.description)
			if !tt.resolved {
				assert.NotEmpty(t, out.Reason)
				return
			}
			assert.True(t, out.Price.Equal(decimal.RequireFromString(tt.price)), "%s: got %s", tt.description, out.Price)
			assert.True(t, out.TradingDate.Equal(tt.tradingDate))
		})
	}
}

func TestReadTableRejectsBadRows(t *testing.T) {
	_, err := ReadTable(strings.NewReader("date,ticker,close\n2024-13-01,ACME,1\n"))
	assert.Error(t, err)

	_, err = ReadTable(strings.NewReader("date,ticker,close\n2024-01-02,ACME,abc\n"))
	assert.Error(t, err)
}

func TestTableLookupCancelledContext(t *testing.T) {
	table, err := ReadTable(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := table.Price(ctx, "ACME", day(2024, 3, 1))
	assert.False(t, out.Resolved)
}
