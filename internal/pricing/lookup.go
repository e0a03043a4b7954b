// Package pricing resolves historical closing prices for equity lots.
//
// A lookup never fails with an error: it returns an Outcome that is either a
// resolved price or Unresolved with a reason. Callers decide per item whether
// to skip and continue.
package pricing

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Outcome is the result of one price request.
type Outcome struct {
	Ticker   string
	Date     time.Time
	Price    decimal.Decimal
	Resolved bool
	// TradingDate is the date the price was actually observed on.
	TradingDate time.Time
	Reason      string
}

// Found builds a resolved outcome.
func Found(ticker string, date time.Time, price decimal.Decimal, tradingDate time.Time) Outcome {
	return Outcome{Ticker: ticker, Date: date, Price: price, Resolved: true, TradingDate: tradingDate}
}

// Unresolved builds an outcome explaining why no price is available.
func Unresolved(ticker string, date time.Time, reason string) Outcome {
	return Outcome{Ticker: ticker, Date: date, Reason: reason}
}

// Lookup resolves the closing price of ticker on date.
type Lookup interface {
	Price(ctx context.Context, ticker string, date time.Time) Outcome
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context, ticker string, date time.Time) Outcome

func (f LookupFunc) Price(ctx context.Context, ticker string, date time.Time) Outcome {
	return f(ctx, ticker, date)
}

// None is a Lookup that never resolves. It is the default when no price
// source is configured.
var None Lookup = LookupFunc(func(_ context.Context, ticker string, date time.Time) Outcome {
	return Unresolved(ticker, date, "no price source configured")
})

// Request identifies one (ticker, date) price.
type Request struct {
	Ticker string
	Date   time.Time
}

// Key is the canonical cache and map key for the request.
func (r Request) Key() string {
	return NormalizeTicker(r.Ticker) + "|" + r.Date.Format("2006-01-02")
}

// NormalizeTicker upper-cases and trims a symbol.
func NormalizeTicker(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}
