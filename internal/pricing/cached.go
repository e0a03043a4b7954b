package pricing

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	defaultCacheTTL     = 15 * time.Minute
	defaultCacheCleanup = 30 * time.Minute
)

// CachedLookup memoizes outcomes of an underlying Lookup and throttles the
// calls that reach it. Unresolved outcomes are cached too so a missing
// ticker is not requested again for every lot.
type CachedLookup struct {
	source  Lookup
	cache   *cache.Cache
	limiter *rate.Limiter
}

// NewCachedLookup wraps source with a cache and a limiter allowing a burst of
// 30 requests refilled every 100ms.
func NewCachedLookup(source Lookup) *CachedLookup {
	return NewCachedLookupWithLimiter(source, rate.NewLimiter(rate.Every(100*time.Millisecond), 30))
}

// NewCachedLookupWithLimiter wraps source with a caller-supplied limiter. A nil
// limiter disables throttling.
func NewCachedLookupWithLimiter(source Lookup, limiter *rate.Limiter) *CachedLookup {
	if source == nil {
		source = None
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &CachedLookup{
		source:  source,
		cache:   cache.New(defaultCacheTTL, defaultCacheCleanup),
		limiter: limiter,
	}
}

// Price implements Lookup.
func (c *CachedLookup) Price(ctx context.Context, ticker string, date time.Time) Outcome {
	key := Request{Ticker: ticker, Date: date}.Key()
	if cached, ok := c.cache.Get(key); ok {
		return cached.(Outcome)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		// Not cached: a cancelled context says nothing about the price.
		return Unresolved(ticker, date, err.Error())
	}
	out := c.source.Price(ctx, ticker, date)
	if ctx.Err() == nil {
		c.cache.Set(key, out, cache.DefaultExpiration)
	}
	return out
}

// Len reports how many outcomes are cached.
func (c *CachedLookup) Len() int {
	return c.cache.ItemCount()
}
