package pricing

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel requests in ResolveAll.
const DefaultConcurrency = 4

// ResolveAll resolves every distinct request concurrently and returns the
// outcomes keyed by Request.Key. Individual failures are Unresolved outcomes;
// the returned error is only the context's.
func ResolveAll(ctx context.Context, lookup Lookup, requests []Request, concurrency int) (map[string]Outcome, error) {
	if lookup == nil {
		lookup = None
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make(map[string]Outcome, len(requests))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	seen := make(map[string]bool, len(requests))
	for _, req := range requests {
		key := req.Key()
		if seen[key] {
			continue
		}
		seen[key] = true

		req := req
		g.Go(func() error {
			out := lookup.Price(gctx, req.Ticker, req.Date)
			mu.Lock()
			results[key] = out
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
