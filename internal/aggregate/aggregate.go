// Package aggregate fans one keyword out across every enabled board
// adapter, tolerates individual failures, and returns one deduplicated
// candidate list sorted by recency.
package aggregate

import (
	"context"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/source"
	"jobradar-engine/internal/source/util"
)

const DefaultTimeout = 45 * time.Second

type Aggregator struct {
	adapters []source.Adapter
	timeout  time.Duration
}

func New(adapters []source.Adapter, timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Aggregator{adapters: adapters, timeout: timeout}
}

// Adapters returns the configured adapters, for the diagnostics
// endpoint.
func (a *Aggregator) Adapters() []source.Adapter {
	return a.adapters
}

// Run queries every adapter admitted by wanted (nil means all)
// concurrently and merges whatever arrives before the deadline.
//
// Run itself never fails: a board that errors or panics contributes
// nothing, a board that outlives the deadline is abandoned, and the
// all-boards-down case is an empty list, not an error.
func (a *Aggregator) Run(ctx context.Context, q source.Query, wanted func(name string) bool) []domain.Listing {
	active := a.adapters
	if wanted != nil {
		active = nil
		for _, ad := range a.adapters {
			if wanted(ad.Name()) {
				active = append(active, ad)
			}
		}
	}
	if len(active) == 0 {
		return nil
	}

	rctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	// Buffered to len(active) so an abandoned straggler can still
	// complete its send and exit instead of leaking forever.
	results := make(chan []domain.Listing, len(active))

	var g errgroup.Group
	for _, ad := range active {
		ad := ad
		g.Go(func() error {
			defer func() {
				if rec := recover(); rec != nil {
					log.Printf("[source:%s] panic recovered: %v", ad.Name(), rec)
				}
			}()

			listings, err := ad.Search(rctx, q)
			if err != nil {
				log.Printf("[source:%s] error: %v", ad.Name(), err)
				return nil // best-effort: don't cancel siblings
			}
			results <- listings
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-rctx.Done():
		log.Printf("[aggregate] timeout after %s keywords=%q; abandoning slow sources", a.timeout, q.Keywords)
	}

	// Collect whatever made it in time; partial output of abandoned
	// tasks is discarded with them.
	var all []domain.Listing
	for {
		select {
		case batch := <-results:
			all = append(all, batch...)
		default:
			out := Dedup(all)
			sort.SliceStable(out, func(i, j int) bool {
				return out[i].ScrapedAt.After(out[j].ScrapedAt)
			})
			return out
		}
	}
}

// Dedup keeps the first occurrence per signature, in arrival order.
// Idempotent: Dedup(Dedup(L)) == Dedup(L).
func Dedup(in []domain.Listing) []domain.Listing {
	seen := map[string]bool{}
	out := make([]domain.Listing, 0, len(in))
	for _, l := range in {
		sig := util.Signature(l.Title, l.Company, l.Location)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		out = append(out, l)
	}
	return out
}
