// Package score attaches AI relevance scores to the top candidates of
// a search run via a local text-generation CLI, bounding cost with a
// concurrency cap, a per-batch deadline and a scoring cutoff.
package score

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"jobradar-engine/internal/domain"
)

const (
	DefaultConcurrency  = 5
	DefaultTopN         = 5
	DefaultBatchTimeout = 180 * time.Second
)

type Pipeline struct {
	runner       Runner
	concurrency  int
	topN         int
	batchTimeout time.Duration
}

func NewPipeline(runner Runner, concurrency, topN int, batchTimeout time.Duration) *Pipeline {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	if batchTimeout <= 0 {
		batchTimeout = DefaultBatchTimeout
	}
	return &Pipeline{
		runner:       runner,
		concurrency:  concurrency,
		topN:         topN,
		batchTimeout: batchTimeout,
	}
}

// Score runs the pipeline over the candidate list: the first topN
// listings get scored (bounded concurrency, batch deadline), the
// remainder passes through unscored.
//
// Degradation rules: a single failed or timed-out call leaves that one
// listing unscored; a batch deadline leaves every unfinished listing
// unscored. Either way every input listing appears exactly once in the
// output, so the caller always gets a complete list.
func (p *Pipeline) Score(ctx context.Context, listings []domain.Listing, profile *domain.Profile) []domain.ScoredListing {
	if len(listings) == 0 {
		return nil
	}

	// No runner means scoring is disabled; everything passes through.
	if p.runner == nil {
		out := make([]domain.ScoredListing, 0, len(listings))
		for _, l := range listings {
			out = append(out, domain.Unscored(l))
		}
		return out
	}

	n := p.topN
	if n > len(listings) {
		n = len(listings)
	}
	head, tail := listings[:n], listings[n:]

	bctx, cancel := context.WithTimeout(ctx, p.batchTimeout)
	defer cancel()

	scored := make([]domain.ScoredListing, n)
	sem := make(chan struct{}, p.concurrency)

	var wg sync.WaitGroup
	for i, l := range head {
		wg.Add(1)
		go func(i int, l domain.Listing) {
			defer wg.Done()
			scored[i] = p.scoreOne(bctx, sem, l, profile)
		}(i, l)
	}
	wg.Wait()

	if bctx.Err() != nil {
		log.Printf("[score] batch deadline (%s) hit; remaining listings pass through unscored", p.batchTimeout)
	}

	out := mergeScored(scored)
	for _, l := range tail {
		out = append(out, domain.Unscored(l))
	}
	return out
}

// scoreOne always returns a ScoredListing for l, scored or not.
func (p *Pipeline) scoreOne(ctx context.Context, sem chan struct{}, l domain.Listing, profile *domain.Profile) domain.ScoredListing {
	select {
	case sem <- struct{}{}:
		defer func() { <-sem }()
	case <-ctx.Done():
		return domain.Unscored(l)
	}
	if ctx.Err() != nil {
		return domain.Unscored(l)
	}

	raw, err := p.runner.Run(ctx, BuildPrompt(l, profile))
	if err != nil {
		log.Printf("[score] run failed title=%q url=%q err=%v", l.Title, l.URL, err)
		return domain.Unscored(l)
	}

	res, err := ParseOutput(raw)
	if err != nil {
		log.Printf("[score] bad output title=%q err=%v", l.Title, err)
		return domain.Unscored(l)
	}

	s := res.Score
	return domain.ScoredListing{
		Listing:     l,
		Score:       &s,
		MatchReason: res.Reason,
		Missing:     res.Missing,
	}
}

// mergeScored sorts scored listings by score descending; unscored ones
// keep their original relative order after every scored one.
func mergeScored(in []domain.ScoredListing) []domain.ScoredListing {
	out := append([]domain.ScoredListing(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].Score, out[j].Score
		switch {
		case si == nil:
			return false
		case sj == nil:
			return true
		default:
			return *si > *sj
		}
	})
	return out
}
