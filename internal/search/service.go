// Package search wires the keyword planner, the aggregator, the
// language filter and the scoring pipeline into the one call the UI
// makes: Search(request) -> ranked listings.
package search

import (
	"context"
	"log"
	"strings"
	"time"

	"jobradar-engine/internal/aggregate"
	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/keywords"
	"jobradar-engine/internal/lang"
	"jobradar-engine/internal/score"
	"jobradar-engine/internal/source"
	"jobradar-engine/internal/source/util"
)

const DefaultMaxResults = 50

type Service struct {
	agg  *aggregate.Aggregator
	pipe *score.Pipeline

	// OnEvent, when set, receives progress notifications for the SSE
	// hub. Never required for correctness.
	OnEvent func(typ string, data map[string]any)
}

func NewService(agg *aggregate.Aggregator, pipe *score.Pipeline) *Service {
	return &Service{agg: agg, pipe: pipe}
}

// Search runs one complete search. It never fails for "no results";
// all source and scoring failures degrade to absence of data. The
// returned list is capped at req.MaxResults.
func (s *Service) Search(ctx context.Context, req domain.SearchRequest) []domain.ScoredListing {
	if req.MaxResults <= 0 {
		req.MaxResults = DefaultMaxResults
	}

	terms := s.planTerms(req)
	s.emit("search_started", map[string]any{"terms": terms})

	var wanted func(string) bool
	if len(req.Sources) > 0 {
		wanted = req.WantsSource
	}

	// Per-keyword batches are already signature-deduplicated by the
	// aggregator; across keywords the same posting legitimately shows
	// up again, so the merge dedups by canonical URL, first-seen
	// keyword wins.
	seenURL := map[string]bool{}
	var merged []domain.Listing

	for _, term := range terms {
		if ctx.Err() != nil {
			break
		}
		batch := s.agg.Run(ctx, source.Query{Keywords: term, Location: req.Location}, wanted)
		kept := 0
		for _, l := range batch {
			if !req.AcceptsLanguage(lang.Classify(l)) {
				continue
			}
			u := util.CanonicalURL(l.URL)
			if u == "" || seenURL[u] {
				continue
			}
			seenURL[u] = true
			merged = append(merged, l)
			kept++
		}
		log.Printf("[search] term=%q found=%d kept=%d total=%d", term, len(batch), kept, len(merged))
		s.emit("term_done", map[string]any{"term": term, "found": len(batch), "kept": kept})
	}

	if len(merged) == 0 {
		s.emit("search_done", map[string]any{"results": 0})
		return []domain.ScoredListing{}
	}

	start := time.Now()
	out := s.pipe.Score(ctx, merged, req.Profile)
	s.emit("scoring_done", map[string]any{"scored": countScored(out), "dur_ms": time.Since(start).Milliseconds()})

	if len(out) > req.MaxResults {
		out = out[:req.MaxResults]
	}
	s.emit("search_done", map[string]any{"results": len(out)})
	return out
}

func (s *Service) planTerms(req domain.SearchRequest) []string {
	if kw := strings.TrimSpace(req.Keywords); kw != "" {
		return []string{kw}
	}
	return keywords.Plan(req.Profile)
}

func (s *Service) emit(typ string, data map[string]any) {
	if s.OnEvent != nil {
		s.OnEvent(typ, data)
	}
}

func countScored(in []domain.ScoredListing) int {
	n := 0
	for _, l := range in {
		if l.Scored() {
			n++
		}
	}
	return n
}
