package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobradar-engine/internal/aggregate"
	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/score"
	"jobradar-engine/internal/source"
)

type stubAdapter struct {
	name     string
	err      error
	byTerm   map[string][]domain.Listing // keyed on query keywords
	listings []domain.Listing            // used when byTerm is nil
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Available(ctx context.Context) bool { return true }

func (s *stubAdapter) Search(ctx context.Context, q source.Query) ([]domain.Listing, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.byTerm != nil {
		return s.byTerm[q.Keywords], nil
	}
	return s.listings, nil
}

type tableRunner struct{ scores map[string]int }

func (r *tableRunner) Run(ctx context.Context, prompt string) ([]byte, error) {
	for title, s := range r.scores {
		if strings.Contains(prompt, "Title: "+title+"\n") {
			return []byte(fmt.Sprintf(`{"score": %d, "reason": "fits"}`, s)), nil
		}
	}
	return nil, errors.New("unknown listing")
}

func newService(adapters []source.Adapter, runner score.Runner) *Service {
	agg := aggregate.New(adapters, time.Second)
	pipe := score.NewPipeline(runner, 2, 5, time.Second)
	return NewService(agg, pipe)
}

func l(title, company, loc, url string, age time.Duration) domain.Listing {
	return domain.Listing{
		Title: title, Company: company, Location: loc,
		URL: url, Source: "stub",
		ScrapedAt: time.Now().Add(-age),
	}
}

// Twelve raw candidates containing three duplicated postings (same
// title/company/location on two boards) should yield nine uniques,
// with the scored head ranked by score and the rest by recency.
func TestSearchDedupsAndRanks(t *testing.T) {
	mk := func(i int, age time.Duration) domain.Listing {
		return l(fmt.Sprintf("role-%d", i), "acme", "gent", fmt.Sprintf("https://a.be/%d", i), age)
	}
	var board1, board2 []domain.Listing
	for i := 0; i < 9; i++ {
		board1 = append(board1, mk(i, time.Duration(i)*time.Minute))
	}
	for i := 0; i < 3; i++ {
		dup := mk(i, time.Duration(i)*time.Minute)
		dup.URL = fmt.Sprintf("https://b.be/%d", i) // different URL, same signature
		board2 = append(board2, dup)
	}

	svc := newService([]source.Adapter{
		&stubAdapter{name: "one", listings: board1},
		&stubAdapter{name: "two", listings: board2},
	}, &tableRunner{scores: map[string]int{
		"role-0": 20, "role-1": 80, "role-2": 50, "role-3": 70, "role-4": 10,
	}})

	out := svc.Search(context.Background(), domain.SearchRequest{
		Keywords:   "developer",
		MaxResults: 10,
	})

	require.Len(t, out, 9, "3 duplicate pairs collapse")

	// Head of 5 scored, by score descending.
	wantHead := []string{"role-1", "role-3", "role-2", "role-0", "role-4"}
	for i, want := range wantHead {
		require.True(t, out[i].Scored(), "position %d", i)
		assert.Equal(t, want, out[i].Title)
	}

	// Tail unscored, most recent first.
	wantTail := []string{"role-5", "role-6", "role-7", "role-8"}
	for i, want := range wantTail {
		pos := len(wantHead) + i
		assert.False(t, out[pos].Scored())
		assert.Equal(t, want, out[pos].Title)
	}
}

func TestSearchAllSourcesFailingIsEmptyNotError(t *testing.T) {
	svc := newService([]source.Adapter{
		&stubAdapter{name: "a", err: errors.New("down")},
		&stubAdapter{name: "b", err: errors.New("down too")},
	}, nil)

	out := svc.Search(context.Background(), domain.SearchRequest{Keywords: "developer"})
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestSearchCapsAtMaxResults(t *testing.T) {
	var listings []domain.Listing
	for i := 0; i < 20; i++ {
		listings = append(listings, l(fmt.Sprintf("engineer-%d", i), "acme", "gent",
			fmt.Sprintf("https://a.be/%d", i), time.Duration(i)*time.Minute))
	}
	svc := newService([]source.Adapter{&stubAdapter{name: "a", listings: listings}}, nil)

	out := svc.Search(context.Background(), domain.SearchRequest{Keywords: "engineer", MaxResults: 7})
	assert.Len(t, out, 7)
}

func TestSearchFiltersByLanguage(t *testing.T) {
	svc := newService([]source.Adapter{&stubAdapter{name: "a", listings: []domain.Listing{
		l("Software Engineer", "acme", "Gent", "https://a.be/1", 0),
		l("Vacature: magazijnier", "acme", "Hasselt", "https://a.be/2", 0),
		l("Comptable (h/f)", "acme", "Namur", "https://a.be/3", 0),
	}}}, nil)

	out := svc.Search(context.Background(), domain.SearchRequest{
		Keywords:  "any",
		Languages: []string{"nl"},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "Vacature: magazijnier", out[0].Title)
}

func TestSearchDedupsByURLAcrossTerms(t *testing.T) {
	// The same posting found under two planner terms must appear once;
	// the tracking params must not defeat the dedup.
	shared := "https://a.be/offer/42"
	svc := newService([]source.Adapter{&stubAdapter{name: "a", byTerm: map[string][]domain.Listing{
		"Platform Engineer": {l("Platform Engineer", "acme", "gent", shared+"?utm_source=x", 0)},
		"Kubernetes":        {l("Platform Engineer at Acme", "acme bv", "gent", shared+"?utm_source=y", 0)},
	}}}, nil)

	out := svc.Search(context.Background(), domain.SearchRequest{
		Profile: &domain.Profile{
			Skills: []string{"Kubernetes"},
			Experience: []domain.Experience{
				{Position: "Platform Engineer", StartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
			},
		},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "Platform Engineer", out[0].Title, "first-seen term wins")
}

func TestSearchHonorsSourceFilter(t *testing.T) {
	svc := newService([]source.Adapter{
		&stubAdapter{name: "wanted", listings: []domain.Listing{l("Developer A", "x", "gent", "https://a.be/1", 0)}},
		&stubAdapter{name: "ignored", listings: []domain.Listing{l("Developer B", "y", "gent", "https://b.be/1", 0)}},
	}, nil)

	out := svc.Search(context.Background(), domain.SearchRequest{
		Keywords: "developer",
		Sources:  []string{"wanted"},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "Developer A", out[0].Title)
}

func TestSearchEmitsProgressEvents(t *testing.T) {
	svc := newService([]source.Adapter{&stubAdapter{name: "a", listings: []domain.Listing{
		l("Developer", "acme", "gent", "https://a.be/1", 0),
	}}}, nil)

	var types []string
	svc.OnEvent = func(typ string, data map[string]any) { types = append(types, typ) }

	svc.Search(context.Background(), domain.SearchRequest{Keywords: "developer"})
	assert.Equal(t, []string{"search_started", "term_done", "scoring_done", "search_done"}, types)
}
