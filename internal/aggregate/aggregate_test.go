package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/source"
)

// fakeAdapter is a scripted board: it returns its listings, or its
// error, or blocks until the context dies.
type fakeAdapter struct {
	name     string
	listings []domain.Listing
	err      error
	block    bool
	panic    bool
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Available(ctx context.Context) bool { return true }

func (f *fakeAdapter) Search(ctx context.Context, q source.Query) ([]domain.Listing, error) {
	if f.panic {
		panic("scripted panic")
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.listings, nil
}

func listing(title, company, loc string, age time.Duration) domain.Listing {
	return domain.Listing{
		Title:     title,
		Company:   company,
		Location:  loc,
		URL:       "https://example.be/" + title,
		Source:    "test",
		ScrapedAt: time.Now().Add(-age),
	}
}

func TestRunMergesAndSortsByRecency(t *testing.T) {
	a := New([]source.Adapter{
		&fakeAdapter{name: "a", listings: []domain.Listing{
			listing("old", "x", "gent", 2*time.Hour),
			listing("newest", "x", "gent", 0),
		}},
		&fakeAdapter{name: "b", listings: []domain.Listing{
			listing("middle", "y", "leuven", time.Hour),
		}},
	}, time.Second)

	out := a.Run(context.Background(), source.Query{Keywords: "dev"}, nil)
	require.Len(t, out, 3)
	assert.Equal(t, "newest", out[0].Title)
	assert.Equal(t, "middle", out[1].Title)
	assert.Equal(t, "old", out[2].Title)
}

func TestRunToleratesFailingSiblings(t *testing.T) {
	ok := listing("kept", "acme", "gent", 0)
	a := New([]source.Adapter{
		&fakeAdapter{name: "down", err: errors.New("boom")},
		&fakeAdapter{name: "panicky", panic: true},
		&fakeAdapter{name: "up", listings: []domain.Listing{ok}},
	}, time.Second)

	out := a.Run(context.Background(), source.Query{Keywords: "dev"}, nil)
	require.Len(t, out, 1)
	assert.Equal(t, "kept", out[0].Title)
}

func TestRunAllSourcesDownIsEmptyNotError(t *testing.T) {
	a := New([]source.Adapter{
		&fakeAdapter{name: "a", err: errors.New("network")},
		&fakeAdapter{name: "b", err: errors.New("parse")},
	}, time.Second)

	out := a.Run(context.Background(), source.Query{Keywords: "dev"}, nil)
	assert.Empty(t, out)
}

func TestRunAbandonsSlowSources(t *testing.T) {
	fast := listing("fast", "acme", "gent", 0)
	a := New([]source.Adapter{
		&fakeAdapter{name: "slow", block: true},
		&fakeAdapter{name: "fast", listings: []domain.Listing{fast}},
	}, 50*time.Millisecond)

	start := time.Now()
	out := a.Run(context.Background(), source.Query{Keywords: "dev"}, nil)
	require.Len(t, out, 1)
	assert.Equal(t, "fast", out[0].Title)
	assert.Less(t, time.Since(start), time.Second, "deadline must bound the whole run")
}

func TestRunFiltersBySourceName(t *testing.T) {
	a := New([]source.Adapter{
		&fakeAdapter{name: "a", listings: []domain.Listing{listing("from-a", "x", "gent", 0)}},
		&fakeAdapter{name: "b", listings: []domain.Listing{listing("from-b", "y", "gent", 0)}},
	}, time.Second)

	out := a.Run(context.Background(), source.Query{Keywords: "dev"}, func(name string) bool {
		return name == "b"
	})
	require.Len(t, out, 1)
	assert.Equal(t, "from-b", out[0].Title)
}

func TestDedup(t *testing.T) {
	l1 := listing("DevOps Engineer", "Acme", "Gent", 0)
	dup := l1
	dup.Title = "devops   engineer" // same signature after normalization
	dup.URL = "https://other.be/1"
	l2 := listing("DevOps Engineer", "Acme", "Leuven", 0)

	in := []domain.Listing{l1, dup, l2}
	out := Dedup(in)

	require.Len(t, out, 2)
	assert.Equal(t, l1, out[0], "first occurrence wins")
	assert.Equal(t, l2, out[1])

	assert.LessOrEqual(t, len(out), len(in))
	assert.Equal(t, out, Dedup(out), "dedup is idempotent")
}
