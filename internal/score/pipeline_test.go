package score

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobradar-engine/internal/domain"
)

// fakeRunner answers from a title->score table; unknown titles error.
// With block set it hangs until the context dies instead.
type fakeRunner struct {
	scores map[string]int
	block  bool
}

func (f *fakeRunner) Run(ctx context.Context, prompt string) ([]byte, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	for title, s := range f.scores {
		if strings.Contains(prompt, "Title: "+title+"\n") {
			return []byte(fmt.Sprintf(`{"score": %d, "reason": "match on %s"}`, s, title)), nil
		}
	}
	return nil, errors.New("model refused")
}

func mkListings(titles ...string) []domain.Listing {
	out := make([]domain.Listing, 0, len(titles))
	for i, title := range titles {
		out = append(out, domain.Listing{
			Title:     title,
			Company:   "acme",
			URL:       fmt.Sprintf("https://example.be/%d", i),
			ScrapedAt: time.Now().Add(-time.Duration(i) * time.Minute),
		})
	}
	return out
}

func titlesOf(in []domain.ScoredListing) []string {
	out := make([]string, 0, len(in))
	for _, l := range in {
		out = append(out, l.Title)
	}
	return out
}

func TestScoreTopNAndMerge(t *testing.T) {
	runner := &fakeRunner{scores: map[string]int{"a": 30, "b": 90, "c": 60}}
	p := NewPipeline(runner, 2, 3, time.Second)

	out := p.Score(context.Background(), mkListings("a", "b", "c", "d", "e"), nil)
	require.Len(t, out, 5)

	// Scored head sorted by score descending, unscored tail in original
	// order after it.
	assert.Equal(t, []string{"b", "c", "a", "d", "e"}, titlesOf(out))
	for _, l := range out[:3] {
		assert.True(t, l.Scored())
		assert.NotEmpty(t, l.MatchReason)
	}
	for _, l := range out[3:] {
		assert.False(t, l.Scored())
	}
	assert.Equal(t, 90, *out[0].Score)
}

func TestScoreSingleFailureDegradesToUnscored(t *testing.T) {
	// "b" is missing from the table, so its call fails; the listing must
	// still come back, unscored, after the scored ones.
	runner := &fakeRunner{scores: map[string]int{"a": 50, "c": 70}}
	p := NewPipeline(runner, 2, 3, time.Second)

	out := p.Score(context.Background(), mkListings("a", "b", "c"), nil)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"c", "a", "b"}, titlesOf(out))
	assert.False(t, out[2].Scored())
}

func TestScoreBatchTimeoutKeepsEveryListing(t *testing.T) {
	p := NewPipeline(&fakeRunner{block: true}, 2, 4, 50*time.Millisecond)
	in := mkListings("a", "b", "c", "d", "e", "f")

	start := time.Now()
	out := p.Score(context.Background(), in, nil)
	assert.Less(t, time.Since(start), time.Second)

	require.Len(t, out, len(in))
	seen := map[string]int{}
	for _, l := range out {
		assert.False(t, l.Scored())
		seen[l.Title]++
	}
	for _, l := range in {
		assert.Equal(t, 1, seen[l.Title], "every candidate appears exactly once")
	}
}

func TestScoreNilRunnerPassesThrough(t *testing.T) {
	p := NewPipeline(nil, 0, 0, 0)
	in := mkListings("a", "b")
	out := p.Score(context.Background(), in, nil)
	require.Len(t, out, 2)
	assert.Equal(t, []string{"a", "b"}, titlesOf(out))
	assert.False(t, out[0].Scored())
	assert.False(t, out[1].Scored())
}

func TestScoreEmptyInput(t *testing.T) {
	p := NewPipeline(&fakeRunner{}, 2, 3, time.Second)
	assert.Empty(t, p.Score(context.Background(), nil, nil))
}

func TestMergeScoredOrdering(t *testing.T) {
	s := func(v int) *int { return &v }
	in := []domain.ScoredListing{
		{Listing: domain.Listing{Title: "u1"}},
		{Listing: domain.Listing{Title: "low"}, Score: s(10)},
		{Listing: domain.Listing{Title: "u2"}},
		{Listing: domain.Listing{Title: "high"}, Score: s(95)},
	}
	out := mergeScored(in)
	assert.Equal(t, []string{"high", "low", "u1", "u2"}, titlesOf(out))
}
