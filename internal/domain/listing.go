package domain

import "time"

// Listing is one job posting extracted from a source. Immutable once
// produced by an adapter.
type Listing struct {
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Location  string    `json:"location"`
	Salary    string    `json:"salary,omitempty"`
	URL       string    `json:"url"`
	Source    string    `json:"source"`
	ScrapedAt time.Time `json:"scrapedAt"`
}

// ScoredListing is a Listing plus the outcome of the scoring pipeline.
// Score is nil when scoring was skipped, failed or timed out for this
// listing; that is a normal state, not an error.
type ScoredListing struct {
	Listing
	Score       *int     `json:"score,omitempty"`
	MatchReason string   `json:"matchReason,omitempty"`
	Missing     []string `json:"missing,omitempty"`
}

// Scored reports whether the scoring pipeline produced a score for
// this listing.
func (s ScoredListing) Scored() bool { return s.Score != nil }

// Unscored wraps a listing with no score attached.
func Unscored(l Listing) ScoredListing {
	return ScoredListing{Listing: l}
}
