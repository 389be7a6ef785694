package source

import (
	"context"

	"jobradar-engine/internal/domain"
)

// Query is one aggregator request to a single board.
type Query struct {
	Keywords string
	Location string
}

// Adapter is the uniform contract every job board implements. New
// boards are added by implementing this interface, not by touching the
// aggregator.
//
// Search returns a bounded list of normalized listings. Zero results is
// a valid return, not an error; errors mean the board could not be
// queried at all. An adapter that cannot extract a required field
// (title or canonical URL) from one candidate drops that candidate and
// keeps going.
type Adapter interface {
	Name() string
	Search(ctx context.Context, q Query) ([]domain.Listing, error)

	// Available is a lightweight reachability probe (HEAD-style) used
	// for diagnostics only; searches are never gated on it.
	Available(ctx context.Context) bool
}
