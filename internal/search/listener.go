package search

import (
	"context"

	"places/internal/models"
)

// Searcher performs one geocoding search. *geocode.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, keyword string) ([]models.Place, error)
}

// Listener is the presentation side of a Session. Its methods are called in
// order on the session's loop goroutine, never concurrently.
type Listener interface {
	// Cleared is called as soon as the search text becomes empty.
	Cleared()
	// Searching is called when a debounced search is dispatched.
	Searching(keyword string)
	// Delivered is called with the outcome of the latest search, provided
	// the search text still matches its keyword.
	Delivered(outcome models.Outcome)
}
