// Package console renders search sessions as plain text: the result list,
// the empty and failure messages, and the detail of a selected place.
package console

import (
	"fmt"
	"io"
	"sync"

	"places/internal/models"
	"places/pkg/geo"
)

const genericFailure = "Something went wrong. Please try again."

// View implements search.Listener and owns the places currently displayed.
type View struct {
	mu     sync.Mutex
	out    io.Writer
	places []models.Place
}

// NewView returns a view that writes to out.
func NewView(out io.Writer) *View {
	return &View{out: out}
}

func (v *View) Cleared() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.places = nil
}

func (v *View) Searching(keyword string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "Searching for %q...\n", keyword)
}

// Delivered replaces the displayed list. Failures of any kind collapse into
// one generic message; an empty result names the keyword instead.
func (v *View) Delivered(o models.Outcome) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch {
	case o.Failed():
		v.places = nil
		fmt.Fprintln(v.out, genericFailure)
	case o.Empty():
		v.places = nil
		fmt.Fprintf(v.out, "No results for %q.\n", o.Keyword)
	default:
		v.places = o.Places
		for i, p := range o.Places {
			fmt.Fprintf(v.out, "%2d. %s\n", i+1, p.DisplayName)
		}
	}
}

// Select prints the detail of the n-th displayed place (1-based).
func (v *View) Select(n int) (models.Place, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if n < 1 || n > len(v.places) {
		fmt.Fprintf(v.out, "No place #%d; %d displayed.\n", n, len(v.places))
		return models.Place{}, false
	}
	p := v.places[n-1]

	r := geo.NewRegion(p.Coordinate, geo.ThirtyMiles, geo.ThirtyMiles)
	fmt.Fprintf(v.out, "%s\n", p.DisplayName)
	fmt.Fprintf(v.out, "  coordinate: %.6f, %.6f\n", p.Coordinate.Lat, p.Coordinate.Lng)
	fmt.Fprintf(v.out, "  map region: %.4f x %.4f degrees\n", r.LatDelta, r.LngDelta)
	for _, opt := range geo.Directions(p) {
		fmt.Fprintf(v.out, "  %s: %s\n", opt.Title, opt.URL)
	}
	return p, true
}

// Displayed returns the number of places currently listed.
func (v *View) Displayed() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.places)
}
