package geo

import (
	"fmt"
	"net/url"

	"places/internal/models"
)

const (
	ProviderAppleMaps     = "Apple Maps"
	ProviderOpenStreetMap = "OpenStreetMap"
)

// Option is one way of getting directions to a place.
type Option struct {
	Provider string
	Title    string
	URL      string
}

// Directions lists the directions options for p. The driving link is always
// present; the OpenStreetMap link only when the place carries a valid
// http(s) URL.
func Directions(p models.Place) []Option {
	opts := []Option{{
		Provider: ProviderAppleMaps,
		Title:    "Get directions in Apple Maps",
		URL:      drivingURL(p.Coordinate),
	}}
	if u, ok := p.DirectionsURL(); ok {
		opts = append(opts, Option{
			Provider: ProviderOpenStreetMap,
			Title:    "Get directions in Open Street Maps",
			URL:      u.String(),
		})
	}
	return opts
}

func drivingURL(c models.Coordinate) string {
	q := url.Values{}
	q.Set("daddr", fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng))
	q.Set("dirflg", "d")
	return "https://maps.apple.com/?" + q.Encode()
}
