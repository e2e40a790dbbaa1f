// Package geo holds the map helpers used when a place is inspected: the
// visible region around it and the external directions links.
package geo

import (
	"math"

	"places/internal/models"
)

// ThirtyMiles is the default side of the region shown around a place.
const ThirtyMiles = 48280.0

const metersPerDegreeLat = 111320.0

// Region is a rectangular map window, expressed as a center and the
// latitude/longitude extent in degrees.
type Region struct {
	Center   models.Coordinate
	LatDelta float64
	LngDelta float64
}

// NewRegion returns the region centered on center spanning latMeters
// north-south and lngMeters east-west. Near the poles the longitude span is
// capped at 360 degrees.
func NewRegion(center models.Coordinate, latMeters, lngMeters float64) Region {
	latDelta := latMeters / metersPerDegreeLat
	lngDelta := 360.0
	if cos := math.Cos(center.Lat * math.Pi / 180); cos > 1e-9 {
		lngDelta = math.Min(360, lngMeters/(metersPerDegreeLat*cos))
	}
	return Region{
		Center:   center,
		LatDelta: math.Min(180, latDelta),
		LngDelta: lngDelta,
	}
}

// Contains reports whether c lies inside the region.
func (r Region) Contains(c models.Coordinate) bool {
	return math.Abs(c.Lat-r.Center.Lat) <= r.LatDelta/2 &&
		math.Abs(c.Lng-r.Center.Lng) <= r.LngDelta/2
}
