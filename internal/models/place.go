package models

import (
	"net/url"
	"strings"
)

// Coordinate is a geographic position in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OpenStreetMap holds the OpenStreetMap annotation of a place. URL is empty
// when the provider sent the annotation without a link.
type OpenStreetMap struct {
	URL string `json:"url,omitempty"`
}

// Annotations groups the optional provider annotations of a place.
type Annotations struct {
	OpenStreetMap *OpenStreetMap `json:"openStreetMap,omitempty"`
}

// Place is one geocoding search result.
type Place struct {
	DisplayName string      `json:"displayName"`
	Coordinate  Coordinate  `json:"coordinate"`
	Annotations Annotations `json:"annotations"`
}

// OpenStreetMapURL returns the raw OpenStreetMap link, if the provider sent one.
func (p Place) OpenStreetMapURL() (string, bool) {
	if p.Annotations.OpenStreetMap == nil || p.Annotations.OpenStreetMap.URL == "" {
		return "", false
	}
	return p.Annotations.OpenStreetMap.URL, true
}

// DirectionsURL returns the OpenStreetMap link only when it is an absolute
// http or https URL. Any other value is treated as absent.
func (p Place) DirectionsURL() (*url.URL, bool) {
	raw, ok := p.OpenStreetMapURL()
	if !ok {
		return nil, false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u, true
	}
	return nil, false
}
