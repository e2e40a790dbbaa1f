package geocode

import (
	"fmt"

	"github.com/goccy/go-json"

	"places/internal/models"
)

// response is the envelope returned by the geocoding API. Pointer fields
// tell a missing key apart from a zero value.
type response struct {
	Results *[]result `json:"results"`
}

type result struct {
	Formatted   *string      `json:"formatted"`
	Geometry    *geometry    `json:"geometry"`
	Annotations *annotations `json:"annotations"`
}

type geometry struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type annotations struct {
	OSM *osmAnnotation `json:"OSM"`
}

type osmAnnotation struct {
	URL *string `json:"url"`
}

// decodePlaces decodes a response body into places. The formatted name and
// both coordinates are required for every result; annotations are optional.
func decodePlaces(body []byte) ([]models.Place, error) {
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, fmt.Errorf("missing required field %q", "results")
	}

	places := make([]models.Place, 0, len(*resp.Results))
	for i, r := range *resp.Results {
		p, err := r.place()
		if err != nil {
			return nil, fmt.Errorf("results[%d]: %w", i, err)
		}
		places = append(places, p)
	}
	return places, nil
}

func (r result) place() (models.Place, error) {
	switch {
	case r.Formatted == nil:
		return models.Place{}, fmt.Errorf("missing required field %q", "formatted")
	case r.Geometry == nil:
		return models.Place{}, fmt.Errorf("missing required field %q", "geometry")
	case r.Geometry.Lat == nil:
		return models.Place{}, fmt.Errorf("missing required field %q", "geometry.lat")
	case r.Geometry.Lng == nil:
		return models.Place{}, fmt.Errorf("missing required field %q", "geometry.lng")
	}

	p := models.Place{
		DisplayName: *r.Formatted,
		Coordinate:  models.Coordinate{Lat: *r.Geometry.Lat, Lng: *r.Geometry.Lng},
	}
	if r.Annotations != nil && r.Annotations.OSM != nil {
		osm := &models.OpenStreetMap{}
		if r.Annotations.OSM.URL != nil {
			osm.URL = *r.Annotations.OSM.URL
		}
		p.Annotations.OpenStreetMap = osm
	}
	return p, nil
}
