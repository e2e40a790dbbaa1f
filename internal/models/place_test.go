package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlace_DirectionsURL(t *testing.T) {
	cases := []struct {
		name    string
		osm     *OpenStreetMap
		wantURL string
		wantOK  bool
	}{
		{"no annotation", nil, "", false},
		{"annotation without url", &OpenStreetMap{}, "", false},
		{"https", &OpenStreetMap{URL: "https://www.openstreetmap.org/?mlat=30.26"}, "https://www.openstreetmap.org/?mlat=30.26", true},
		{"http upper case scheme", &OpenStreetMap{URL: "HTTP://openstreetmap.org/x"}, "http://openstreetmap.org/x", true},
		{"geo scheme", &OpenStreetMap{URL: "geo:30.26,-97.74"}, "", false},
		{"relative", &OpenStreetMap{URL: "/node/123"}, "", false},
		{"contains http but not a scheme", &OpenStreetMap{URL: "ftp://example.com/http"}, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Place{DisplayName: "x", Annotations: Annotations{OpenStreetMap: tc.osm}}
			u, ok := p.DirectionsURL()
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantURL, u.String())
			} else {
				assert.Nil(t, u)
			}
		})
	}
}

func TestPlace_OpenStreetMapURL(t *testing.T) {
	p := Place{Annotations: Annotations{OpenStreetMap: &OpenStreetMap{URL: "geo:1,2"}}}
	raw, ok := p.OpenStreetMapURL()
	assert.True(t, ok)
	assert.Equal(t, "geo:1,2", raw)

	_, ok = Place{}.OpenStreetMapURL()
	assert.False(t, ok)
}

func TestOutcome_EmptyIsNotFailure(t *testing.T) {
	empty := Outcome{Keyword: "zzzz", Places: []Place{}}
	assert.True(t, empty.Empty())
	assert.False(t, empty.Failed())

	failed := Outcome{Keyword: "zzzz", Err: errors.New("boom"), Failure: "transport"}
	assert.True(t, failed.Failed())
	assert.False(t, failed.Empty())

	found := Outcome{Keyword: "alamo", Places: []Place{{DisplayName: "Alamo"}}}
	assert.False(t, found.Empty())
	assert.False(t, found.Failed())
}
