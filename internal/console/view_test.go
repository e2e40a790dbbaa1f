package console

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"places/internal/models"
)

var alamo = models.Place{
	DisplayName: "Alamo Drafthouse",
	Coordinate:  models.Coordinate{Lat: 30.26, Lng: -97.74},
	Annotations: models.Annotations{OpenStreetMap: &models.OpenStreetMap{URL: "https://openstreetmap.org/x"}},
}

func TestView_Delivered(t *testing.T) {
	tests := []struct {
		name      string
		outcome   models.Outcome
		want      string
		displayed int
	}{
		{
			name:      "list",
			outcome:   models.Outcome{Keyword: "alamo", Places: []models.Place{alamo, {DisplayName: "Alamo, CA"}}},
			want:      " 1. Alamo Drafthouse\n 2. Alamo, CA\n",
			displayed: 2,
		},
		{
			name:    "empty",
			outcome: models.Outcome{Keyword: "qwxz", Places: []models.Place{}},
			want:    "No results for \"qwxz\".\n",
		},
		{
			name:    "transport failure",
			outcome: models.Outcome{Keyword: "alamo", Err: errors.New("reset"), Failure: "transport"},
			want:    genericFailure + "\n",
		},
		{
			name:    "decode failure",
			outcome: models.Outcome{Keyword: "alamo", Failure: "decode"},
			want:    genericFailure + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			v := NewView(&buf)
			v.Delivered(tt.outcome)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, tt.displayed, v.Displayed())
		})
	}
}

func TestView_SelectAndClear(t *testing.T) {
	var buf bytes.Buffer
	v := NewView(&buf)
	v.Delivered(models.Outcome{Keyword: "alamo", Places: []models.Place{alamo}})
	buf.Reset()

	p, ok := v.Select(1)
	require.True(t, ok)
	assert.Equal(t, alamo, p)
	out := buf.String()
	assert.Contains(t, out, "coordinate: 30.260000, -97.740000")
	assert.Contains(t, out, "Get directions in Apple Maps: https://maps.apple.com/")
	assert.Contains(t, out, "Get directions in Open Street Maps: https://openstreetmap.org/x")

	buf.Reset()
	_, ok = v.Select(2)
	assert.False(t, ok)
	assert.Equal(t, "No place #2; 1 displayed.\n", buf.String())

	v.Cleared()
	assert.Zero(t, v.Displayed())
	_, ok = v.Select(1)
	assert.False(t, ok)
}

type sinkRecorder struct {
	mu    sync.Mutex
	texts []string
}

func (s *sinkRecorder) TextChanged(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
}

func TestReadInput(t *testing.T) {
	var buf bytes.Buffer
	v := NewView(&buf)
	v.Delivered(models.Outcome{Keyword: "alamo", Places: []models.Place{alamo}})
	buf.Reset()

	sink := &sinkRecorder{}
	input := "a\nal\r\n\n@1\n@x\n email@host\n"
	require.NoError(t, ReadInput(strings.NewReader(input), sink, v))

	assert.Equal(t, []string{"a", "al", "", "@x", " email@host"}, sink.texts)
	assert.Contains(t, buf.String(), "Alamo Drafthouse\n  coordinate:")
}
