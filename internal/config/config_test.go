package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"places/pkg/geocode"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(lookupFrom(map[string]string{
		"GEOCODE_API_KEY": "secret",
		"LANG":            "fr_FR.UTF-8",
	}))
	require.NoError(t, err)

	assert.Equal(t, geocode.DefaultEndpoint, cfg.GeocodeEndpoint)
	assert.Equal(t, "fr", cfg.GeocodeLanguage)
	assert.Equal(t, time.Second, cfg.Debounce)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "search-outcomes", cfg.MinIO.Bucket)
	assert.False(t, cfg.MinIO.Enabled())
	assert.False(t, cfg.HistoryEnabled())

	gc := cfg.Geocode()
	assert.Equal(t, "secret", gc.APIKey)
	assert.Equal(t, "fr", gc.Language)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(lookupFrom(map[string]string{
		"GEOCODE_API_KEY":  "secret",
		"GEOCODE_ENDPOINT": "http://localhost:9000/geocode",
		"GEOCODE_LANGUAGE": "es",
		"LANG":             "fr_FR.UTF-8",
		"SEARCH_DEBOUNCE":  "250ms",
		"MINIO_ENDPOINT":   "localhost:9000",
		"MINIO_ACCESS_KEY": "minio",
		"MINIO_SECRET_KEY": "minio123",
		"MINIO_USE_SSL":    "true",
		"DATABASE_URL":     "postgres://localhost/places",
	}))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/geocode", cfg.GeocodeEndpoint)
	assert.Equal(t, "es", cfg.GeocodeLanguage)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce)
	assert.True(t, cfg.MinIO.Enabled())
	assert.True(t, cfg.MinIO.UseSSL)
	assert.True(t, cfg.HistoryEnabled())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "missing api key", env: map[string]string{}, wantErr: "GEOCODE_API_KEY"},
		{name: "bad debounce", env: map[string]string{"GEOCODE_API_KEY": "k", "SEARCH_DEBOUNCE": "soon"}, wantErr: "SEARCH_DEBOUNCE"},
		{name: "negative debounce", env: map[string]string{"GEOCODE_API_KEY": "k", "SEARCH_DEBOUNCE": "-1s"}, wantErr: "must be positive"},
		{name: "bad ssl flag", env: map[string]string{"GEOCODE_API_KEY": "k", "MINIO_USE_SSL": "maybe"}, wantErr: "MINIO_USE_SSL"},
		{name: "minio without credentials", env: map[string]string{"GEOCODE_API_KEY": "k", "MINIO_ENDPOINT": "localhost:9000"}, wantErr: "MINIO_ACCESS_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(lookupFrom(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestKafkaConfig_Validate(t *testing.T) {
	err := KafkaConfig{Broker: "localhost:9092", InputTopic: "search-text"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_GROUP_ID")
	assert.Contains(t, err.Error(), "KAFKA_RESULTS_TOPIC")
	assert.NotContains(t, err.Error(), "KAFKA_BROKER")

	assert.NoError(t, KafkaConfig{Broker: "b", InputTopic: "i", GroupID: "g", ResultsTopic: "r"}.Validate())
}

func TestKafkaConfig_ValidateOrder(t *testing.T) {
	want := "KAFKA_BROKER is required\nKAFKA_INPUT_TOPIC is required\nKAFKA_GROUP_ID is required\nKAFKA_RESULTS_TOPIC is required"
	for i := 0; i < 20; i++ {
		err := KafkaConfig{}.Validate()
		require.Error(t, err)
		require.Equal(t, want, err.Error())
	}
}

func TestLoad_FromProcessEnv(t *testing.T) {
	t.Setenv("GEOCODE_API_KEY", "from-env")
	t.Setenv("GEOCODE_LANGUAGE", "it")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.GeocodeAPIKey)
	assert.Equal(t, "it", cfg.GeocodeLanguage)
}
