// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"places/pkg/debounce"
	"places/pkg/geocode"
	"places/pkg/locale"
)

const defaultBucket = "search-outcomes"

// Config holds the settings shared by both binaries.
type Config struct {
	GeocodeEndpoint  string
	GeocodeAPIKey    string
	GeocodeLanguage  string
	GeocodeUserAgent string
	Debounce         time.Duration

	LogLevel  string
	LogFormat string

	Kafka       KafkaConfig
	MinIO       MinIOConfig
	DatabaseURL string
}

// KafkaConfig is only required by the search worker.
type KafkaConfig struct {
	Broker       string
	InputTopic   string
	GroupID      string
	ResultsTopic string
}

// MinIOConfig enables the outcome archive when Endpoint is set.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// LoadEnv loads a .env file from the working directory if there is one.
// Variables already set in the environment win.
func LoadEnv() bool {
	return godotenv.Load() == nil
}

// Load reads the configuration from the process environment and validates it.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		GeocodeEndpoint:  get("GEOCODE_ENDPOINT", geocode.DefaultEndpoint),
		GeocodeAPIKey:    get("GEOCODE_API_KEY", ""),
		GeocodeLanguage:  get("GEOCODE_LANGUAGE", locale.Language(lookup)),
		GeocodeUserAgent: get("GEOCODE_USER_AGENT", "places-search/1.0"),
		LogLevel:         get("LOG_LEVEL", "info"),
		LogFormat:        get("LOG_FORMAT", "text"),
		Kafka: KafkaConfig{
			Broker:       get("KAFKA_BROKER", ""),
			InputTopic:   get("KAFKA_INPUT_TOPIC", ""),
			GroupID:      get("KAFKA_GROUP_ID", ""),
			ResultsTopic: get("KAFKA_RESULTS_TOPIC", ""),
		},
		MinIO: MinIOConfig{
			Endpoint:  get("MINIO_ENDPOINT", ""),
			AccessKey: get("MINIO_ACCESS_KEY", ""),
			SecretKey: get("MINIO_SECRET_KEY", ""),
			Bucket:    get("MINIO_BUCKET", defaultBucket),
		},
		DatabaseURL: get("DATABASE_URL", ""),
	}

	var err error
	if cfg.Debounce, err = time.ParseDuration(get("SEARCH_DEBOUNCE", debounce.DefaultDelay.String())); err != nil {
		return Config{}, fmt.Errorf("SEARCH_DEBOUNCE: %w", err)
	}
	if cfg.MinIO.UseSSL, err = strconv.ParseBool(get("MINIO_USE_SSL", "false")); err != nil {
		return Config{}, fmt.Errorf("MINIO_USE_SSL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings every binary needs.
func (c Config) Validate() error {
	var errs []error
	if c.GeocodeAPIKey == "" {
		errs = append(errs, errors.New("GEOCODE_API_KEY is required"))
	}
	if c.GeocodeEndpoint == "" {
		errs = append(errs, errors.New("GEOCODE_ENDPOINT is empty"))
	}
	if c.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("SEARCH_DEBOUNCE must be positive, got %s", c.Debounce))
	}
	if c.MinIO.Enabled() && (c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "") {
		errs = append(errs, errors.New("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required with MINIO_ENDPOINT"))
	}
	return errors.Join(errs...)
}

// Geocode returns the client configuration.
func (c Config) Geocode() geocode.Config {
	return geocode.Config{
		Endpoint:  c.GeocodeEndpoint,
		APIKey:    c.GeocodeAPIKey,
		Language:  c.GeocodeLanguage,
		UserAgent: c.GeocodeUserAgent,
	}
}

// HistoryEnabled reports whether searches are recorded in Postgres.
func (c Config) HistoryEnabled() bool {
	return c.DatabaseURL != ""
}

// Enabled reports whether the archive is configured.
func (m MinIOConfig) Enabled() bool {
	return m.Endpoint != ""
}

// Validate checks the worker's Kafka settings.
func (k KafkaConfig) Validate() error {
	var missing []error
	for _, kv := range []struct{ key, value string }{
		{"KAFKA_BROKER", k.Broker},
		{"KAFKA_INPUT_TOPIC", k.InputTopic},
		{"KAFKA_GROUP_ID", k.GroupID},
		{"KAFKA_RESULTS_TOPIC", k.ResultsTopic},
	} {
		if kv.value == "" {
			missing = append(missing, fmt.Errorf("%s is required", kv.key))
		}
	}
	return errors.Join(missing...)
}
