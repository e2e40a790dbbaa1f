// Package geocode is a client for an OpenCage-compatible forward geocoding
// API. A search issues exactly one GET request and decodes the result list
// into models.Place values.
package geocode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"places/internal/models"
)

// DefaultEndpoint is the OpenCage geocoding endpoint.
const DefaultEndpoint = "https://api.opencagedata.com/geocode/v1/json"

const defaultUserAgent = "places-search/1.0"

// Config carries everything the client needs to build a request.
type Config struct {
	Endpoint  string
	APIKey    string
	Language  string // optional, omitted from the request when empty
	UserAgent string
}

// Client issues geocoding searches. It is safe for concurrent use; the
// underlying http.Client is shared across calls.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport. There is no request timeout unless
// the given client sets one.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient returns a client for cfg. It uses http.DefaultClient and the
// standard logrus logger unless options say otherwise.
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	c := &Client{
		cfg:        cfg,
		httpClient: http.DefaultClient,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the value delivered by SearchAsync.
type Result struct {
	Keyword string
	Places  []models.Place
	Err     error
}

// SearchAsync runs Search on its own goroutine. The returned channel
// receives exactly one Result and is then closed.
func (c *Client) SearchAsync(ctx context.Context, keyword string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		places, err := c.Search(ctx, keyword)
		out <- Result{Keyword: keyword, Places: places, Err: err}
	}()
	return out
}

// Search looks up places for keyword. An empty result list is a success.
// Failures are *Error values matching one of ErrInvalidRequest,
// ErrTransport, ErrMissingData or ErrDecode.
func (c *Client) Search(ctx context.Context, keyword string) ([]models.Place, error) {
	fields := logrus.Fields{"keyword": keyword}

	reqURL, err := c.requestURL(keyword)
	if err != nil {
		c.log.WithFields(fields).WithError(err).Error("Failed to build geocode request")
		return nil, newError(ErrInvalidRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.log.WithFields(fields).WithError(err).Error("Failed to build geocode request")
		return nil, newError(ErrInvalidRequest, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithFields(fields).WithError(err).Error("Failed to retrieve places for keyword")
		return nil, newError(ErrTransport, err)
	}
	defer resp.Body.Close()

	// The status code is not a failure by itself; the body decides.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.WithFields(fields).WithField("status", resp.Status).Warn("Geocode API returned non-2xx status")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.WithFields(fields).WithError(err).Error("Failed to read geocode response")
		return nil, newError(ErrTransport, err)
	}
	if len(body) == 0 {
		c.log.WithFields(fields).Error("Geocode response had no body")
		return nil, newError(ErrMissingData, nil)
	}

	places, err := decodePlaces(body)
	if err != nil {
		c.log.WithFields(fields).WithError(err).Error("Failed to decode geocode response")
		return nil, newError(ErrDecode, err)
	}

	c.log.WithFields(fields).WithField("count", len(places)).Debug("Geocode search finished")
	return places, nil
}

// requestURL appends the search parameters to the configured endpoint,
// keeping any query parameters it already carries.
func (c *Client) requestURL(keyword string) (string, error) {
	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("endpoint %q is not an absolute URL", c.cfg.Endpoint)
	}

	params := u.Query()
	params.Set("q", keyword)
	params.Set("key", c.cfg.APIKey)
	if c.cfg.Language != "" {
		params.Set("language", c.cfg.Language)
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}
