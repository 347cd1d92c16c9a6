// Package openaq is a minimal client for the OpenAQ v3 REST API.
package openaq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/http/httpguts"

	"github.com/matyjas/nq-mcp/internal/common"
)

// APIKeyHeader carries the credential on every outbound request.
const APIKeyHeader = "X-API-Key"

// maxResponseSize caps the upstream response body.
const maxResponseSize = 50 << 20 // 50MB

// Factory builds a fresh Client for each tool invocation. It is immutable
// after construction and safe for concurrent use.
type Factory struct {
	baseURL   *url.URL
	apiKeyEnv string
	transport http.RoundTripper
	logger    *common.Logger
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithTransport replaces the RoundTripper that clients send requests through.
func WithTransport(rt http.RoundTripper) FactoryOption {
	return func(f *Factory) {
		f.transport = rt
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *common.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// NewFactory creates a Factory targeting baseURL. The credential is read
// from the environment variable apiKeyEnv each time NewClient is called.
func NewFactory(baseURL, apiKeyEnv string, opts ...FactoryOption) (*Factory, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base url %q", baseURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Newf("base url %q must be absolute", baseURL)
	}
	if apiKeyEnv == "" {
		return nil, errors.New("api key environment variable name is empty")
	}

	f := &Factory{
		baseURL:   u,
		apiKeyEnv: apiKeyEnv,
		transport: http.DefaultTransport,
		logger:    common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// NewClient reads the credential and returns a Client that sends it as
// X-API-Key. No network I/O happens here.
func (f *Factory) NewClient() (*Client, error) {
	key := os.Getenv(f.apiKeyEnv)
	if key == "" {
		return nil, configurationError(errors.Newf("%s is not set", f.apiKeyEnv))
	}
	if !httpguts.ValidHeaderFieldValue(key) {
		return nil, configurationError(errors.Newf("%s contains characters not allowed in an HTTP header", f.apiKeyEnv))
	}

	return &Client{
		baseURL: f.baseURL,
		httpClient: &http.Client{
			Transport: &apiKeyTransport{key: key, base: f.transport},
		},
		logger: f.logger,
	}, nil
}

// Client issues calls against the OpenAQ API. It is meant to be used for
// a single invocation and then discarded.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *common.Logger
}

// apiKeyTransport attaches the credential to every request.
type apiKeyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set(APIKeyHeader, t.key)
	return t.base.RoundTrip(r)
}

// ListCountries calls GET v3/countries.
func (c *Client) ListCountries(ctx context.Context, req ListCountriesRequest) (Response[Country], error) {
	return get[Country](ctx, c, "v3/countries", req.Query.Values())
}

// GetCountry calls GET v3/countries/{countries_id}.
func (c *Client) GetCountry(ctx context.Context, req GetCountryRequest) (Response[Country], error) {
	return get[Country](ctx, c, fmt.Sprintf("v3/countries/%d", req.CountriesID), nil)
}

// ListLocations calls GET v3/locations.
func (c *Client) ListLocations(ctx context.Context, req ListLocationsRequest) (Response[Location], error) {
	return get[Location](ctx, c, "v3/locations", req.Query.Values())
}

// LocationLatest calls GET v3/locations/{locations_id}/latest.
func (c *Client) LocationLatest(ctx context.Context, req LocationLatestRequest) (Response[Latest], error) {
	return get[Latest](ctx, c, fmt.Sprintf("v3/locations/%d/latest", req.LocationsID), req.Query.Values())
}

// page is the envelope shared by every list and detail endpoint.
type page[T any] struct {
	Meta    Meta `json:"meta"`
	Results []T  `json:"results"`
}

// get performs a GET and classifies the result. Non-2xx statuses become a
// Failure; connection problems and undecodable bodies are ErrTransport.
func get[T any](ctx context.Context, c *Client, path string, query url.Values) (Response[T], error) {
	u := c.baseURL.JoinPath(path)
	u.RawQuery = query.Encode()

	c.logger.Debug().Str("method", http.MethodGet).Str("path", u.Path).Str("query", u.RawQuery).Msg("openaq request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, transportError(errors.Wrap(err, "failed to build request"))
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error().Str("path", u.Path).Int64("duration_ms", duration.Milliseconds()).Err(err).Msg("openaq request failed")
		return nil, transportError(errors.Wrapf(err, "GET %s", u.Path))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, transportError(errors.Wrap(err, "failed to read response"))
	}

	c.logger.Debug().Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("openaq response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Failure[T]{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}, nil
	}

	var p page[T]
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, transportError(errors.Wrapf(err, "failed to decode %s response", u.Path))
	}
	return Success[T]{Meta: p.Meta, Results: p.Results}, nil
}
