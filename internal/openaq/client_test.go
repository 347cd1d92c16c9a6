package openaq

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyEnv = "OPEN_AQ_API_KEY"

func newTestFactory(t *testing.T, handler http.HandlerFunc) *Factory {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	f, err := NewFactory(srv.URL+"/", testKeyEnv)
	require.NoError(t, err)
	return f
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	t.Setenv(testKeyEnv, "test-key")
	c, err := newTestFactory(t, handler).NewClient()
	require.NoError(t, err)
	return c
}

type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return nil, errors.New("unexpected network call")
}

func TestNewFactory_RejectsRelativeURL(t *testing.T) {
	_, err := NewFactory("api.openaq.org", testKeyEnv)
	assert.Error(t, err)
}

func TestNewFactory_RejectsEmptyEnvName(t *testing.T) {
	_, err := NewFactory("https://api.openaq.org/", "")
	assert.Error(t, err)
}

func TestNewClient_MissingKey(t *testing.T) {
	t.Setenv(testKeyEnv, "")
	os.Unsetenv(testKeyEnv)

	rt := &countingTransport{}
	f, err := NewFactory("https://api.openaq.org/", testKeyEnv, WithTransport(rt))
	require.NoError(t, err)

	_, err = f.NewClient()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Contains(t, err.Error(), testKeyEnv)
	assert.Zero(t, rt.calls.Load())
}

func TestNewClient_EmptyKey(t *testing.T) {
	t.Setenv(testKeyEnv, "")

	f, err := NewFactory("https://api.openaq.org/", testKeyEnv)
	require.NoError(t, err)

	_, err = f.NewClient()
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestNewClient_InvalidHeaderValue(t *testing.T) {
	t.Setenv(testKeyEnv, "bad\nkey")

	f, err := NewFactory("https://api.openaq.org/", testKeyEnv)
	require.NoError(t, err)

	_, err = f.NewClient()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.NotContains(t, err.Error(), "bad\nkey")
}

func TestNewClient_NoNetworkAtConstruction(t *testing.T) {
	t.Setenv(testKeyEnv, "test-key")

	rt := &countingTransport{}
	f, err := NewFactory("https://api.openaq.org/", testKeyEnv, WithTransport(rt))
	require.NoError(t, err)

	c, err := f.NewClient()
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Zero(t, rt.calls.Load())
}

func TestNewClient_ReadsKeyEveryTime(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	f := newTestFactory(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get(APIKeyHeader))
		mu.Unlock()
		w.Write([]byte(`{"results":[]}`))
	})

	for _, key := range []string{"first", "second"} {
		t.Setenv(testKeyEnv, key)
		c, err := f.NewClient()
		require.NoError(t, err)
		_, err = c.ListCountries(context.Background(), ListCountriesRequest{})
		require.NoError(t, err)
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestGetCountry_PathAndHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v3/countries/13", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		assert.Equal(t, "test-key", r.Header.Get(APIKeyHeader))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meta":{"name":"openaq-api","page":1,"limit":100,"found":1},"results":[{"id":13,"code":"US","name":"United States"}]}`))
	})

	resp, err := c.GetCountry(context.Background(), GetCountryRequest{CountriesID: 13})
	require.NoError(t, err)

	success, ok := resp.(Success[Country])
	require.True(t, ok, "expected Success, got %T", resp)
	require.Len(t, success.Results, 1)
	assert.Equal(t, Country{ID: 13, Code: "US", Name: "United States"}, success.Results[0])
	assert.Equal(t, int64(1), success.Meta.Page)
	assert.EqualValues(t, 1, success.Meta.Found)
}

func TestListCountries_AbsentQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/countries", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		w.Write([]byte(`{"meta":{"found":">1000"},"results":[]}`))
	})

	resp, err := c.ListCountries(context.Background(), ListCountriesRequest{})
	require.NoError(t, err)

	success, ok := resp.(Success[Country])
	require.True(t, ok)
	assert.Empty(t, success.Results)
	assert.Equal(t, ">1000", success.Meta.Found)
}

func TestListCountries_Page(t *testing.T) {
	page := int64(3)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "page=3", r.URL.RawQuery)
		w.Write([]byte(`{"results":[]}`))
	})

	_, err := c.ListCountries(context.Background(), ListCountriesRequest{Query: CountriesQuery{Page: &page}})
	require.NoError(t, err)
}

func TestListLocations_CountriesFilter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/locations", r.URL.Path)
		assert.Equal(t, []string{"13", "22"}, r.URL.Query()["countries_id"])
		assert.Len(t, r.URL.Query(), 1)
		w.Write([]byte(`{"results":[{"id":2178,"name":"Del Norte","locality":null,"timezone":"America/Denver","country":{"id":13,"code":"US","name":"United States"},"isMobile":false,"isMonitor":true,"coordinates":{"latitude":35.1353,"longitude":-106.5847},"datetimeFirst":{"utc":"2016-03-06T19:00:00Z","local":"2016-03-06T12:00:00-07:00"},"datetimeLast":null}]}`))
	})

	resp, err := c.ListLocations(context.Background(), ListLocationsRequest{Query: LocationsQuery{CountriesID: IDs(13, 22)}})
	require.NoError(t, err)

	success, ok := resp.(Success[Location])
	require.True(t, ok)
	require.Len(t, success.Results, 1)
	loc := success.Results[0]
	assert.Equal(t, int64(2178), loc.ID)
	assert.Empty(t, loc.Locality)
	assert.Equal(t, "US", loc.Country.Code)
	assert.True(t, loc.IsMonitor)
	assert.Equal(t, "2016-03-06T19:00:00Z", loc.DatetimeFirst.UTC)
	assert.Equal(t, Datetime{}, loc.DatetimeLast)
}

func TestLocationLatest_Query(t *testing.T) {
	page := int64(2)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/locations/2178/latest", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.False(t, r.URL.Query().Has("datetime_min"))
		w.Write([]byte(`{"results":[{"datetime":{"utc":"2024-01-01T00:00:00Z","local":"2023-12-31T17:00:00-07:00"},"value":12.5,"coordinates":{"latitude":35.1,"longitude":-106.5},"sensorsId":3917,"locationsId":2178}]}`))
	})

	limit := LatestLimit
	resp, err := c.LocationLatest(context.Background(), LocationLatestRequest{
		LocationsID: 2178,
		Query:       LatestQuery{Limit: &limit, Page: &page},
	})
	require.NoError(t, err)

	success, ok := resp.(Success[Latest])
	require.True(t, ok)
	require.Len(t, success.Results, 1)
	assert.Equal(t, 12.5, success.Results[0].Value)
	assert.Equal(t, int64(3917), success.Results[0].SensorsID)
}

func TestNon2xx_IsFailureVariant(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Country not found"}`))
	})

	resp, err := c.GetCountry(context.Background(), GetCountryRequest{CountriesID: 999999})
	require.NoError(t, err)

	failure, ok := resp.(Failure[Country])
	require.True(t, ok, "expected Failure, got %T", resp)
	assert.Equal(t, http.StatusNotFound, failure.StatusCode)
	assert.Equal(t, "404 Not Found", failure.Status)
	assert.Equal(t, `{"detail":"Country not found"}`, failure.Body)
}

func TestUndecodable2xx_IsTransportError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway</html>`))
	})

	_, err := c.ListCountries(context.Background(), ListCountriesRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestConnectionFailure_IsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL + "/"
	srv.Close()

	t.Setenv(testKeyEnv, "test-key")
	f, err := NewFactory(baseURL, testKeyEnv)
	require.NoError(t, err)
	c, err := f.NewClient()
	require.NoError(t, err)

	_, err = c.ListLocations(context.Background(), ListLocationsRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
	assert.False(t, errors.Is(err, ErrConfiguration))
}

func TestBaseURLPathPrefix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/proxy/v3/countries", r.URL.Path)
		w.Write([]byte(`{"results":[]}`))
	}))
	t.Cleanup(srv.Close)

	t.Setenv(testKeyEnv, "test-key")
	f, err := NewFactory(srv.URL+"/proxy/", testKeyEnv)
	require.NoError(t, err)
	c, err := f.NewClient()
	require.NoError(t, err)

	_, err = c.ListCountries(context.Background(), ListCountriesRequest{})
	require.NoError(t, err)
}
