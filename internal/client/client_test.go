package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/videra/data-server/internal/analytics"
	"github.com/videra/data-server/internal/api/dashboard"
	"github.com/videra/data-server/internal/config"
	"github.com/videra/data-server/internal/content"
	"github.com/videra/data-server/internal/pagination"
	"github.com/videra/data-server/internal/storage"
	"github.com/videra/data-server/internal/storage/memory"
	"github.com/videra/data-server/internal/trend"
	"github.com/videra/data-server/internal/user"
)

// testServer serves the dashboard API backed by seeded in-memory storage and can be switched into a failing mode
type testServer struct {
	*httptest.Server
	failing atomic.Bool
	hits    atomic.Int32
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	driver := memory.New()
	require.NoError(t, driver.Initialize(context.Background()))
	require.NoError(t, storage.SeedMockData(context.Background(), driver))

	service := &dashboard.Service{
		Config: &config.Config{
			APIAllowedOrigins:      []string{"*"},
			APIMaxPageLimit:        100,
			SignupMaxAccountsPerIP: 2,
		},
		Storage: driver,
	}
	handler := service.Handler()

	server := &testServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		server.hits.Add(1)
		if server.failing.Load() {
			writer.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		handler.ServeHTTP(writer, request)
	}))
	t.Cleanup(func() {
		server.Close()
		_ = service.Shutdown(context.Background())
		driver.Close()
	})
	return server
}

func newTestClient(t *testing.T, server *testServer, opts ...Option) *Client {
	t.Helper()
	client, err := New(server.URL, opts...)
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8081", "ftp://example.com", "http://"} {
		_, err := New(raw)
		assert.ErrorIs(t, err, ErrInvalidBaseURL, raw)
	}
}

func TestClient_ContentIsCached(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)
	query := pagination.Build(pagination.Intent{}, content.Defaults)

	first := client.Content(context.Background(), query)
	require.NoError(t, first.Err)
	assert.Equal(t, SourceNetwork, first.Source)
	assert.Len(t, first.Value.Items, 6)
	assert.Equal(t, 6, first.Value.Pagination.TotalItems)
	assert.Equal(t, "publishedAt", first.Value.Meta.SortBy)

	second := client.Content(context.Background(), query)
	assert.Equal(t, SourceCache, second.Source)
	assert.Equal(t, first.Value, second.Value)
	assert.Equal(t, int32(1), server.hits.Load())

	client.InvalidateCache()
	third := client.Content(context.Background(), query)
	assert.Equal(t, SourceNetwork, third.Source)
	assert.Equal(t, int32(2), server.hits.Load())
}

func TestClient_StaleValueOnOutage(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server, WithCacheLifetime(0))
	query := pagination.Build(pagination.Intent{}, trend.Defaults)

	fresh := client.Trends(context.Background(), query)
	require.Equal(t, SourceNetwork, fresh.Source)

	server.failing.Store(true)
	stale := client.Trends(context.Background(), query)
	assert.True(t, stale.Ok())
	assert.True(t, stale.Stale())
	assert.Equal(t, fresh.Value, stale.Value)

	var apiErr *APIError
	require.ErrorAs(t, stale.Err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)

	_, err := stale.Unwrap()
	assert.Error(t, err)

	other := client.Trends(context.Background(), query.WithPage(2))
	assert.False(t, other.Ok(), "there is no last known value for another page")
	assert.Nil(t, other.Value)
}

func TestClient_ClientErrorsAreNotMasked(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)

	query := pagination.Build(pagination.Intent{}, user.Defaults)
	query.SortBy = "password"

	result := client.Users(context.Background(), query)
	assert.Equal(t, SourceNone, result.Source)

	var apiErr *APIError
	require.ErrorAs(t, result.Err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Len(t, apiErr.Errors, 1)
	assert.Equal(t, "validation.query.parameter.notAllowed", apiErr.Errors[0].Type)
	assert.Contains(t, apiErr.Error(), "status 400")

	missing := client.ContentItem(context.Background(), "missing")
	assert.False(t, missing.Ok())
	require.ErrorAs(t, missing.Err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClient_CircuitBreaker(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server, WithCircuitBreaker(2, time.Hour))
	server.failing.Store(true)
	query := pagination.Build(pagination.Intent{}, analytics.Defaults)

	for i := 0; i < 2; i++ {
		result := client.Analytics(context.Background(), query)
		var apiErr *APIError
		assert.ErrorAs(t, result.Err, &apiErr)
	}

	result := client.Analytics(context.Background(), query)
	assert.ErrorIs(t, result.Err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), server.hits.Load(), "an open breaker does not contact the API")
}

func TestClient_Analytics(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)

	summary, err := client.Summary(context.Background(), analytics.Period7Days, "").Unwrap()
	require.NoError(t, err)
	assert.Equal(t, int64(459000), summary.TotalViews)

	series, err := client.Chart(context.Background(), analytics.ChartDaily, analytics.Period7Days, "YouTube").Unwrap()
	require.NoError(t, err)
	assert.Len(t, series, 7)
}

func TestClient_SignupEligibility(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)

	first := client.SignupEligibility(context.Background())
	require.NoError(t, first.Err)
	assert.Equal(t, SourceNetwork, first.Source)
	assert.True(t, first.Value.Allowed)
	assert.Equal(t, "127.0.0.1", first.Value.IP)

	second := client.SignupEligibility(context.Background())
	assert.Equal(t, SourceNetwork, second.Source)
	assert.Equal(t, int32(2), server.hits.Load())
}
