package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"github.com/videra/data-server/internal/analytics"
	"github.com/videra/data-server/internal/api/schema"
	"github.com/videra/data-server/internal/content"
	"github.com/videra/data-server/internal/pagination"
	"github.com/videra/data-server/internal/signup"
	"github.com/videra/data-server/internal/trend"
	"github.com/videra/data-server/internal/user"
)

const (
	// DefaultTimeout is the timeout of a single request if none is configured
	DefaultTimeout = 30 * time.Second

	// DefaultCacheLifetime is the time a response stays fresh if no lifetime is configured
	DefaultCacheLifetime = 5 * time.Minute

	// DefaultStaleLifetime is the time a response is kept as fallback for outages if no lifetime is configured
	DefaultStaleLifetime = 24 * time.Hour

	// DefaultMaxConsecutiveFailures is the amount of failed requests in a row that opens the circuit breaker
	DefaultMaxConsecutiveFailures = 5

	// DefaultOpenTimeout is the time the circuit breaker stays open before letting a trial request through
	DefaultOpenTimeout = 30 * time.Second
)

// ErrInvalidBaseURL is returned by New if the base URL is not an absolute HTTP(S) URL
var ErrInvalidBaseURL = errors.New("the API base URL must be an absolute http(s) URL")

// APIError represents an error response sent by the API
type APIError struct {
	Status int
	Errors []*schema.Error
}

// Error implements the error interface
func (err *APIError) Error() string {
	if len(err.Errors) == 0 {
		return fmt.Sprintf("the API responded with status %d", err.Status)
	}
	messages := make([]string, 0, len(err.Errors))
	for _, obj := range err.Errors {
		messages = append(messages, obj.Message)
	}
	return fmt.Sprintf("the API responded with status %d: %s", err.Status, strings.Join(messages, " "))
}

// Option configures a Client
type Option func(client *Client)

// WithHTTPClient sets the HTTP client used to perform requests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		client.http = httpClient
	}
}

// WithTimeout sets the timeout of a single request
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		client.timeout = timeout
	}
}

// WithCacheLifetime sets the time responses stay fresh; a non-positive lifetime disables caching
func WithCacheLifetime(lifetime time.Duration) Option {
	return func(client *Client) {
		client.cacheLifetime = lifetime
	}
}

// WithStaleLifetime sets the time responses are kept as fallback values for outages; a non-positive lifetime keeps
// them as long as they stay fresh
func WithStaleLifetime(lifetime time.Duration) Option {
	return func(client *Client) {
		client.staleLifetime = lifetime
	}
}

// WithCircuitBreaker configures when the circuit breaker opens and how long it stays open
func WithCircuitBreaker(maxConsecutiveFailures uint32, openTimeout time.Duration) Option {
	return func(client *Client) {
		client.maxFailures = maxConsecutiveFailures
		client.openTimeout = openTimeout
	}
}

// Client is a client of the dashboard API.
// Requests are guarded by a circuit breaker; GET responses are cached and kept as stale fallback values.
type Client struct {
	baseURL       *url.URL
	http          *http.Client
	timeout       time.Duration
	cacheLifetime time.Duration
	staleLifetime time.Duration
	maxFailures   uint32
	openTimeout   time.Duration

	breaker *gobreaker.CircuitBreaker
	cache   *Cache
}

// New creates a new dashboard API client talking to the given base URL
func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	client := &Client{
		baseURL:       parsed,
		http:          http.DefaultClient,
		timeout:       DefaultTimeout,
		cacheLifetime: DefaultCacheLifetime,
		staleLifetime: DefaultStaleLifetime,
		maxFailures:   DefaultMaxConsecutiveFailures,
		openTimeout:   DefaultOpenTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}

	client.cache = NewCache(client.cacheLifetime, client.staleLifetime)
	client.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "videra-api",
		Timeout: client.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= client.maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker changed its state")
		},
	})
	return client, nil
}

// Content retrieves a page of content items
func (client *Client) Content(ctx context.Context, query pagination.Query) Result[*pagination.Page[*content.Item]] {
	return list[*content.Item](ctx, client, "/v1/content", query)
}

// ContentItem retrieves a single content item
func (client *Client) ContentItem(ctx context.Context, id string) Result[*content.Item] {
	return single[*content.Item](ctx, client, "/v1/content/"+url.PathEscape(id), nil)
}

// Analytics retrieves a page of analytics data points
func (client *Client) Analytics(ctx context.Context, query pagination.Query) Result[*pagination.Page[*analytics.DataPoint]] {
	return list[*analytics.DataPoint](ctx, client, "/v1/analytics", query)
}

// Summary retrieves the analytics summary of a period
func (client *Client) Summary(ctx context.Context, period analytics.Period, platform string) Result[*analytics.Summary] {
	values := url.Values{}
	values.Set("period", string(period))
	if platform != "" {
		values.Set("platform", platform)
	}
	return single[*analytics.Summary](ctx, client, "/v1/analytics/summary", values)
}

// Chart retrieves an analytics chart series
func (client *Client) Chart(ctx context.Context, chartType analytics.ChartType, period analytics.Period, platform string) Result[[]*analytics.ChartPoint] {
	values := url.Values{}
	values.Set("period", string(period))
	if platform != "" {
		values.Set("platform", platform)
	}
	return single[[]*analytics.ChartPoint](ctx, client, "/v1/analytics/charts/"+url.PathEscape(string(chartType)), values)
}

// Trends retrieves a page of trending topics
func (client *Client) Trends(ctx context.Context, query pagination.Query) Result[*pagination.Page[*trend.Topic]] {
	return list[*trend.Topic](ctx, client, "/v1/trends", query)
}

// Users retrieves a page of users
func (client *Client) Users(ctx context.Context, query pagination.Query) Result[*pagination.Page[*user.User]] {
	return list[*user.User](ctx, client, "/v1/admin/users", query)
}

// SignupEligibility checks whether the calling network may create another free account.
// It is never cached.
func (client *Client) SignupEligibility(ctx context.Context) Result[*signup.Result] {
	var response schema.Response[*signup.Result]
	if err := client.do(ctx, "/v1/signup/eligibility", nil, &response); err != nil {
		return failed[*signup.Result](err)
	}
	return Result[*signup.Result]{Value: response.Data, Source: SourceNetwork}
}

// InvalidateCache drops every fresh cached response
func (client *Client) InvalidateCache() {
	client.cache.Clear()
}

// Close releases the resources of the client.
// The client must not be used afterwards.
func (client *Client) Close() {
	client.cache.Close()
}

func list[T any](ctx context.Context, client *Client, path string, query pagination.Query) Result[*pagination.Page[T]] {
	return cached(ctx, client, path, query.Values(), func(target *pagination.Page[T]) error {
		var response schema.ListResponse[T]
		if err := client.do(ctx, path, query.Values(), &response); err != nil {
			return err
		}
		*target = pagination.Page[T]{
			Items:      response.Data,
			Pagination: response.Pagination,
			Meta:       response.Meta,
		}
		if target.Items == nil {
			target.Items = []T{}
		}
		return nil
	})
}

func single[T any](ctx context.Context, client *Client, path string, values url.Values) Result[T] {
	result := cached(ctx, client, path, values, func(target *schema.Response[T]) error {
		return client.do(ctx, path, values, target)
	})
	if result.Value == nil {
		return failed[T](result.Err)
	}
	return Result[T]{Value: result.Value.Data, Source: result.Source, Err: result.Err}
}

// cached serves a fresh cached value if present and fetches the value otherwise.
// If fetching fails because the API is unreachable, the last known value is returned as a stale value.
func cached[T any](ctx context.Context, client *Client, path string, values url.Values, fetch func(target *T) error) Result[*T] {
	key := path + "?" + values.Encode()
	if val, ok := client.cache.Get(key); ok {
		if obj, ok := val.(*T); ok {
			return Result[*T]{Value: obj, Source: SourceCache}
		}
	}

	target := new(T)
	if err := fetch(target); err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Status >= http.StatusInternalServerError {
			if val, ok := client.cache.LastKnown(key); ok {
				if obj, ok := val.(*T); ok {
					return Result[*T]{Value: obj, Source: SourceStale, Err: err}
				}
			}
		}
		return failed[*T](err)
	}

	client.cache.Set(key, target)
	return Result[*T]{Value: target, Source: SourceNetwork}
}

// do performs a GET request through the circuit breaker and decodes the JSON response into target.
// Client errors (4xx) do not count as failures of the API.
func (client *Client) do(ctx context.Context, path string, values url.Values, target any) error {
	endpoint := *client.baseURL
	endpoint.Path = strings.TrimRight(endpoint.Path, "/") + path
	endpoint.RawQuery = values.Encode()

	raw, err := client.breaker.Execute(func() (any, error) {
		ctx, cancel := context.WithTimeout(ctx, client.timeout)
		defer cancel()

		request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
		if err != nil {
			return nil, err
		}
		request.Header.Set("Accept", "application/json")

		response, err := client.http.Do(request)
		if err != nil {
			return nil, err
		}
		defer response.Body.Close()

		body, err := io.ReadAll(io.LimitReader(response.Body, schema.MaxBodySize*8))
		if err != nil {
			return nil, err
		}
		if response.StatusCode >= http.StatusInternalServerError {
			return nil, decodeAPIError(response.StatusCode, body)
		}
		return &rawResponse{status: response.StatusCode, body: body}, nil
	})
	if err != nil {
		return err
	}

	res := raw.(*rawResponse)
	if res.status >= http.StatusBadRequest {
		return decodeAPIError(res.status, res.body)
	}
	if err := json.Unmarshal(res.body, target); err != nil {
		return fmt.Errorf("could not decode the API response: %w", err)
	}
	return nil
}

type rawResponse struct {
	status int
	body   []byte
}

func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	var response schema.ErrorResponse
	if err := json.Unmarshal(body, &response); err == nil {
		apiErr.Errors = response.Errors
	}
	return apiErr
}
