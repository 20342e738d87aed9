package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/rshade/linkstats/internal/cache"
	"github.com/rshade/linkstats/internal/logging"
)

// Defaults used when ClientConfig leaves a field empty.
const (
	DefaultTimeout        = 10 * time.Second
	DefaultQuickStatsDays = 7
	DefaultCompareDays    = 7

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 10 << 20
)

// Cache endpoint names. They prefix every fingerprint.
const (
	endpointProfile    = "profile"
	endpointTraffic    = "traffic"
	endpointTime       = "time"
	endpointQuickStats = "quickstats"
	endpointComparison = "comparison"
)

// ClientConfig configures a Client.
type ClientConfig struct {
	// BaseURL is the API root, e.g. http://localhost:8000/api.
	BaseURL string
	// Timeout bounds each HTTP request. Zero means DefaultTimeout.
	Timeout time.Duration
	// CacheEnabled turns the response cache on.
	CacheEnabled bool
	// CacheTTL is the freshness window. Zero means cache.DefaultTTL.
	CacheTTL time.Duration
	// Coalesce shares one in-flight fetch between concurrent identical misses.
	Coalesce bool
	// RequestsPerSecond limits network fetches. Zero means unlimited.
	RequestsPerSecond float64
	// SkipVersionCheck disables the X-API-Version compatibility warning.
	SkipVersionCheck bool
	// UserAgent is sent with every request.
	UserAgent string
}

// ClientOption customizes a Client after construction from ClientConfig.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client. Its Timeout is left untouched.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithCache replaces the response cache, e.g. to share one between clients
// or inject a clock in tests. It enables caching regardless of CacheEnabled.
func WithCache(store *cache.Store[json.RawMessage]) ClientOption {
	return func(c *Client) {
		c.cache = store
	}
}

// Client fetches analytics from the backend through the response cache.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	cache     *cache.Store[json.RawMessage]
	limiter   *rate.Limiter
	flights   *singleflight.Group
	versions  *versionChecker
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg ClientConfig, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:   strings.TrimRight(base.String(), "/"),
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: timeout},
		versions:  newVersionChecker(cfg.SkipVersionCheck),
	}

	if cfg.CacheEnabled {
		ttl := cfg.CacheTTL
		if ttl == 0 {
			ttl = cache.DefaultTTL
		}
		c.cache = cache.New[json.RawMessage](ttl)
	}
	if cfg.Coalesce {
		c.flights = &singleflight.Group{}
	}
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ProfileAnalytics fetches the full analytics of a profile.
func (c *Client) ProfileAnalytics(ctx context.Context, profileID int, r DateRange) (*ProfileAnalytics, error) {
	if profileID < 1 {
		return nil, ErrInvalidProfileID
	}
	return getJSON[ProfileAnalytics](ctx, c, request{
		endpoint: endpointProfile,
		params:   cache.Params{"profileId": profileID, "startDate": nullable(r.Start), "endDate": nullable(r.End)},
		path:     []string{"analytics", "profile", strconv.Itoa(profileID)},
		query:    rangeQuery(r),
	})
}

// TrafficAnalytics fetches the traffic source breakdown of a profile.
func (c *Client) TrafficAnalytics(ctx context.Context, profileID int, r DateRange) (*TrafficAnalytics, error) {
	if profileID < 1 {
		return nil, ErrInvalidProfileID
	}
	return getJSON[TrafficAnalytics](ctx, c, request{
		endpoint: endpointTraffic,
		params:   cache.Params{"profileId": profileID, "startDate": nullable(r.Start), "endDate": nullable(r.End)},
		path:     []string{"analytics", "traffic", strconv.Itoa(profileID)},
		query:    rangeQuery(r),
	})
}

// TimeAnalytics fetches time-pattern analytics. An empty granularity means daily.
func (c *Client) TimeAnalytics(
	ctx context.Context,
	profileID int,
	granularity Granularity,
	r DateRange,
) (*TimeAnalytics, error) {
	if profileID < 1 {
		return nil, ErrInvalidProfileID
	}
	if granularity == "" {
		granularity = GranularityDaily
	}
	if !granularity.Valid() {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidGranularity, granularity)
	}

	query := rangeQuery(r)
	query.Set("granularity", string(granularity))

	return getJSON[TimeAnalytics](ctx, c, request{
		endpoint: endpointTime,
		params: cache.Params{
			"profileId":   profileID,
			"granularity": string(granularity),
			"startDate":   nullable(r.Start),
			"endDate":     nullable(r.End),
		},
		path:  []string{"analytics", "time", strconv.Itoa(profileID)},
		query: query,
	})
}

// QuickStats fetches the summary of the last days days. Zero means DefaultQuickStatsDays.
func (c *Client) QuickStats(ctx context.Context, profileID, days int) (*QuickStats, error) {
	if profileID < 1 {
		return nil, ErrInvalidProfileID
	}
	if days == 0 {
		days = DefaultQuickStatsDays
	}
	if days < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDays, days)
	}

	return getJSON[QuickStats](ctx, c, request{
		endpoint: endpointQuickStats,
		params:   cache.Params{"profileId": profileID, "days": days},
		path:     []string{"analytics", "quick-stats", strconv.Itoa(profileID)},
		query:    url.Values{"days": {strconv.Itoa(days)}},
	})
}

// Comparison compares the last currentDays with the previousDays before them.
// Zero values mean DefaultCompareDays.
func (c *Client) Comparison(ctx context.Context, profileID, currentDays, previousDays int) (*Comparison, error) {
	if profileID < 1 {
		return nil, ErrInvalidProfileID
	}
	if currentDays == 0 {
		currentDays = DefaultCompareDays
	}
	if previousDays == 0 {
		previousDays = DefaultCompareDays
	}
	if currentDays < 1 || previousDays < 1 {
		return nil, fmt.Errorf("%w: got current=%d previous=%d", ErrInvalidDays, currentDays, previousDays)
	}

	return getJSON[Comparison](ctx, c, request{
		endpoint: endpointComparison,
		params:   cache.Params{"profileId": profileID, "currentDays": currentDays, "previousDays": previousDays},
		path:     []string{"analytics", "compare", strconv.Itoa(profileID)},
		query: url.Values{
			"current_days":  {strconv.Itoa(currentDays)},
			"previous_days": {strconv.Itoa(previousDays)},
		},
	})
}

// ClearCache drops every cached response so the next calls refetch.
func (c *Client) ClearCache() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// CacheStats returns the cache counters, or zero values when caching is off.
func (c *Client) CacheStats() cache.Stats {
	if c.cache == nil {
		return cache.Stats{}
	}
	return c.cache.Stats()
}

// CacheTTL returns the freshness window, or zero when caching is off.
func (c *Client) CacheTTL() time.Duration {
	if c.cache == nil {
		return 0
	}
	return c.cache.TTL()
}

// CacheEnabled reports whether responses are cached.
func (c *Client) CacheEnabled() bool {
	return c.cache != nil
}

// APIVersion returns the last X-API-Version reported by the backend, or "".
func (c *Client) APIVersion() string {
	return c.versions.last()
}

// request describes one logical fetch.
type request struct {
	endpoint string
	params   cache.Params
	path     []string
	query    url.Values
}

// getJSON runs the cache/fetch sequence for r and decodes the body into T.
func getJSON[T any](ctx context.Context, c *Client, r request) (*T, error) {
	raw, err := c.fetch(ctx, r, func(body []byte) error {
		var probe T
		return json.Unmarshal(body, &probe)
	})
	if err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", r.endpoint, err)
	}
	return &out, nil
}

// fetch returns the cached body for r or performs the request. The body is
// cached only when the request succeeded and decode accepted it.
func (c *Client) fetch(ctx context.Context, r request, decode func([]byte) error) (json.RawMessage, error) {
	key := cache.Fingerprint(r.endpoint, r.params)
	log := logging.FromContext(ctx).With().
		Str("component", "analytics").
		Str("endpoint", r.endpoint).
		Logger()

	if c.cache != nil {
		if body, ok := c.cache.Get(key); ok {
			log.Debug().Msg("returning cached response")
			return body, nil
		}
		log.Debug().Msg("cache miss")
	}

	if c.flights == nil {
		return c.fetchAndStore(ctx, key, r, decode)
	}

	// The shared fetch outlives any single caller; the HTTP timeout still bounds it.
	ch := c.flights.DoChan(key, func() (any, error) {
		return c.fetchAndStore(context.WithoutCancel(ctx), key, r, decode)
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", r.endpoint, ctx.Err())
	case res := <-ch:
		if res.Shared {
			log.Debug().Msg("shared in-flight response")
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(json.RawMessage), nil
	}
}

func (c *Client) fetchAndStore(
	ctx context.Context,
	key string,
	r request,
	decode func([]byte) error,
) (json.RawMessage, error) {
	body, err := c.do(ctx, r)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "analytics").
			Str("endpoint", r.endpoint).
			Err(err).
			Msg("fetch failed")
		return nil, err
	}

	if decodeErr := decode(body); decodeErr != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", r.endpoint, decodeErr)
	}

	if c.cache != nil {
		c.cache.Put(key, body)
	}
	return body, nil
}

// do performs the HTTP GET for r and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s: waiting for rate limiter: %w", r.endpoint, err)
		}
	}

	endpointURL, err := url.JoinPath(c.baseURL, r.path...)
	if err != nil {
		return nil, fmt.Errorf("%s: building URL: %w", r.endpoint, err)
	}
	if len(r.query) > 0 {
		endpointURL += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: creating request: %w", r.endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", r.endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.versions.check(ctx, resp.Header.Get(apiVersionHeader))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%s: reading response: %w", r.endpoint, err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", r.endpoint, ErrResponseTooLarge, maxBodyBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   r.endpoint,
			Detail:     errorDetail(body),
		}
	}
	return body, nil
}

// errorDetail extracts the FastAPI {"detail": "..."} message, if any.
func errorDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}
	// Validation errors carry a list; keep it as raw JSON.
	return string(payload.Detail)
}

func rangeQuery(r DateRange) url.Values {
	q := url.Values{}
	if r.Start != "" {
		q.Set("start_date", r.Start)
	}
	if r.End != "" {
		q.Set("end_date", r.End)
	}
	return q
}

// nullable maps an empty bound to nil so "unset" fingerprints as null.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// IsCanceled reports whether err came from a canceled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
