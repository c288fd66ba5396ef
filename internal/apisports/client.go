// Package apisports implements the API-SPORTS provider client for every
// supported league family.
package apisports

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/edge-picks/internal/metrics"
	"github.com/yourusername/edge-picks/internal/models"
)

// ClientConfig holds configuration for the provider client.
type ClientConfig struct {
	APIKey            string
	Timeout           time.Duration
	MaxRetries        int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	RateLimit         float64 // requests per second
	CircuitBreakerMax int     // consecutive failures before the circuit opens
	CacheTTL          time.Duration
	SoccerLeagueID    int    // default soccer competition; 0 keeps the EPL
	BaseURLOverride   string // routes every league family to one base URL
}

// DefaultClientConfig returns recommended defaults tuned to the provider's
// free-tier rate limits.
func DefaultClientConfig(apiKey string) ClientConfig {
	return ClientConfig{
		APIKey:            apiKey,
		Timeout:           20 * time.Second,
		MaxRetries:        3,
		RetryWaitMin:      250 * time.Millisecond,
		RetryWaitMax:      8 * time.Second,
		RateLimit:         5.0,
		CircuitBreakerMax: 5,
		CacheTTL:          2 * time.Minute,
	}
}

// Client is a rate-limited, retrying API-SPORTS client with a short TTL
// response cache. Responses are cached per URL+query so slate builds that
// touch the same statistics endpoint repeatedly stay within quota.
type Client struct {
	http              *retryablehttp.Client
	limiter           *rate.Limiter
	responses         *cache.Cache
	apiKey            string
	baseURLOverride   string
	soccerLeagueID    int
	circuitBreakerMax int
	logger            *logrus.Logger

	// breaker state, shared across cron-spawned goroutines
	breakerMu         sync.Mutex
	consecutiveErrors int
	circuitOpen       bool
	lastError         error
}

// NewClient creates a new provider client.
func NewClient(cfg ClientConfig, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = retryPolicy
	retryClient.Logger = nil

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}

	soccerID := cfg.SoccerLeagueID
	if soccerID == 0 {
		soccerID = leagueIDs[models.LeagueSoccer]
	}

	return &Client{
		http:              retryClient,
		limiter:           rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		responses:         cache.New(ttl, ttl*2),
		apiKey:            cfg.APIKey,
		baseURLOverride:   cfg.BaseURLOverride,
		soccerLeagueID:    soccerID,
		circuitBreakerMax: cfg.CircuitBreakerMax,
		logger:            logger,
	}
}

// retryPolicy retries on connection errors, 429 and 5xx responses.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return true, nil
	}
	return false, nil
}

// LeagueID returns the provider league id, honoring a per-call override.
func (c *Client) LeagueID(league models.League, override int) int {
	if override > 0 {
		return override
	}
	if league == models.LeagueSoccer {
		return c.soccerLeagueID
	}
	return leagueIDs[league]
}

// get performs an authenticated GET against the league's base URL, with
// rate limiting, circuit breaking and response caching.
func (c *Client) get(ctx context.Context, league models.League, path string, params url.Values) (*Envelope, error) {
	op := strings.TrimPrefix(path, "/")

	base := baseURLs[league]
	if c.baseURLOverride != "" {
		base = c.baseURLOverride
	}
	endpoint := base + path
	key := cacheKey(endpoint, params)
	if cached, found := c.responses.Get(key); found {
		metrics.ProviderCacheHitsTotal.Inc()
		return cached.(*Envelope), nil
	}
	metrics.ProviderCacheMissesTotal.Inc()

	c.breakerMu.Lock()
	open, lastErr := c.circuitOpen, c.lastError
	c.breakerMu.Unlock()
	if open {
		return nil, NewProviderError(op, ErrCodeNetwork, "circuit breaker open", lastErr)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, NewProviderError(op, ErrCodeRateLimited, "rate limiter wait failed", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, NewProviderError(op, ErrCodeBadRequest, "failed to build request", err)
	}
	req.Header.Set("x-apisports-key", c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.ProviderRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		c.recordFailure(err)
		metrics.ProviderRequestsTotal.WithLabelValues(op, "error").Inc()
		return nil, NewProviderError(op, ErrCodeNetwork, "request failed", err)
	}
	defer resp.Body.Close()

	metrics.ProviderRequestsTotal.WithLabelValues(op, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		c.recordFailure(fmt.Errorf("status %d", resp.StatusCode))
		return nil, NewProviderError(op, ErrCodeRateLimited, "provider rate limit exceeded", nil)
	case resp.StatusCode >= 500:
		c.recordFailure(fmt.Errorf("status %d", resp.StatusCode))
		return nil, NewProviderError(op, ErrCodeServer, fmt.Sprintf("unexpected status: %d", resp.StatusCode), nil)
	case resp.StatusCode != http.StatusOK:
		return nil, NewProviderError(op, ErrCodeBadRequest, fmt.Sprintf("unexpected status: %d", resp.StatusCode), nil)
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, NewProviderError(op, ErrCodeInvalidData, "invalid response body", err)
	}
	if env.HasErrors() {
		return nil, NewProviderError(op, ErrCodeBadRequest, fmt.Sprintf("provider rejected request: %s", string(env.Errors)), nil)
	}

	c.recordSuccess()
	c.responses.SetDefault(key, &env)
	return &env, nil
}

// getPaginated follows the provider's paging cursor and returns every page.
func (c *Client) getPaginated(ctx context.Context, league models.League, path string, params url.Values) ([]*Envelope, error) {
	var pages []*Envelope
	page := 1
	for {
		params.Set("page", fmt.Sprintf("%d", page))
		env, err := c.get(ctx, league, path, params)
		if err != nil {
			return nil, err
		}
		pages = append(pages, env)

		current := env.Paging.Current
		total := env.Paging.Total
		if current == 0 {
			current = page
		}
		if total == 0 || current >= total {
			break
		}
		page++
	}
	return pages, nil
}

func (c *Client) recordFailure(err error) {
	c.breakerMu.Lock()
	defer c.breakerMu.Unlock()

	c.consecutiveErrors++
	c.lastError = err
	if c.consecutiveErrors >= c.circuitBreakerMax {
		if !c.circuitOpen {
			metrics.CircuitBreakerTripsTotal.Inc()
			c.logger.WithError(err).Warnf("Provider circuit breaker opened after %d consecutive errors", c.consecutiveErrors)
		}
		c.circuitOpen = true
	}
}

func (c *Client) recordSuccess() {
	c.breakerMu.Lock()
	defer c.breakerMu.Unlock()

	c.consecutiveErrors = 0
	c.circuitOpen = false
}

// ResetCircuit closes the circuit breaker, allowing requests again.
func (c *Client) ResetCircuit() {
	c.recordSuccess()
}

// cacheKey builds a deterministic cache key from the endpoint and params.
func cacheKey(endpoint string, params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(endpoint)
	for _, k := range keys {
		b.WriteByte('&')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params.Get(k))
	}
	return b.String()
}
