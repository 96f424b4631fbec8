package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/ch1tg/GameTrackr-web/internal/apicache"
	apperrors "github.com/ch1tg/GameTrackr-web/pkg/errors"
	"github.com/ch1tg/GameTrackr-web/pkg/httpclient"
)

// Config holds the settings for one API client instance.
type Config struct {
	// BaseURL is the root of the GameTrackr REST API.
	BaseURL string

	// CSRFCookieName is the cookie the server sets alongside the session;
	// its value is echoed back in CSRFHeader on every request.
	CSRFCookieName string
	CSRFHeader     string

	Timeout time.Duration

	// MaxRetries applies to GET requests only; state-changing requests are
	// never retried.
	MaxRetries int
}

// DefaultConfig returns the client defaults matching the production API.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:        baseURL,
		CSRFCookieName: "csrf_access_token",
		CSRFHeader:     "X-CSRF-TOKEN",
		Timeout:        15 * time.Second,
		MaxRetries:     3,
	}
}

// Client is the single configured HTTP client every resource module goes
// through. Each instance carries its own cookie jar, so one Client holds
// exactly one upstream session.
type Client struct {
	base   *url.URL
	http   *httpclient.CircuitBreakerClient
	jar    http.CookieJar
	cache  *apicache.Cache
	logger *slog.Logger
}

// New creates a Client. cache may be nil, in which case public GETs always
// hit the network.
func New(cfg Config, cache *apicache.Cache, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse API base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	hcCfg := httpclient.DefaultConfig()
	hcCfg.Timeout = cfg.Timeout
	hcCfg.MaxRetries = cfg.MaxRetries
	hcCfg.Jar = jar
	hcCfg.Interceptor = csrfInterceptor(jar, base, cfg.CSRFCookieName, cfg.CSRFHeader)

	inner := httpclient.New(hcCfg)
	breaker := httpclient.NewCircuitBreakerClient(inner,
		httpclient.DefaultCircuitBreakerConfig("gametrackr-api"), logger)

	return &Client{
		base:   base,
		http:   breaker,
		jar:    jar,
		cache:  cache,
		logger: logger,
	}, nil
}

// csrfInterceptor copies the CSRF token cookie into the request header,
// mirroring what the server expects on authenticated calls.
func csrfInterceptor(jar http.CookieJar, base *url.URL, cookieName, header string) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(req *http.Request) (*http.Response, error) {
			for _, c := range jar.Cookies(base) {
				if c.Name == cookieName {
					req = req.Clone(req.Context())
					req.Header.Set(header, c.Value)
					break
				}
			}
			return next.RoundTrip(req)
		})
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

// Ping checks upstream reachability, for readiness probes.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.http.Get(ctx, c.endpoint("/games/trending", url.Values{"page": {"1"}, "ordering": {"-added"}}))
	if err != nil {
		return fmt.Errorf("upstream unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path, _ = url.JoinPath(u.Path, path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// getJSON performs a GET and decodes the response into out. Failures are
// normalized: a structured server error keeps its message, anything else
// collapses to fallback or the generic unreachable message.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any, fallback string) error {
	resp, err := c.http.Get(ctx, c.endpoint(path, query))
	if err != nil {
		return apperrors.Unreachable(err)
	}

	return decodeResponse(resp, out, fallback)
}

// getCached is getJSON with a read-through cache for public endpoints whose
// responses do not depend on the session.
func (c *Client) getCached(ctx context.Context, path string, query url.Values, out any, fallback string) error {
	if c.cache == nil {
		return c.getJSON(ctx, path, query, out, fallback)
	}

	key := path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}

	if body, ok := c.cache.Get(ctx, key); ok {
		if err := json.Unmarshal(body, out); err == nil {
			return nil
		}
		// Corrupt entry; fall through to the network.
	}

	resp, err := c.http.Get(ctx, c.endpoint(path, query))
	if err != nil {
		return apperrors.Unreachable(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return httpclient.ParseResponseError(resp, fallback)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Unreachable(err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Unreachable(err)
	}

	c.cache.Set(ctx, key, body)
	return nil
}

// sendJSON performs a state-changing request with an optional JSON body and
// decodes the response into out when out is non-nil.
func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, nil), reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", method, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return apperrors.Unreachable(err)
	}

	return decodeResponse(resp, out, fallback)
}

func decodeResponse(resp *http.Response, out any, fallback string) error {
	if resp.StatusCode >= 400 {
		return httpclient.ParseResponseError(resp, fallback)
	}

	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Unreachable(err)
	}
	return nil
}
