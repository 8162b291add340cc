package fetch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// ClientOptions configures the plain HTTP client used for JSON/document
// endpoints that do not need rendering (the EDGAR APIs).
type ClientOptions struct {
	UserAgent    string
	Timeout      time.Duration
	RateLimiters map[string]*rate.Limiter
}

// DefaultRateLimiters returns per-host limiters for hosts with published
// fair-access policies.
func DefaultRateLimiters() map[string]*rate.Limiter {
	return map[string]*rate.Limiter{
		"www.sec.gov":  rate.NewLimiter(10, 10),
		"data.sec.gov": rate.NewLimiter(10, 10),
	}
}

// Client fetches documents over plain HTTP with per-host rate limiting.
// No automatic retries: a failed fetch is abandoned and the caller moves on.
type Client struct {
	client   *http.Client
	opts     ClientOptions
	limiters map[string]*rate.Limiter
	fallback *rate.Limiter
}

// NewClient creates a Client with defaults filled in.
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "collab-radar/1.0"
	}
	limiters := opts.RateLimiters
	if limiters == nil {
		limiters = DefaultRateLimiters()
	}
	return &Client{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		opts:     opts,
		limiters: limiters,
		fallback: rate.NewLimiter(20, 20),
	}
}

func (c *Client) limiterFor(rawURL string) *rate.Limiter {
	u, err := url.Parse(rawURL)
	if err != nil {
		return c.fallback
	}
	if lim, ok := c.limiters[u.Host]; ok {
		return lim
	}
	return c.fallback
}

func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	if err := c.limiterFor(rawURL).Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "fetch: rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: create request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch: get %s", rawURL)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, eris.Errorf("fetch: unexpected status %d from %s", resp.StatusCode, rawURL)
	}
	return resp, nil
}

// GetString fetches rawURL and returns the body as a string.
func (c *Client) GetString(ctx context.Context, rawURL string) (string, error) {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return "", eris.Wrapf(err, "fetch: read body from %s", rawURL)
	}
	return string(body), nil
}

// GetJSON fetches rawURL and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return eris.Wrapf(err, "fetch: decode JSON from %s", rawURL)
	}
	return nil
}
