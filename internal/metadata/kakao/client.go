// Package kakao provides a client for the Kakao book search API, used
// to enrich feed records and to replay user search keywords.
package kakao

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Rate limit: 10 requests per second, burst of 5.
	defaultRPS   = 10.0
	defaultBurst = 5

	defaultTimeout  = 30 * time.Second
	defaultPageSize = 50
	maxPageSize     = 50
	maxPage         = 50 // The API refuses pages beyond 50
)

// Config holds client configuration.
type Config struct {
	BaseURL string
	RESTKey string
	Timeout time.Duration
}

// Client is a rate-limited Kakao book search client.
type Client struct {
	baseURL string
	restKey string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates a new Kakao client.
func New(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: cfg.BaseURL,
		restKey: cfg.RESTKey,
		http: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
		logger:  logger,
	}
}

// doRequest executes an HTTP request with rate limiting.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "KakaoAK "+c.restKey)

	c.logger.Debug("kakao request", "path", path, "query", query.Get("query"))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusBadRequest:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
