// Package seoji provides a client for the national bibliographic feed API.
// The feed publishes newly registered ISBNs as paginated JSON keyed by
// publication predate.
package seoji

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultRetries  = 3
	retryBackoff    = 500 * time.Millisecond
	defaultPageSize = 100
)

// Config holds client configuration.
type Config struct {
	BaseURL    string
	CertKey    string
	Timeout    time.Duration
	MaxRetries int
}

// Client is a client for the bibliographic feed API.
type Client struct {
	baseURL    string
	certKey    string
	maxRetries int
	http       *http.Client
	logger     *slog.Logger
}

// New creates a new feed client.
func New(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = defaultRetries
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		certKey:    cfg.CertKey,
		maxRetries: retries,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// doRequest executes a GET with retries on transient failures.
// Network errors and 5xx responses are retried; 4xx responses are not.
func (c *Client) doRequest(ctx context.Context, query url.Values) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * retryBackoff):
			}
		}

		body, retryable, err := c.doOnce(ctx, query)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}

		c.logger.Warn("feed request failed, retrying",
			"attempt", attempt,
			"max_retries", c.maxRetries,
			"error", err,
		)
	}

	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, query url.Values) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "BookHive/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, false, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, true, ErrServer
	case resp.StatusCode == http.StatusBadRequest:
		return nil, false, ErrBadRequest
	default:
		return nil, false, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
