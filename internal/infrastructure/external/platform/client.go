// Package platform is the console's REST client for the invoice-financing API.
// Every call forwards the caller's bearer token from the request context and
// decodes the response envelope once, so callers receive typed values.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/garyjia/finance-console/internal/application/port"
	"github.com/garyjia/finance-console/internal/auth"
)

const maxResponseBytes = 10 << 20

// Config holds platform client configuration
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second across all callers
	Burst     int
}

// Client implements port.PlatformClient over HTTP
type Client struct {
	urls       BaseURLs
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a new platform client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		urls:       NormalizeBaseURL(cfg.BaseURL),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger,
	}
}

// BaseURLs returns the normalized platform roots
func (c *Client) BaseURLs() BaseURLs {
	return c.urls
}

// do performs one request against base+path and returns the raw body of a 2xx answer
func (c *Client) do(ctx context.Context, method, base, path string, query url.Values, body interface{}) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := auth.TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Platform request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("platform request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read platform response: %w", err)
	}

	c.logger.Debug("Platform request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, respBody)
		if resp.StatusCode >= 500 {
			c.logger.Warn("Platform returned server error",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.String("message", apiErr.Message))
		}
		return nil, apiErr
	}

	return respBody, nil
}

func getList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	body, err := c.do(ctx, http.MethodGet, c.urls.V1, path, query, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](body)
}

func sendItem[T any](ctx context.Context, c *Client, method, path string, payload interface{}) (*T, error) {
	body, err := c.do(ctx, method, c.urls.V1, path, nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeItem[T](body)
}

func getRaw(ctx context.Context, c *Client, path string, query url.Values) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, c.urls.V1, path, query, nil)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("platform returned invalid JSON for %s", path)
	}
	return json.RawMessage(body), nil
}

// Verify interface compliance
var _ port.PlatformClient = (*Client)(nil)
