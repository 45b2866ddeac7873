// Package transport provides the JSON-over-HTTP client shared by all
// gateway adapters.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/CJaimeDev/chile-payments-sdk/core/domain"
	"go.uber.org/zap"
)

// Client wraps net/http with a base URL, a fixed timeout and persistent
// default headers. Headers are set once during adapter construction and
// read-only afterwards, so concurrent requests need no locking.
type Client struct {
	baseURL    string
	provider   string
	httpClient *http.Client
	headers    map[string]string
	logger     *zap.Logger
}

// New creates a Client for the given base URL. The provider name is used to
// attribute errors.
func New(baseURL, provider string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		provider: provider,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: map[string]string{},
		logger:  logger,
	}
}

// SetHeaders replaces the persistent default headers sent on every request.
func (c *Client) SetHeaders(headers map[string]string) {
	c.headers = map[string]string{}
	for k, v := range headers {
		c.headers[k] = v
	}
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	url := path
	if !strings.HasPrefix(path, "http") {
		url = c.baseURL + path
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return domain.NewProviderError(c.provider, "failed to encode request body", 0, err.Error())
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return domain.NewProviderError(c.provider, "failed to build request", 0, err.Error())
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug("gateway request",
		zap.String("provider", c.provider),
		zap.String("method", method),
		zap.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return domain.NewTimeoutError()
		}
		return domain.NewProviderError(c.provider, "request failed: "+err.Error(), 0, "")
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewProviderError(c.provider, "failed to read response body", resp.StatusCode, "")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("gateway error response",
			zap.String("provider", c.provider),
			zap.Int("status", resp.StatusCode))
		return domain.NewProviderError(c.provider,
			"gateway returned "+resp.Status, resp.StatusCode, string(rawBody))
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(rawBody, out); err != nil {
		return domain.NewProviderError(c.provider,
			"failed to decode response", resp.StatusCode, string(rawBody))
	}

	return nil
}

// isTimeout reports whether the transport error was a deadline expiry.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
