package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client provides shared HTTP functionality for registry API clients.
// It handles retry logic, timeouts, and common request headers.
// The zero configuration (via NewClient) retries transient failures up to
// three times with exponential backoff.
type Client struct {
	HTTP       *http.Client
	Headers    map[string]string
	Attempts   int
	RetryDelay time.Duration
}

// NewClient creates a Client with the given per-request timeout.
// A timeout of 0 uses the default of 5 seconds.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		HTTP:       &http.Client{Timeout: timeout},
		Attempts:   3,
		RetryDelay: time.Second,
	}
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// Transient failures (network errors, 5xx) are retried with backoff.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.retry(ctx, func() error {
		body, err := c.doRequest(ctx, url)
		if err != nil {
			return err
		}
		defer body.Close()
		if err := json.NewDecoder(body).Decode(v); err != nil {
			return fmt.Errorf("%w: decoding %s: %v", ErrNetwork, url, err)
		}
		return nil
	})
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &retryableError{fmt.Errorf("%w: %v", ErrNetwork, err)}
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &retryableError{fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
