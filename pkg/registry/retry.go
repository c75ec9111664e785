package registry

import (
	"context"
	"errors"
	"time"
)

// retryableError wraps an error to indicate it should trigger a retry.
// Transient failures (connection errors, 5xx responses) are wrapped with
// this type; ErrNotFound and 4xx responses are returned immediately.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// retry executes fn up to c.Attempts times with exponential backoff.
// Only errors wrapped with retryableError trigger another attempt.
func (c *Client) retry(ctx context.Context, fn func() error) error {
	attempts := max(c.Attempts, 1)
	delay := c.RetryDelay
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

func isRetryable(err error) bool {
	return errors.As(err, new(*retryableError))
}
