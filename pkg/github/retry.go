package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/go-github/v69/github"
)

// withRetry runs a read operation, retrying rate limits and server errors
// with exponential backoff. Other errors are returned at once.
// Mutations must not go through here.
func (c *Client) withRetry(ctx context.Context, op string, fn func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval
	bo.MaxInterval = maxRetryInterval

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return backoff.Permanent(err)
		}
		c.log.Debug(fmt.Sprintf("%s failed (attempt %d), retrying: %v", op, attempt, err))
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(bo, c.maxRetries), ctx))
}

// isRetryable reports whether err is a transient API failure.
func isRetryable(err error) bool {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return true
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return respErr.Response.StatusCode >= http.StatusInternalServerError
	}
	return false
}
