package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared by the content API client and the loaders.
var (
	// ErrNotFound is returned when the upstream resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNetwork is returned for timeouts, connection failures and 5xx responses.
	ErrNetwork = errors.New("network error")
)

// RetryableError marks an error as transient.
type RetryableError struct{ Err error }

// Retryable wraps err so [RetryWithBackoff] retries it. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryPolicy controls [RetryPolicy.Do].
type RetryPolicy struct {
	Attempts int           // Total tries including the first
	Delay    time.Duration // Wait before the second try; doubles afterwards
}

// DefaultRetry makes three attempts starting with a one second delay.
var DefaultRetry = RetryPolicy{Attempts: 3, Delay: time.Second}

// RetryWithBackoff runs fn under [DefaultRetry].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultRetry.Do(ctx, fn)
}

// Do calls fn until it succeeds, returns a non-retryable error, or the
// attempts run out. Context cancellation during a wait returns ctx.Err().
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var lastErr error

	for i := 0; i < attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}
