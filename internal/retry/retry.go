// Package retry runs fallible calls with a bounded number of attempts and a
// linear backoff between them.
package retry

import (
	"context"
	"fmt"
	"time"
)

type Policy struct {
	Attempts int
	Backoff  time.Duration
	// Retryable reports whether a failed attempt may be repeated. Nil means
	// every error is retryable.
	Retryable func(error) bool
}

// Do calls fn until it succeeds, the attempts are used up, the error is not
// retryable, or ctx is done. The wait before attempt i+1 is Backoff*(i+1).
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if p.Retryable != nil && !p.Retryable(err) {
			return zero, err
		}
		if i == attempts-1 {
			break
		}
		wait := p.Backoff * time.Duration(i+1)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, fmt.Errorf("retry aborted: %w", ctx.Err())
		case <-timer.C:
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
