package llm

import (
	"context"
	"time"
)

// RetryPolicy wraps external provider calls with bounded retries and
// exponential backoff. Only transient failures are retried; validation and
// parse failures never reach this layer.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// Retryable decides whether a failure is worth another attempt.
	// Defaults to IsRetryable.
	Retryable func(error) bool
}

// DefaultRetryPolicy returns the standard policy for provider calls.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts:    3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		Retryable:      IsRetryable,
	}
}

// Do invokes fn until it succeeds, fails non-transiently, exhausts the attempt
// budget, or the context is cancelled. The last error is always classified
// before being returned.
func (p *RetryPolicy) Do(ctx context.Context, fn func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}

	backoff := p.InitialBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) || attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if p.MaxBackoff > 0 && backoff > p.MaxBackoff {
			backoff = p.MaxBackoff
		}
	}

	return ClassifyError(lastErr)
}
