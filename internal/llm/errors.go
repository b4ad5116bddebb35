package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// ErrorKind classifies provider failures into the engine's stable taxonomy.
type ErrorKind string

// Provider failure kinds
const (
	KindUnavailable   ErrorKind = "provider_unavailable"
	KindRateLimited   ErrorKind = "provider_rate_limited"
	KindAuth          ErrorKind = "provider_auth_error"
	KindContentPolicy ErrorKind = "provider_content_policy"
	KindTimeout       ErrorKind = "provider_timeout"
)

// ProviderError wraps an external provider failure with a stable kind and a
// human-readable message. Raw provider stack traces never propagate past it.
type ProviderError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient: timeouts, rate limits
// and 5xx-equivalents are retried; auth and content-policy failures are not.
func (e *ProviderError) Retryable() bool {
	switch e.Kind {
	case KindUnavailable, KindRateLimited, KindTimeout:
		return true
	default:
		return false
	}
}

// ClassifyError maps a raw provider error onto the taxonomy. Errors that are
// already classified pass through unchanged.
func ClassifyError(err error) *ProviderError {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &ProviderError{Kind: KindTimeout, Message: "provider call timed out", Err: err}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429:
			return &ProviderError{Kind: KindRateLimited, Message: "provider rate limit exceeded", Err: err}
		case apiErr.Code == 401 || apiErr.Code == 403:
			return &ProviderError{Kind: KindAuth, Message: "provider authentication failed", Err: err}
		case apiErr.Code >= 500:
			return &ProviderError{Kind: KindUnavailable, Message: fmt.Sprintf("provider returned %d", apiErr.Code), Err: err}
		}
	}

	return &ProviderError{Kind: KindUnavailable, Message: "provider call failed", Err: err}
}

// IsRetryable reports whether err classifies as a transient provider failure.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return ClassifyError(err).Retryable()
}
