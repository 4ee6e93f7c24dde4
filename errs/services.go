package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party API Errors
var (
	ErrUpstream          = errors.New("upstream request failed")
	ErrUpstreamNotFound  = errors.New("upstream returned no results")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrWithdrawn         = errors.New("capability withdrawn")
	ErrTimeout           = errors.New("timeout")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
)

func NewUpstreamError(title, message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Title:      title,
		Message:    message,
		Cause:      cause,
		err:        ErrUpstream,
	}
}

// NewGoneError is returned by routes that were switched off on purpose.
// Clients should not retry them.
func NewGoneError(title, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusGone,
		Title:      title,
		Message:    message,
		err:        ErrWithdrawn,
	}
}

func NewRateLimitError(limit, retryAfter int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		Title:      "Rate limit exceeded",
		Message:    fmt.Sprintf("Too many requests. Limit: %d per minute", limit),
		RetryAfter: retryAfter,
		err:        ErrRateLimitExceeded,
	}
}

func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}

func IsWithdrawn(err error) bool {
	return errors.Is(err, ErrWithdrawn)
}
