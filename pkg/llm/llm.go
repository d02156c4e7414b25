package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// LLM is the interface all chat model clients implement
type LLM interface {
	// Chat sends a system prompt and a user prompt and returns the raw
	// response text
	Chat(ctx context.Context, system, prompt string) (string, error)

	// GetModel returns the model identifier this client targets
	GetModel() string
}

// Options configures a client created by New
type Options struct {
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// APIError is a non-2xx reply from a provider API
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// Retryable reports whether another attempt could plausibly succeed.
// Rate limits, server errors and request-shape rejections are worth
// retrying; authentication failures are not.
func (e *APIError) Retryable() bool {
	switch {
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return false
	case e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode == http.StatusBadRequest, e.StatusCode == http.StatusUnprocessableEntity:
		return true
	case e.StatusCode == http.StatusRequestTimeout:
		return true
	case e.StatusCode >= 500:
		return true
	default:
		return false
	}
}

// IsRetryable classifies an invocation failure. API errors answer for
// themselves; anything that looks like a transport problem (timeout,
// connection refused, DNS) is treated as transient. Context cancellation
// is never retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	return false
}
