package sources

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSourceUnavailable indicates a source could not produce data and the
	// caller should try the next source in the chain.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrNotConfigured indicates a source is missing credentials or a base
	// URL. Retrying cannot help.
	ErrNotConfigured = errors.New("source not configured")
)

// RateLimitError captures a rate limit response from an upstream API.
type RateLimitError struct {
	Source     string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "source rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status=%d)", e.Source, msg, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Source, msg)
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}
