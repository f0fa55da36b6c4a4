package providers

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSourceUnavailable reports that a workbook or one of its sheets cannot be read.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrProviderUnavailable reports a provider that was never configured.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}
