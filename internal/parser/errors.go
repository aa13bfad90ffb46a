package parser

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bridge/internal/domain"
)

const defaultRetryAfter = 60 * time.Second

// RateLimitError indicates the collaborator returned HTTP 429. It is surfaced
// to the caller as-is; nothing in Bridge retries automatically.
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-success HTTP status from the collaborator.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return domain.ErrCollaboratorFailed
}

// NewStatusError maps an HTTP failure to a RateLimitError (429) or StatusError.
func NewStatusError(provider string, resp *http.Response, body []byte) error {
	excerpt := Truncate(string(body), 500)
	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Provider:   provider,
			RetryAfter: ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
			Err:        &StatusError{Provider: provider, StatusCode: resp.StatusCode, Body: excerpt},
		}
	}
	return &StatusError{Provider: provider, StatusCode: resp.StatusCode, Body: excerpt}
}

// ParseRetryAfter reads a Retry-After header given either as delay seconds
// or as an HTTP date. Missing or unusable values yield 60s.
func ParseRetryAfter(val string, now time.Time) time.Duration {
	val = strings.TrimSpace(val)
	if val == "" {
		return defaultRetryAfter
	}
	if secs, err := strconv.Atoi(val); err == nil {
		if secs <= 0 {
			return defaultRetryAfter
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(val); err == nil {
		if d := at.Sub(now); d > 0 {
			return d.Round(time.Second)
		}
	}
	return defaultRetryAfter
}

// Truncate shortens s to maxLen bytes, appending an ellipsis when cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
