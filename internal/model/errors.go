package model

import (
	"fmt"
	"time"
)

// HTTPError is returned by remote catalogs for non-200 responses so that
// retry logic can inspect the status code.
type HTTPError struct {
	URL        string
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	prefix := fmt.Sprintf("HTTP %d", e.StatusCode)
	if e.URL != "" {
		prefix = fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	}
	return prefix
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Temporary reports whether the status is worth retrying (429 or 5xx).
func (e *HTTPError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
