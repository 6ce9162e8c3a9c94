// Package retry wraps a job catalog so that flaky remote endpoints get a few
// more chances before the board gives up.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/amishk599/jobboard/internal/model"
)

const jitterFraction = 0.3

// RetrySource decorates a model.JobSource with exponential backoff.
type RetrySource struct {
	inner     model.JobSource
	name      string
	attempts  int
	baseDelay time.Duration
	logger    *slog.Logger
}

// NewRetrySource wraps inner. attempts is the total number of calls made,
// including the first; values below 1 are treated as 1.
func NewRetrySource(inner model.JobSource, name string, attempts int, baseDelay time.Duration, logger *slog.Logger) *RetrySource {
	return &RetrySource{
		inner:     inner,
		name:      name,
		attempts:  max(attempts, 1),
		baseDelay: baseDelay,
		logger:    logger,
	}
}

// FetchJobs calls the wrapped source until it succeeds, returns a
// non-retryable error, or runs out of attempts.
func (r *RetrySource) FetchJobs(ctx context.Context) ([]model.Job, error) {
	var err error
	for attempt := 1; ; attempt++ {
		var jobs []model.Job
		jobs, err = r.inner.FetchJobs(ctx)
		if err == nil {
			return jobs, nil
		}
		if !Retryable(err) || attempt == r.attempts {
			break
		}

		wait := r.delay(attempt, err)
		r.logger.Warn("catalog fetch failed, retrying",
			"catalog", r.name,
			"attempt", attempt,
			"attempts", r.attempts,
			"wait", wait,
			"error", err,
		)

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, fmt.Errorf("fetching %s: %w", r.name, ctx.Err())
		case <-t.C:
		}
	}
	return nil, err
}

// delay is baseDelay doubled per attempt with ±30% jitter, unless the server
// asked for a specific wait.
func (r *RetrySource) delay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}
	d := float64(r.baseDelay << (attempt - 1))
	return time.Duration(d + d*jitterFraction*(2*rand.Float64()-1))
}

// Retryable reports whether err is worth another attempt: network failures,
// 429 and 5xx are; cancellation and other HTTP statuses are not.
func Retryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Temporary()
	}
	return true
}
