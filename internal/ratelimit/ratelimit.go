// Package ratelimit spaces out requests to the same catalog host.
package ratelimit

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/amishk599/jobboard/internal/model"
)

// HostLimiter enforces a minimum interval between requests to the same host.
// The zero interval disables it.
type HostLimiter struct {
	mu       sync.Mutex
	next     map[string]time.Time // earliest start of the next request per host
	interval time.Duration
	now      func() time.Time
}

// NewHostLimiter creates a limiter shared by every source on the same host.
func NewHostLimiter(interval time.Duration) *HostLimiter {
	return &HostLimiter{
		next:     make(map[string]time.Time),
		interval: interval,
		now:      time.Now,
	}
}

// Wait blocks until host may be called again, reserving the slot before
// sleeping so concurrent callers queue up instead of firing together.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l == nil || l.interval <= 0 {
		return nil
	}

	l.mu.Lock()
	now := l.now()
	start := now
	if n, ok := l.next[host]; ok && n.After(now) {
		start = n
	}
	l.next[host] = start.Add(l.interval)
	l.mu.Unlock()

	wait := start.Sub(now)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("waiting for %s: %w", host, ctx.Err())
	case <-timer.C:
		return nil
	}
}

// LimitedSource waits on the limiter before each fetch from its host.
type LimitedSource struct {
	inner   model.JobSource
	limiter *HostLimiter
	host    string
}

// NewLimitedSource wraps inner; rawURL decides which host slot it shares.
func NewLimitedSource(inner model.JobSource, limiter *HostLimiter, rawURL string) *LimitedSource {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return &LimitedSource{inner: inner, limiter: limiter, host: host}
}

func (s *LimitedSource) FetchJobs(ctx context.Context) ([]model.Job, error) {
	if err := s.limiter.Wait(ctx, s.host); err != nil {
		return nil, err
	}
	return s.inner.FetchJobs(ctx)
}
