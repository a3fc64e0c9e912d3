package explorerapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRate is the default client-side request rate per second.
	DefaultRate = 5.0

	// HeaderRetryAfter is the retry-after header (seconds or HTTP date).
	HeaderRetryAfter = "Retry-After"

	// defaultBackoff applies when a throttling response carries no Retry-After.
	defaultBackoff = 5 * time.Second
)

// RateLimitError is returned while the server has asked us to back off.
type RateLimitError struct {
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited until %s", e.ResetAt.Format(time.TimeOnly))
}

// RateLimiter combines a proactive token bucket with the server's
// Retry-After instructions.
type RateLimiter struct {
	mu           sync.Mutex
	bucket       *rate.Limiter
	backoffUntil time.Time
	now          func() time.Time
}

// NewRateLimiter creates a limiter allowing perSecond requests with a
// small burst for fast typists.
func NewRateLimiter(perSecond float64) *RateLimiter {
	if perSecond <= 0 {
		perSecond = DefaultRate
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(perSecond), burst),
		now:    time.Now,
	}
}

// Wait blocks until a request may be sent.
// While backing off it fails immediately with a *RateLimitError.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	until := r.backoffUntil
	now := r.now()
	r.mu.Unlock()

	if now.Before(until) {
		return &RateLimitError{ResetAt: until}
	}
	return r.bucket.Wait(ctx)
}

// CheckResponse records throttling instructions from resp.
// It returns a *RateLimitError for 429 and 503 responses.
func (r *RateLimiter) CheckResponse(resp *http.Response) error {
	if resp == nil {
		return nil
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	until := now.Add(defaultBackoff)
	if retryAfter := resp.Header.Get(HeaderRetryAfter); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			until = now.Add(time.Duration(seconds) * time.Second)
		} else if at, err := http.ParseTime(retryAfter); err == nil {
			until = at
		}
	}
	r.backoffUntil = until
	return &RateLimitError{ResetAt: until}
}

// BackoffUntil returns the end of the current backoff window.
func (r *RateLimiter) BackoffUntil() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backoffUntil
}
