package api

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultRatePerSecond = 25
	defaultBurst         = 50
)

type rateLimiter interface {
	Allow() bool
}

// tokenBucket adapts rate.Limiter and reports how long a rejected caller
// should wait before retrying.
type tokenBucket struct {
	limiter *rate.Limiter
}

func newTokenBucketLimiter(ratePerSecond float64, burst int) *tokenBucket {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &tokenBucket{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (b *tokenBucket) Allow() bool {
	if b == nil || b.limiter == nil {
		return true
	}
	return b.limiter.Allow()
}

// RetryAfter is the time until the next token is available.
func (b *tokenBucket) RetryAfter() time.Duration {
	if b == nil || b.limiter == nil || b.limiter.Limit() <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(b.limiter.Limit()))
}

func rateLimitMiddleware(limiter rateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}
		if hinted, ok := limiter.(interface{ RetryAfter() time.Duration }); ok {
			seconds := int(math.Ceil(hinted.RetryAfter().Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
		}
		writeError(w, http.StatusTooManyRequests, "Too many requests", "box lookups are rate limited, please retry shortly")
	})
}
