package middleware

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/storefront-backend/pkg/ctxutil"
)

// RateLimiter implements per-identity token bucket rate limiting. The identity
// is the session user when there is one, the client IP otherwise.
type RateLimiter struct {
	limiters sync.Map // map[string]*visitor
	burst    int
	every    rate.Limit
	now      func() time.Time
	stop     chan struct{}
}

type visitor struct {
	limiter *rate.Limiter
	mu      sync.Mutex
	seen    time.Time
}

// NewRateLimiter creates a limiter allowing tokens requests per window with a
// steady refill, plus background cleanup of idle identities. Call Stop() on
// shutdown.
func NewRateLimiter(tokens int, window, cleanupInterval time.Duration) *RateLimiter {
	if tokens < 1 {
		tokens = 1
	}
	rl := &RateLimiter{
		burst: tokens,
		every: rate.Limit(float64(tokens) / window.Seconds()),
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	go rl.cleanup(cleanupInterval, window)
	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit returns the rate limiting middleware. It must run after Session so
// signed-in shoppers are keyed by user id.
func (rl *RateLimiter) Limit() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v := rl.visitor(identity(r))

			now := rl.now()
			v.mu.Lock()
			v.seen = now
			v.mu.Unlock()

			res := v.limiter.ReserveN(now, 1)
			if delay := res.DelayFrom(now); delay > 0 {
				res.CancelAt(now)
				retryAfter := int(math.Ceil(delay.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"}) //nolint:errcheck
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) visitor(key string) *visitor {
	if v, ok := rl.limiters.Load(key); ok {
		return v.(*visitor)
	}
	v, _ := rl.limiters.LoadOrStore(key, &visitor{
		limiter: rate.NewLimiter(rl.every, rl.burst),
		seen:    rl.now(),
	})
	return v.(*visitor)
}

func identity(r *http.Request) string {
	if id, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		return "user:" + id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

// cleanup drops identities idle for longer than a full window; their buckets
// would be full again anyway.
func (rl *RateLimiter) cleanup(interval, window time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			now := rl.now()
			rl.limiters.Range(func(key, value any) bool {
				v := value.(*visitor)
				v.mu.Lock()
				idle := now.Sub(v.seen)
				v.mu.Unlock()
				if idle > window {
					rl.limiters.Delete(key)
				}
				return true
			})
		}
	}
}
