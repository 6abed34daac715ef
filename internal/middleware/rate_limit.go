package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"clinic-scheduling/internal/platform/metrics"

	"golang.org/x/time/rate"
)

// limiterIdleTTL es cuánto sobrevive el bucket de una IP sin requests.
const limiterIdleTTL = 10 * time.Minute

// RateLimit aplica un token bucket por IP de origen.
// Con rps <= 0 devuelve un middleware que no limita.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	store := newLimiterStore(rps, burst, limiterIdleTTL, time.Now)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !store.allow(clientIP(r)) {
				metrics.RateLimitRejected.Inc()
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// limiterStore guarda un bucket por IP y descarta los que quedaron ociosos
// más de ttl. El barrido corre como mucho una vez por ttl.
type limiterStore struct {
	rps   rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	entries   map[string]*limiterEntry
	lastSweep time.Time
}

func newLimiterStore(rps float64, burst int, ttl time.Duration, now func() time.Time) *limiterStore {
	if burst < 1 {
		burst = 1
	}
	return &limiterStore{
		rps:       rate.Limit(rps),
		burst:     burst,
		ttl:       ttl,
		now:       now,
		entries:   make(map[string]*limiterEntry),
		lastSweep: now(),
	}
}

func (s *limiterStore) allow(key string) bool {
	now := s.now()

	s.mu.Lock()
	if now.Sub(s.lastSweep) >= s.ttl {
		for k, e := range s.entries {
			if now.Sub(e.lastSeen) >= s.ttl {
				delete(s.entries, k)
			}
		}
		s.lastSweep = now
	}

	e, ok := s.entries[key]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(s.rps, s.burst)}
		s.entries[key] = e
	}
	e.lastSeen = now
	lim := e.lim
	s.mu.Unlock()

	return lim.AllowN(now, 1)
}

// clientIP toma RemoteAddr, que chimw.RealIP ya reescribió si venía X-Forwarded-For.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		if r.RemoteAddr == "" {
			return "unknown"
		}
		return r.RemoteAddr
	}
	return host
}
