package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ternarybob/probo/internal/common"
	"github.com/ternarybob/probo/internal/handlers"
	"golang.org/x/time/rate"
)

// rateLimiter applies per-client request limits. The health endpoint
// gets its own, less restrictive bucket so monitoring probes do not
// consume the API budget.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter

	generalLimit rate.Limit
	generalBurst int
	healthLimit  rate.Limit
	healthBurst  int
}

type clientLimiter struct {
	general  *rate.Limiter
	health   *rate.Limiter
	lastSeen time.Time
}

// staleAfter is how long an idle client entry survives before pruning.
const staleAfter = 30 * time.Minute

func newRateLimiter(cfg *common.RateLimitConfig) *rateLimiter {
	return &rateLimiter{
		clients:      make(map[string]*clientLimiter),
		generalLimit: rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		generalBurst: cfg.Requests,
		healthLimit:  rate.Limit(float64(cfg.HealthRequests) / 60.0),
		healthBurst:  cfg.HealthRequests,
	}
}

// allow reports whether the client may proceed, charging the bucket
// matching the request class.
func (l *rateLimiter) allow(clientKey string, health bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	client, ok := l.clients[clientKey]
	if !ok {
		client = &clientLimiter{
			general: rate.NewLimiter(l.generalLimit, l.generalBurst),
			health:  rate.NewLimiter(l.healthLimit, l.healthBurst),
		}
		l.clients[clientKey] = client
		l.pruneLocked(now)
	}
	client.lastSeen = now

	if health {
		return client.health.Allow()
	}
	return client.general.Allow()
}

// pruneLocked drops idle clients. Called with the lock held, only on
// the new-client path so steady traffic pays nothing.
func (l *rateLimiter) pruneLocked(now time.Time) {
	for key, client := range l.clients {
		if now.Sub(client.lastSeen) > staleAfter {
			delete(l.clients, key)
		}
	}
}

// rateLimitMiddleware rejects clients over their request budget with 429.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientKey := clientIP(r)
		health := r.URL.Path == "/health"

		if !s.limiter.allow(clientKey, health) {
			s.app.Logger.Warn().
				Str("client", clientKey).
				Str("path", r.URL.Path).
				Msg("Rate limit exceeded")
			handlers.WriteError(w, http.StatusTooManyRequests,
				"Too many requests from this IP, please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
