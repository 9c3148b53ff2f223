package rate_limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/http/handlers"
	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/logging"
	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/redissvc"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter applies a per-client token bucket. When a strike store is
// attached, clients that keep hitting the limit collect strikes in Redis
// and are banned outright once they pass the strike limit.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*clientLimiter
	limit    rate.Limit
	burst    int

	strikes     *redissvc.StrikeStore
	strikeLimit int64
	banDuration time.Duration
}

func New(perSecond float64, burst int) *Limiter {
	return &Limiter{
		visitors: make(map[string]*clientLimiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

// SetStrikeStore enables Redis-backed strike tracking and bans.
func (l *Limiter) SetStrikeStore(s *redissvc.StrikeStore, strikeLimit int, banDuration time.Duration) {
	l.strikes = s
	l.strikeLimit = int64(strikeLimit)
	l.banDuration = banDuration
}

func (l *Limiter) getVisitor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(l.limit, l.burst)
		l.visitors[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// StartCleanupLoop evicts visitors not seen for a while. Run it in its
// own goroutine.
func (l *Limiter) StartCleanupLoop() {
	for {
		time.Sleep(time.Minute)
		l.mu.Lock()
		for ip, v := range l.visitors {
			if time.Since(v.lastSeen) > 5*time.Minute {
				delete(l.visitors, ip)
			}
		}
		l.mu.Unlock()
	}
}

// Middleware enforces the limit per client IP.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if l.strikes != nil {
			banned, err := l.strikes.IsBanned(r.Context(), ip)
			if err != nil {
				logging.FromCtx(r.Context()).Warn("strike store unavailable", "error", err)
			} else if banned {
				handlers.RespondJSON(w, http.StatusTooManyRequests, handlers.MessageResponse{Message: "Too many requests."})
				return
			}
		}

		if !l.getVisitor(ip).Allow() {
			if l.strikes != nil {
				count, err := l.strikes.RegisterStrike(r.Context(), ip)
				if err == nil && count >= l.strikeLimit {
					if err := l.strikes.Ban(r.Context(), ip, l.banDuration); err == nil {
						logging.FromCtx(r.Context()).Warn("client banned", "ip", ip, "strikes", count)
					}
				}
			}
			handlers.RespondJSON(w, http.StatusTooManyRequests, handlers.MessageResponse{Message: "Too many requests."})
			return
		}

		next.ServeHTTP(w, r)
	})
}
