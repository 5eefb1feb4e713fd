package httpx

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	msgTooManyLogins = "Terlalu banyak percobaan login. Coba lagi sebentar lagi."

	limiterIdleTTL = 10 * time.Minute
)

// LoginRateLimitConfig configures LoginRateLimit.
type LoginRateLimitConfig struct {
	// PerMinute is the sustained number of attempts allowed per client address.
	PerMinute int
	Logger    *slog.Logger
	// Now overrides the clock (tests).
	Now func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// loginLimiter keeps one token bucket per client address.
type loginLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	now     func() time.Time
	swept   time.Time
}

func (l *loginLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.swept) > limiterIdleTTL {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) > limiterIdleTTL {
				delete(l.clients, k)
			}
		}
		l.swept = now
	}

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// LoginRateLimit throttles POST requests per client address. A zero rate
// returns a pass-through middleware.
func LoginRateLimit(cfg LoginRateLimitConfig) func(http.Handler) http.Handler {
	if cfg.PerMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	l := &loginLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Every(time.Minute / time.Duration(cfg.PerMinute)),
		burst:   cfg.PerMinute,
		now:     now,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || l.allow(clientAddr(r)) {
				next.ServeHTTP(w, r)
				return
			}
			logger.WarnContext(r.Context(), "login rate limited", slog.String("path", r.URL.Path))
			w.Header().Set("Retry-After", "60")
			if IsHTMX(r) {
				HTMX(w).Toast(msgTooManyLogins, ToastError)
				SetHXReswap(w, "none")
			}
			http.Error(w, msgTooManyLogins, http.StatusTooManyRequests)
		})
	}
}

// clientAddr identifies the caller by the first X-Forwarded-For hop, falling back to the peer address.
func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
