package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"passauth/internal/logger"
	helpers "passauth/internal/utils/helpers"
)

// RateLimiter — фиксированное окно по IP, всё в памяти.
// TTL ставится только первым попаданием в окно.
type RateLimiter struct {
	mu       sync.Mutex
	counters map[string]*windowCounter
	max      int
	window   time.Duration
}

type windowCounter struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		counters: make(map[string]*windowCounter),
		max:      max,
		window:   window,
	}
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, ok := l.counters[key]
	if !ok || now.After(c.resetAt) {
		l.counters[key] = &windowCounter{count: 1, resetAt: now.Add(l.window)}
		return true
	}

	c.count++
	return c.count <= l.max
}

// Middleware ограничивает частоту запросов на чувствительных маршрутах.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.allow(ip) {
			logger.WithCtx(r.Context()).Warn("Превышен лимит запросов")
			helpers.Error(w, http.StatusTooManyRequests, "Слишком много запросов, попробуйте позже")
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
