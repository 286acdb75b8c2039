// Package middleware provides HTTP middleware for logging, security and
// rate limiting
package middleware

import (
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/config"
	"github.com/jarrett-joe/my-meal-planner/pkg/errors"
)

// Logger middleware logs HTTP requests
func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &responseWriter{ResponseWriter: w}

			next.ServeHTTP(ww, r)

			logger.Info("HTTP request",
				zap.String("method", r.Method),
				zap.String("url", r.URL.String()),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Int("status", ww.status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", r.Header.Get("X-Request-ID")),
			)
		})
	}
}

// Recovery middleware converts panics into 500 responses
func Recovery(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("Panic recovered",
						zap.Any("panic", rec),
						zap.String("url", r.URL.String()),
						zap.ByteString("stack", debug.Stack()),
					)
					WriteError(w, r, errors.NewInternalError(""))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Security middleware adds standard security headers
func Security() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CORS middleware handles cross-origin requests against the configured
// origin allowlist
func CORS(cfg config.ServerConfig) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (len(allowed) == 0 || allowed[origin]) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit middleware bounds the rate of the routes it wraps, with one
// token bucket per caller so a single heavy user cannot starve everyone
// else. It is applied only to the AI-backed endpoints; CRUD traffic is not
// limited.
func RateLimit(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	limiters := struct {
		sync.Mutex
		m map[string]*rate.Limiter
	}{m: make(map[string]*rate.Limiter)}

	limiterFor := func(key string) *rate.Limiter {
		limiters.Lock()
		defer limiters.Unlock()
		l, ok := limiters.m[key]
		if !ok {
			l = rate.NewLimiter(rate.Limit(cfg.RequestsPerMin/60), cfg.BurstSize)
			limiters.m[key] = l
		}
		return l
	}

	return func(next http.Handler) http.Handler {
		if !cfg.Enable {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiterFor(rateLimitKey(r)).Allow() {
				WriteError(w, r, errors.NewAppError(
					errors.CodeTooManyRequests,
					"Too many requests",
					"Slow down and try again shortly",
				))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitKey identifies the caller: the authenticated user when the
// identity resolver has run, the remote address otherwise.
func rateLimitKey(r *http.Request) string {
	if current, ok := CurrentUserFrom(r.Context()); ok {
		return "user:" + current.ID.String()
	}
	return "addr:" + r.RemoteAddr
}

// responseWriter captures the status code for logging
type responseWriter struct {
	http.ResponseWriter
	status int
}

// WriteHeader records the status code
func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Write defaults the status to 200 on implicit header writes
func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	return rw.ResponseWriter.Write(b)
}
