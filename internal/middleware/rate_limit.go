package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerMinute int
}

// DefaultAPIRateLimit is the per-IP budget for the authenticated API.
// Basic auth re-checks credentials on every request, so this also caps
// password guessing.
func DefaultAPIRateLimit() RateLimitConfig {
	return RateLimitConfig{RequestsPerMinute: 60}
}

// RateLimitByIP limits requests per client IP.
func RateLimitByIP(config RateLimitConfig) func(next http.Handler) http.Handler {
	return httprate.Limit(
		config.RequestsPerMinute,
		1*time.Minute,
		httprate.WithKeyByRealIP(),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate_limit_exceeded","message":"too many requests"}`))
		}),
	)
}
