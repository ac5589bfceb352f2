package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/snapai/showcase/pkg/database"
)

// RateLimitMiddleware limits requests per user or IP using Redis counters
func RateLimitMiddleware(redisClient *redis.Client, rps int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// Use user ID if authenticated, otherwise use IP
			var key string
			if userID, ok := GetUserID(ctx); ok {
				key = fmt.Sprintf("user:%s", userID.String())
			} else {
				key = fmt.Sprintf("ip:%s", getClientIP(r))
			}

			count, err := database.IncrementRateLimit(ctx, redisClient, key, time.Second)
			if err != nil {
				// If Redis fails, allow the request rather than blocking traffic
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(rps) {
				w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rps))
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", "1")
				http.Error(w, `{"error":"Rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}

			remaining := int64(rps) - count
			if remaining < 0 {
				remaining = 0
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rps))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

			next.ServeHTTP(w, r)
		})
	}
}

// StrictRateLimitMiddleware applies per-minute limiting for sensitive
// endpoints such as login and register
func StrictRateLimitMiddleware(redisClient *redis.Client, rpm int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := fmt.Sprintf("strict:%s:%s", r.URL.Path, getClientIP(r))

			count, err := database.IncrementRateLimit(ctx, redisClient, key, time.Minute)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(rpm) {
				w.Header().Set("Retry-After", "60")
				http.Error(w, `{"error":"Too many requests, please try again later"}`, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take the first IP in the chain
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}

	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
