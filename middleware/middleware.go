// File: /middleware/middleware.go
package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"socialnet-api/models"
	"socialnet-api/services"
	"socialnet-api/utils"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_id"

const (
	ContextUserIDKey = "user_id"
	ContextUserKey   = "current_user"
)

// IdentityResolver resolves the session cookie to a user and attaches it to
// the gin context. Any failure (no cookie, unknown token, expired session)
// leaves the request anonymous; no error is ever returned to the client
// from here. Routes decide per-route whether anonymity is acceptable.
func IdentityResolver(sessions services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err == nil && token != "" {
			if user, err := sessions.Get(token); err == nil {
				c.Set(ContextUserIDKey, user.ID)
				c.Set(ContextUserKey, user)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects anonymous requests. Must run after IdentityResolver.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserIDKey) == "" {
			utils.SendError(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user attached by IdentityResolver, or nil for an
// anonymous request.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// RateLimiter implements a simple per-client rate limiting mechanism.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mutex    sync.Mutex
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(requestsPerMinute int, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    burst,
	}
}

// GetLimiter returns the rate limiter for a given key (IP address).
func (rl *RateLimiter) GetLimiter(key string) *rate.Limiter {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}

	return limiter
}

// CleanupLimiters drops limiters that have regained full capacity.
func (rl *RateLimiter) CleanupLimiters() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	for key, limiter := range rl.limiters {
		if limiter.Allow() {
			delete(rl.limiters, key)
		}
	}
}

// RateLimit middleware, keyed by client IP. Applied to the auth routes to
// slow credential stuffing.
func RateLimit(requestsPerMinute int, burst int) gin.HandlerFunc {
	rateLimiter := NewRateLimiter(requestsPerMinute, burst)

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			rateLimiter.CleanupLimiters()
		}
	}()

	return func(c *gin.Context) {
		limiter := rateLimiter.GetLimiter(c.ClientIP())

		if !limiter.Allow() {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))
			utils.SendError(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}

// SecurityHeaders middleware adds standard security headers.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
