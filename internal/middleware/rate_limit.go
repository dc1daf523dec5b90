package middleware

import (
	"strconv"
	"sync"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type KeyRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit // requests per second
	b        int        // burst
}

func NewKeyRateLimiter(r rate.Limit, b int) *KeyRateLimiter {
	return &KeyRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

func (l *KeyRateLimiter) GetLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limiters[key] = limiter
	}

	return limiter
}

func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			response.FromError(c, apperror.ErrTooManyRequests.WithDetails(gin.H{"scope": "ip"}))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitByUser must run after AuthMiddleware; anonymous requests pass.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyRateLimiter(r, b)
	return func(c *gin.Context) {
		id, ok := GetActorID(c)
		if !ok {
			c.Next()
			return
		}
		if !limiter.GetLimiter(strconv.FormatInt(id, 10)).Allow() {
			response.FromError(c, apperror.ErrTooManyRequests.WithDetails(gin.H{"scope": "employee"}))
			c.Abort()
			return
		}
		c.Next()
	}
}
