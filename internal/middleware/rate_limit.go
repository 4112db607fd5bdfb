package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/recipebook/backend/internal/logger"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
	// PerRecipe counts requests per actor and recipe id instead of per actor.
	PerRecipe bool
}

// RateLimiter is a fixed-window limiter backed by redis. A limiter without a
// client lets every request through.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	logger logger.Logger
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig, log logger.Logger) *RateLimiter {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		logger: log,
	}
}

// NewRecipeCreationRateLimiter limits recipe creation per user per hour.
func NewRecipeCreationRateLimiter(redisClient *redis.Client, limit int, log logger.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     limit,
		KeyPrefix: "rate_limit:recipe_creation",
	}, log)
}

// NewRecipeModificationRateLimiter limits updates and deletes per user and recipe per hour.
func NewRecipeModificationRateLimiter(redisClient *redis.Client, limit int, log logger.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     limit,
		KeyPrefix: "rate_limit:recipe_modification",
		PerRecipe: true,
	}, log)
}

// Middleware enforces the limit for the authenticated actor. It must run after
// AuthMiddleware. Redis failures let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.redis == nil {
			c.Next()
			return
		}

		actor, ok := ActorFrom(c)
		if !ok || actor.Anonymous() {
			AbortWithError(c, http.StatusUnauthorized, "user not authenticated", nil)
			return
		}

		subject := actor.ID
		if rl.config.PerRecipe {
			subject = fmt.Sprintf("%s:%s", actor.ID, c.Param("id"))
		}

		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), subject)
		if err != nil {
			rl.logger.Warn("rate limit check failed",
				zap.String("prefix", rl.config.KeyPrefix),
				zap.Error(err))
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())))
			AbortWithError(c, http.StatusTooManyRequests,
				fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", rl.config.Limit, rl.config.Window), nil)
			return
		}

		c.Next()
	}
}

// IsAllowed counts a request for subject in the current window.
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, subject string) (bool, int, time.Time, error) {
	windowStart := time.Now().Truncate(rl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, subject, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}
