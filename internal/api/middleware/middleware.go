package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-raffle/internal/api/shared/errors"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/ratelimit"
	"github.com/feral-file/ff-raffle/internal/webhook"
)

// Logger returns a gin middleware for structured logging using zap
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.InfoCtx(c.Request.Context(), "API request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	}
}

// Recovery returns a gin middleware for panic recovery with logging
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorCtx(c.Request.Context(), fmt.Errorf("panic recovered: %v", err),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					apierrors.NewInternalError("Internal server error"))
			}
		}()
		c.Next()
	}
}

// WebhookSecret rejects requests whose secret header does not match the configured secret
func WebhookSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !webhook.VerifySecret(secret, c.GetHeader(webhook.SecretHeader)) {
			logger.WarnCtx(c.Request.Context(), "Webhook secret mismatch",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierrors.NewUnauthorizedError("Invalid webhook secret"))
			return
		}
		c.Next()
	}
}

// RateLimit returns a gin middleware limiting requests per client IP
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := limiter.Allow(c.Request.Context(), c.ClientIP())
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(decision.RetryAfter.Seconds())
			if decision.RetryAfter%time.Second != 0 {
				retryAfter++
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierrors.NewRateLimitedError("Too many requests"))
			return
		}

		c.Next()
	}
}
