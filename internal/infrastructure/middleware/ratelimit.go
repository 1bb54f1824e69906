package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/config"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/httputil"
)

// RateLimiter is a sliding-window limiter keyed by client IP, kept in a
// Valkey sorted set per client.
type RateLimiter struct {
	client         valkey.Client
	logger         *zap.Logger
	requestsPerMin int
	windowSize     time.Duration
}

func NewRateLimiter(client valkey.Client, cfg config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		client:         client,
		logger:         logger,
		requestsPerMin: cfg.RequestsPerMin,
		windowSize:     time.Minute,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())

		allowed, remaining, err := rl.isAllowed(ctx, key)
		if err != nil {
			rl.logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.requestsPerMin))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(rl.windowSize.Seconds())))
			httputil.Abort(c, apperror.RateLimited())
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) isAllowed(ctx context.Context, key string) (bool, int, error) {
	now := time.Now().UnixMilli()
	windowStart := now - rl.windowSize.Milliseconds()
	member := strconv.FormatInt(now, 10) + ":" + uuid.NewString()

	b := rl.client.B()
	resps := rl.client.DoMulti(ctx,
		b.Zremrangebyscore().Key(key).Min("0").Max(strconv.FormatInt(windowStart, 10)).Build(),
		b.Zadd().Key(key).ScoreMember().ScoreMember(float64(now), member).Build(),
		b.Zcard().Key(key).Build(),
		b.Expire().Key(key).Seconds(int64(rl.windowSize.Seconds())).Build(),
	)
	for _, resp := range resps {
		if err := resp.Error(); err != nil {
			return true, rl.requestsPerMin, err
		}
	}

	count, err := resps[2].AsInt64()
	if err != nil {
		return true, rl.requestsPerMin, err
	}

	remaining := rl.requestsPerMin - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return int(count) <= rl.requestsPerMin, remaining, nil
}
