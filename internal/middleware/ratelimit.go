package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barber-timeline/internal/httperr"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimiter é uma janela fixa por IP, compartilhada entre instâncias via Redis.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
	logger *slog.Logger
}

func NewRateLimiter(rdb *redis.Client, limit int, logger *slog.Logger) *RateLimiter {
	if limit <= 0 {
		limit = 60
	}
	return &RateLimiter{
		rdb:    rdb,
		limit:  limit,
		window: time.Minute,
		prefix: "rl:public",
		logger: logger,
	}
}

// Middleware falha aberto: Redis fora do ar não derruba o agendamento público.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.rdb == nil {
			c.Next()
			return
		}

		count, err := rl.incr(c.Request.Context(), rl.prefix+":"+c.ClientIP())
		if err != nil {
			rl.logger.Warn("redis rate limiter error", "err", err)
			c.Next()
			return
		}

		if count > int64(rl.limit) {
			httperr.TooManyRequests(c, "rate_limited", "Muitas requisições. Tente novamente em instantes.")
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) incr(ctx context.Context, key string) (int64, error) {
	return fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Int64()
}
