package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger registra uma linha por requisição, com os erros anexados
// via c.Error pelos handlers.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		}
		if actor := GetActor(c); actor != nil {
			attrs = append(attrs, "user_id", actor.UserID, "barbershop_id", actor.BarbershopID)
		}

		switch {
		case len(c.Errors) > 0:
			logger.Error("request failed", append(attrs, "err", c.Errors.String())...)
		case c.Writer.Status() >= 500:
			logger.Error("request", attrs...)
		default:
			logger.Info("request", attrs...)
		}
	}
}
