package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"cardia/riskapi/internal/app/pkg/logger"
)

// Logger writes one access log line per request. Form values are never logged.
func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ctx := c.Request.Context()
		format := "%s %s status=%d latency=%s"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start)}
		switch {
		case status >= 500:
			log.Errorf(ctx, format, args...)
		case status >= 400:
			log.Warnf(ctx, format, args...)
		default:
			log.Infof(ctx, format, args...)
		}
	}
}
