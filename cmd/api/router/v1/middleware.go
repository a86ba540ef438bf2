package v1

import (
	"time"

	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured entry per request, replacing gin's text logger.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		zl := log.Zerolog()
		status := c.Writer.Status()
		ev := zl.Info()
		switch {
		case status >= 500:
			ev = zl.Error()
		case status >= 400:
			ev = zl.Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", auth.UserID(c)).
			Msg("http request")
	}
}
