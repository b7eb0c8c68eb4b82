package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sibylline/sibyl/pkg/logger"
)

// Logger records one access line per request. Runs after RequestID so
// the line carries the correlation id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		logger.Info("[%s] %s %s %d %v %s",
			GetRequestID(c),
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
		)
	}
}
