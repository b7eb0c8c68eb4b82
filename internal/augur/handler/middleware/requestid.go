package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// XRequestIDKey is the header and context key carrying the request id.
const XRequestIDKey = "X-Request-ID"

// RequestID propagates the caller's X-Request-ID or stamps a fresh one,
// and echoes it on the response for correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(XRequestIDKey)
		if rid == "" {
			rid = uuid.New().String()
			c.Request.Header.Set(XRequestIDKey, rid)
		}

		c.Set(XRequestIDKey, rid)
		c.Writer.Header().Set(XRequestIDKey, rid)
		c.Next()
	}
}

// GetRequestID returns the request id stamped by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(XRequestIDKey)
}
