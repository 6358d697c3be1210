// Package middleware carries the cross-cutting gin handlers: request
// correlation, access logging and panic recovery.
package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with a correlation id, reusing the caller's
// X-Request-ID when present. The id is echoed on the response and exposed
// to handlers under the "request_id" context key.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Logger writes one access line per request, component-prefixed like the
// rest of the service's logs.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		id, _ := c.Get("request_id")
		log.Printf("[http] %s %s %s %d %s",
			id,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

// Recovery turns panics into 500 responses.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
