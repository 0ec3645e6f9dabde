package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger logs one line per request after it completes.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		log.Printf("[API] %s %s %d %s", c.Request.Method, path, c.Writer.Status(), time.Since(start).Round(time.Microsecond))
		for _, e := range c.Errors {
			log.Printf("[API] error: %v", e.Err)
		}
	}
}
