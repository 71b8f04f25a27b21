package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignashub/ictperfect-tool2/internal/logger"
	"github.com/ignashub/ictperfect-tool2/internal/metrics"
)

// LoggingMiddleware logs one line per request and counts it in rec, which may be nil
func LoggingMiddleware(log logger.Logger, rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.RequestServed(c.Request.Method, route, status)

		fields := []interface{}{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}
		switch {
		case status >= 500:
			var err error
			if last := c.Errors.Last(); last != nil {
				err = last
			}
			log.Error("Request failed", err, fields...)
		case status >= 400:
			log.Warn("Request rejected", append(fields, "user_agent", c.Request.UserAgent())...)
		default:
			log.Info("Request served", fields...)
		}
	}
}
