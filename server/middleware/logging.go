package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicecheck/logger"
)

// quietPaths are polled by load balancers and never logged.
var quietPaths = map[string]bool{
	"/health": true,
	"/ready":  true,
}

// RequestLogger returns middleware that logs every request with method,
// path, status code and duration. Health-check paths are silently skipped.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	log = componentLogger(log)
	return func(c *gin.Context) {
		if quietPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		fields := logger.DurationFields(c.Request.Method+" "+c.FullPath(), latency)
		fields[logger.FieldStatus] = status
		fields["path"] = c.Request.URL.Path
		fields["client"] = c.ClientIP()
		fields["bytes_in"] = c.Request.ContentLength
		if latency > 2*time.Second {
			fields["slow"] = true
		}
		logByStatus(log.WithContext(c.Request.Context()), fields, status)
	}
}

// logByStatus logs request fields at the level matching the HTTP status code.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Info("Request completed", fields)
	}
}
