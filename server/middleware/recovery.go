package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicecheck/errors"
	"github.com/kbukum/voicecheck/logger"
)

// Recovery returns a Gin middleware that turns a panic into the 500 error
// envelope and logs the stack.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	log = componentLogger(log)
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithContext(c.Request.Context()).Error("Panic recovered", map[string]interface{}{
					"error":     fmt.Sprintf("%v", rec),
					"stack":     string(debug.Stack()),
					"path":      c.Request.URL.Path,
					"method":    c.Request.Method,
					"client_ip": c.ClientIP(),
				})
				appErr := errors.Internal(fmt.Errorf("panic: %v", rec))
				c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			}
		}()
		c.Next()
	}
}
