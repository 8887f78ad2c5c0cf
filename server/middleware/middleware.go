package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicecheck/errors"
	"github.com/kbukum/voicecheck/logger"
)

// Middleware wraps an http.Handler with additional behavior. Server level
// concerns that must run before Gin routing (CORS preflight, body limits)
// use this type; everything that needs the route uses gin.HandlerFunc.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middleware. The first in the list is the outermost
// (runs first on a request, last on a response).
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// reject logs appErr once and aborts the chain with the error envelope.
func reject(c *gin.Context, log *logger.Logger, appErr *errors.AppError) {
	fields := logger.Fields(
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", appErr.HTTPStatus,
		logger.FieldErrorCode, string(appErr.Code),
	)
	log.WithContext(c.Request.Context()).Warn(appErr.Message, fields)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

func componentLogger(log *logger.Logger) *logger.Logger {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return log.WithComponent("http")
}
