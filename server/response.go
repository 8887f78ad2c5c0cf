package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicecheck/detection"
	apperrors "github.com/kbukum/voicecheck/errors"
	"github.com/kbukum/voicecheck/logger"
)

// RespondDetection sends the success envelope.
func RespondDetection(c *gin.Context, result *detection.Result) {
	c.JSON(http.StatusOK, result)
}

// RespondWithError inspects err: if it is an *apperrors.AppError the status and
// envelope are derived from it; otherwise a generic 500 is sent. The error is
// logged here, at warn for 4xx and error for 5xx.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}

	fields := logger.Fields(
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", appErr.HTTPStatus,
		logger.FieldErrorCode, string(appErr.Code),
	)
	for k, v := range appErr.Details {
		fields[k] = v
	}
	if appErr.Cause != nil {
		fields = logger.MergeWithError(fields, appErr.Cause)
	}
	log := logger.WithComponent("http").WithContext(c.Request.Context())
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error(appErr.Message, fields)
	} else {
		log.Warn(appErr.Message, fields)
	}

	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
