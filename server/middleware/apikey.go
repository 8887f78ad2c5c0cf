package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicecheck/errors"
	"github.com/kbukum/voicecheck/logger"
)

// APIKeyHeader is the header clients send the shared secret in.
const APIKeyHeader = "x-api-key"

// MissingAPIKeyMessage is returned when the header is absent or blank.
const MissingAPIKeyMessage = "Missing API key. Please provide x-api-key header."

// APIKey returns a Gin middleware that admits requests whose x-api-key header
// matches key. Both sides are trimmed of surrounding whitespace and compared
// in constant time. The key is never logged.
func APIKey(key string, log *logger.Logger) gin.HandlerFunc {
	log = componentLogger(log)
	want := []byte(strings.TrimSpace(key))
	return func(c *gin.Context) {
		got := strings.TrimSpace(c.GetHeader(APIKeyHeader))
		if got == "" {
			reject(c, log, errors.Unauthorized(MissingAPIKeyMessage))
			return
		}
		if len(want) == 0 || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			reject(c, log, errors.Unauthorized(""))
			return
		}
		c.Next()
	}
}
