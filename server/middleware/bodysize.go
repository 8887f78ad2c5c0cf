package middleware

import (
	"net/http"

	"github.com/kbukum/voicecheck/util"
)

const defaultMaxBodySize = 16 * 1024 * 1024

// BodySizeLimit returns middleware that restricts the request body to the given
// size string (e.g. "16MB", "512KB"). Reading past the limit fails with
// *http.MaxBytesError, which handlers turn into 413.
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}
