package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootResponse is the body of GET /.
type RootResponse struct {
	Message            string   `json:"message" example:"AI-Generated Voice Detection API"`
	Version            string   `json:"version" example:"1.0.0"`
	SupportedLanguages []string `json:"supported_languages"`
}

// Root returns a handler describing the API.
func Root(resp RootResponse) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, resp)
	}
}
