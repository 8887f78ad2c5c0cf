package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicecheck/detection"
	"github.com/kbukum/voicecheck/errors"
	"github.com/kbukum/voicecheck/server/endpoint"
	"github.com/kbukum/voicecheck/server/middleware"
	"github.com/kbukum/voicecheck/util"
	"github.com/kbukum/voicecheck/version"
)

// APITitle names the API on the root route and in the OpenAPI document.
const APITitle = "AI-Generated Voice Detection API"

// Detector runs the detection pipeline on a raw request body.
type Detector interface {
	Handle(ctx context.Context, body []byte) (*detection.Result, error)
}

// APIConfig wires the public routes.
type APIConfig struct {
	ServiceName string
	// APIKey is the shared secret required on /api routes.
	APIKey   string
	Detector Detector
	Health   endpoint.HealthChecker
}

// RegisterAPI mounts the public routes. Only the /api group sits behind the
// rate limit and the API key gate. Call it after ApplyMiddleware.
func (s *Server) RegisterAPI(api APIConfig) error {
	openapi, err := endpoint.OpenAPI(endpoint.BuildOpenAPI(endpoint.OpenAPIInfo{
		Title:       APITitle,
		Version:     version.APIVersion,
		Description: "Classifies short MP3 voice clips as AI_GENERATED or HUMAN.",
	}))
	if err != nil {
		return err
	}

	e := s.engine
	e.GET(endpoint.PathRoot, endpoint.Root(endpoint.RootResponse{
		Message:            APITitle,
		Version:            version.APIVersion,
		SupportedLanguages: detection.SupportedLanguages,
	}))
	e.GET(endpoint.PathHealth, endpoint.Health(api.ServiceName, api.Health))
	e.GET(endpoint.PathReady, endpoint.Readiness(api.ServiceName, api.Health))
	e.GET(endpoint.PathVersion, endpoint.Version())
	e.GET(endpoint.PathOpenAPI, openapi)
	e.GET(endpoint.PathDocs, endpoint.SwaggerUI(APITitle, endpoint.PathOpenAPI))
	e.GET(endpoint.PathReDoc, endpoint.ReDoc(APITitle, endpoint.PathOpenAPI))

	group := e.Group("/api")
	if s.config.RateLimit.Enabled() {
		group.Use(middleware.RateLimit(s.config.RateLimit, s.log))
	}
	group.Use(middleware.APIKey(api.APIKey, s.log))
	group.POST("/voice-detection", detect(api.Detector))
	return nil
}

func detect(d Detector) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if stderrors.As(err, &tooLarge) {
				RespondWithError(c, errors.PayloadTooLarge(util.FormatSize(tooLarge.Limit)))
				return
			}
			RespondWithError(c, errors.MalformedBody("could not read body").WithCause(err))
			return
		}

		result, err := d.Handle(c.Request.Context(), body)
		if err != nil {
			RespondWithError(c, err)
			return
		}
		RespondDetection(c, result)
	}
}
