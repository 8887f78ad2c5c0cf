package endpoint

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicecheck/component"
	"github.com/kbukum/voicecheck/detection"
	"github.com/kbukum/voicecheck/errors"
	"github.com/kbukum/voicecheck/server/middleware"
	"github.com/kbukum/voicecheck/version"
)

// APIKeySecurityScheme names the x-api-key scheme in the document.
const APIKeySecurityScheme = "ApiKeyAuth"

// Paths of the public routes.
const (
	PathRoot      = "/"
	PathHealth    = "/health"
	PathReady     = "/ready"
	PathVersion   = "/version"
	PathOpenAPI   = "/openapi.json"
	PathDocs      = "/docs"
	PathReDoc     = "/redoc"
	PathDetection = "/api/voice-detection"
)

// OpenAPIInfo fills the info block of the document.
type OpenAPIInfo struct {
	Title       string
	Version     string
	Description string
}

var schemaNames = map[reflect.Type]string{
	reflect.TypeFor[detection.Request]():    "DetectionRequest",
	reflect.TypeFor[detection.Result]():     "DetectionResult",
	reflect.TypeFor[errors.ErrorResponse](): "ErrorResponse",
	reflect.TypeFor[RootResponse]():         "RootResponse",
	reflect.TypeFor[HealthResponse]():       "HealthResponse",
	reflect.TypeFor[component.Health]():     "ComponentHealth",
	reflect.TypeFor[version.Info]():         "VersionInfo",
}

func schemaName(t reflect.Type, hint string) string {
	if name, ok := schemaNames[t]; ok {
		return name
	}
	return huma.DefaultSchemaNamer(t, hint)
}

// errorStatuses lists what the detection route can fail with.
var errorStatuses = []struct {
	status int
	desc   string
}{
	{http.StatusBadRequest, "Malformed JSON body"},
	{http.StatusUnauthorized, "Missing or invalid API key"},
	{http.StatusRequestEntityTooLarge, "Audio or body above the size limit"},
	{http.StatusUnprocessableEntity, "Invalid field, unsupported language or format, or undecodable audio"},
	{http.StatusTooManyRequests, "Rate limit exceeded"},
	{http.StatusInternalServerError, "Unexpected server error"},
	{http.StatusBadGateway, "Classifier failed"},
	{http.StatusGatewayTimeout, "Classifier timed out"},
}

// BuildOpenAPI describes the public routes. Schemas are generated from the
// Go types the handlers serialise, and only the detection operation carries
// the API key requirement.
func BuildOpenAPI(info OpenAPIInfo) *huma.OpenAPI {
	oapi := huma.DefaultConfig(info.Title, info.Version).OpenAPI
	oapi.Info.Description = info.Description
	if oapi.Components == nil {
		oapi.Components = &huma.Components{}
	}

	registry := huma.NewMapRegistry("#/components/schemas/", schemaName)
	oapi.Components.Schemas = registry
	oapi.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		APIKeySecurityScheme: {
			Type:        "apiKey",
			In:          "header",
			Name:        middleware.APIKeyHeader,
			Description: "Shared secret issued to API clients.",
		},
	}
	schema := func(t reflect.Type) *huma.Schema { return registry.Schema(t, true, "") }

	detect := &huma.Operation{
		OperationID: "detect-voice",
		Method:      http.MethodPost,
		Path:        PathDetection,
		Summary:     "Classify a voice clip",
		Description: "Decides whether an MP3 clip in " + strings.Join(detection.SupportedLanguages, ", ") +
			" was generated by AI or spoken by a human.",
		Tags:     []string{"detection"},
		Security: []map[string][]string{{APIKeySecurityScheme: {}}},
		RequestBody: &huma.RequestBody{
			Required: true,
			Content:  jsonContent(schema(reflect.TypeFor[detection.Request]())),
		},
		Responses: map[string]*huma.Response{
			"200": {Description: "Classification result", Content: jsonContent(schema(reflect.TypeFor[detection.Result]()))},
		},
	}
	errSchema := schema(reflect.TypeFor[errors.ErrorResponse]())
	for _, e := range errorStatuses {
		detect.Responses[strconv.Itoa(e.status)] = &huma.Response{Description: e.desc, Content: jsonContent(errSchema)}
	}
	oapi.AddOperation(detect)

	oapi.AddOperation(get("api-info", PathRoot, "Describe the API", "meta", schema(reflect.TypeFor[RootResponse]())))
	oapi.AddOperation(get("health", PathHealth, "Liveness and component health", "meta", schema(reflect.TypeFor[HealthResponse]())))
	oapi.AddOperation(get("version", PathVersion, "Build information", "meta", schema(reflect.TypeFor[version.Info]())))
	return oapi
}

func get(id, path, summary, tag string, s *huma.Schema) *huma.Operation {
	return &huma.Operation{
		OperationID: id,
		Method:      http.MethodGet,
		Path:        path,
		Summary:     summary,
		Tags:        []string{tag},
		Responses: map[string]*huma.Response{
			"200": {Description: "OK", Content: jsonContent(s)},
		},
	}
}

func jsonContent(s *huma.Schema) map[string]*huma.MediaType {
	return map[string]*huma.MediaType{"application/json": {Schema: s}}
}

// OpenAPI serves the document. It is rendered once, so a document that
// cannot be marshalled fails here instead of on the first request.
func OpenAPI(doc *huma.OpenAPI) (gin.HandlerFunc, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("render openapi document: %w", err)
	}
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", body)
	}, nil
}
