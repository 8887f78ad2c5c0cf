package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicecheck/component"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, path string, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.GET(path, h)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	return rr
}

func TestHealth_ListsComponents(t *testing.T) {
	checker := func(context.Context) []component.Health {
		return []component.Health{
			{Name: "classifier", Status: component.StatusDegraded, Message: "slow"},
		}
	}
	rr := serve(t, "/health", Health("voicecheck", checker))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "healthy" || body.Service != "voicecheck" || len(body.Components) != 1 {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestHealth_NilCheckerGivesEmptyList(t *testing.T) {
	rr := serve(t, "/health", Health("voicecheck", nil))
	if !strings.Contains(rr.Body.String(), `"components":[]`) {
		t.Errorf("expected an empty component list, got %s", rr.Body.String())
	}
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name   string
		status component.HealthStatus
		want   int
	}{
		{"healthy", component.StatusHealthy, http.StatusOK},
		{"degraded", component.StatusDegraded, http.StatusOK},
		{"unhealthy", component.StatusUnhealthy, http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			checker := func(context.Context) []component.Health {
				return []component.Health{{Name: "classifier", Status: tc.status}}
			}
			if rr := serve(t, "/ready", Readiness("voicecheck", checker)); rr.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, rr.Code)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	rr := serve(t, "/version", Version())
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["api_version"] != "1.0.0" || body["version"] == "" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestDocsPages(t *testing.T) {
	for name, h := range map[string]gin.HandlerFunc{
		"swagger": SwaggerUI("Voice <API>", PathOpenAPI),
		"redoc":   ReDoc("Voice <API>", PathOpenAPI),
	} {
		t.Run(name, func(t *testing.T) {
			rr := serve(t, "/docs", h)
			if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("unexpected content type %q", ct)
			}
			page := rr.Body.String()
			if !strings.Contains(page, `"/openapi.json"`) {
				t.Error("page should load /openapi.json")
			}
			if strings.Contains(page, "<API>") || !strings.Contains(page, "Voice &lt;API&gt;") {
				t.Error("title should be escaped")
			}
		})
	}
}

// openAPIDoc is the subset of the document the tests look at.
type openAPIDoc struct {
	OpenAPI string `json:"openapi"`
	Info    struct {
		Title   string `json:"title"`
		Version string `json:"version"`
	} `json:"info"`
	Paths map[string]map[string]struct {
		Security    []map[string][]string `json:"security"`
		RequestBody *struct {
			Content map[string]struct {
				Schema struct {
					Ref string `json:"$ref"`
				} `json:"schema"`
			} `json:"content"`
		} `json:"requestBody"`
		Responses map[string]json.RawMessage `json:"responses"`
	} `json:"paths"`
	Components struct {
		Schemas map[string]struct {
			Required   []string                   `json:"required"`
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"schemas"`
		SecuritySchemes map[string]struct {
			Type string `json:"type"`
			In   string `json:"in"`
			Name string `json:"name"`
		} `json:"securitySchemes"`
	} `json:"components"`
}

func loadDoc(t *testing.T) openAPIDoc {
	t.Helper()
	h, err := OpenAPI(BuildOpenAPI(OpenAPIInfo{Title: "Voice API", Version: "1.0.0"}))
	if err != nil {
		t.Fatalf("OpenAPI failed: %v", err)
	}
	rr := serve(t, PathOpenAPI, h)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var doc openAPIDoc
	if err := json.Unmarshal(rr.Body.Bytes(), &doc); err != nil {
		t.Fatalf("document is not JSON: %v", err)
	}
	return doc
}

func TestOpenAPI_Document(t *testing.T) {
	doc := loadDoc(t)

	if !strings.HasPrefix(doc.OpenAPI, "3.1") {
		t.Errorf("expected OpenAPI 3.1, got %q", doc.OpenAPI)
	}
	if doc.Info.Title != "Voice API" || doc.Info.Version != "1.0.0" {
		t.Errorf("unexpected info %+v", doc.Info)
	}

	scheme, ok := doc.Components.SecuritySchemes[APIKeySecurityScheme]
	if !ok || scheme.Type != "apiKey" || scheme.In != "header" || scheme.Name != "x-api-key" {
		t.Errorf("unexpected security scheme %+v", scheme)
	}

	post, ok := doc.Paths[PathDetection]["post"]
	if !ok {
		t.Fatalf("missing POST %s, paths: %v", PathDetection, doc.Paths)
	}
	if len(post.Security) != 1 {
		t.Errorf("detection must require the API key, got %v", post.Security)
	} else if _, ok := post.Security[0][APIKeySecurityScheme]; !ok {
		t.Errorf("detection must require the API key, got %v", post.Security)
	}
	if post.RequestBody == nil || post.RequestBody.Content["application/json"].Schema.Ref != "#/components/schemas/DetectionRequest" {
		t.Errorf("unexpected request body %+v", post.RequestBody)
	}
	for _, code := range []string{"200", "401", "422", "502", "504"} {
		if _, ok := post.Responses[code]; !ok {
			t.Errorf("missing %s response", code)
		}
	}

	for _, path := range []string{PathRoot, PathHealth, PathVersion} {
		get, ok := doc.Paths[path]["get"]
		if !ok {
			t.Errorf("missing GET %s", path)
			continue
		}
		if len(get.Security) != 0 {
			t.Errorf("GET %s must be public, got %v", path, get.Security)
		}
	}
}

func TestOpenAPI_SchemasFromTypes(t *testing.T) {
	doc := loadDoc(t)

	req, ok := doc.Components.Schemas["DetectionRequest"]
	if !ok {
		t.Fatalf("missing DetectionRequest schema, have %v", doc.Components.Schemas)
	}
	for _, field := range []string{"language", "audioFormat", "audioBase64"} {
		if !slices.Contains(req.Required, field) {
			t.Errorf("%s should be required, got %v", field, req.Required)
		}
	}

	res, ok := doc.Components.Schemas["DetectionResult"]
	if !ok {
		t.Fatal("missing DetectionResult schema")
	}
	if !strings.Contains(string(res.Properties["classification"]), "AI_GENERATED") {
		t.Errorf("classification should list its enum, got %s", res.Properties["classification"])
	}
	if _, ok := doc.Components.Schemas["ErrorResponse"]; !ok {
		t.Error("missing ErrorResponse schema")
	}
}

func TestRoot(t *testing.T) {
	rr := serve(t, "/", Root(RootResponse{Message: "hello", Version: "1.0.0", SupportedLanguages: []string{"Tamil"}}))
	if rr.Body.String() != `{"message":"hello","version":"1.0.0","supported_languages":["Tamil"]}` {
		t.Errorf("unexpected body %s", rr.Body.String())
	}
}
