package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type verdict struct {
	Status         string  `json:"status"`
	Message        string  `json:"message"`
	Classification string  `json:"classification"`
	Score          float64 `json:"confidenceScore"`
}

func TestPost_DecodesTypedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-trace") != "on" {
			t.Errorf("expected option header, got %q", r.Header.Get("x-trace"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected JSON body, got %q", r.Header.Get("Content-Type"))
		}
		_ = json.NewEncoder(w).Encode(verdict{Status: "success", Classification: "HUMAN", Score: 0.87})
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := Post[verdict](context.Background(), c, "/api/voice-detection", map[string]string{"language": "Tamil"}, WithHeader("x-trace", "on"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Data.Classification != "HUMAN" || resp.Data.Score != 0.87 {
		t.Errorf("unexpected data %+v", resp.Data)
	}
	if !resp.IsSuccess() {
		t.Errorf("expected 2xx, got %d", resp.StatusCode)
	}
}

func TestPost_ErrorEnvelopeStillDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","message":"Invalid API key"}`))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL, Auth: APIKeyAuth("x-api-key", "wrong")})
	resp, err := Post[verdict](context.Background(), c, "/api/voice-detection", nil)
	if !hasCode(err, ErrCodeAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if resp == nil || resp.Data.Status != "error" || resp.Data.Message != "Invalid API key" {
		t.Errorf("expected decoded error envelope, got %+v", resp)
	}
}

func TestPost_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	if _, err := Post[verdict](context.Background(), c, "/classify", nil); err == nil {
		t.Error("expected decode error")
	}
}

func TestPost_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := Post[verdict](context.Background(), c, "/classify", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
}
