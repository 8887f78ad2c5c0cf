package remote

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/voicecheck/audio"
	"github.com/kbukum/voicecheck/classifier"
	"github.com/kbukum/voicecheck/provider"
	"github.com/kbukum/voicecheck/resilience"
	"github.com/kbukum/voicecheck/security"
	"github.com/kbukum/voicecheck/security/tlstest"
)

func newRemote(t *testing.T, url string, mutate ...func(*classifier.Config)) *Classifier {
	t.Helper()
	cfg := classifier.Config{Backend: classifier.BackendRemote, Remote: classifier.RemoteConfig{URL: url}}
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestClassify_SendsClipAndDecodesVerdict(t *testing.T) {
	clip := &audio.Clip{Data: []byte{0xFF, 0xFB, 0x90, 0x64, 1, 2, 3}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/classify" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var req classifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		raw, err := base64.StdEncoding.DecodeString(req.AudioBase64)
		if err != nil || string(raw) != string(clip.Data) {
			t.Errorf("audio did not survive the trip: %v", err)
		}
		if req.Language != "Malayalam" || req.AudioFormat != "mp3" {
			t.Errorf("unexpected request %+v", req)
		}
		_ = json.NewEncoder(w).Encode(classifyResponse{
			Classification: "AI_GENERATED",
			Score:          0.93,
			Explanation:    "synthetic prosody",
		})
	}))
	defer srv.Close()

	c := newRemote(t, srv.URL+"/")
	res, err := c.Classify(context.Background(), classifier.Input{Audio: clip, Language: "Malayalam"})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if res.Label != classifier.LabelAIGenerated || res.Score != 0.93 || res.Explanation != "synthetic prosody" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestClassify_SidecarErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newRemote(t, srv.URL)
	_, err := c.Classify(context.Background(), classifier.Input{Audio: &audio.Clip{Data: []byte{1}}, Language: "Hindi"})
	if err == nil {
		t.Fatal("expected error for 503")
	}

	if _, err := c.Classify(context.Background(), classifier.Input{Language: "Hindi"}); err == nil {
		t.Error("expected error without audio")
	}
}

func TestClassify_CircuitOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newRemote(t, srv.URL, func(cfg *classifier.Config) {
		cfg.Remote.MaxFailures = 2
		cfg.Remote.ResetTimeout = time.Minute
	})
	in := classifier.Input{Audio: &audio.Clip{Data: []byte{1}}, Language: "Telugu"}
	for i := 0; i < 2; i++ {
		_, _ = c.Classify(context.Background(), in)
	}

	_, err := c.Classify(context.Background(), in)
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 sidecar calls, got %d", calls.Load())
	}
	if c.IsAvailable(context.Background()) {
		t.Error("open circuit should report unavailable")
	}
}

func TestClassify_Deadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := newRemote(t, srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Classify(ctx, classifier.Input{Audio: &audio.Clip{Data: []byte{1}}, Language: "English"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestIsAvailable(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer healthy.Close()

	if !newRemote(t, healthy.URL).IsAvailable(context.Background()) {
		t.Error("expected healthy sidecar to be available")
	}

	down := httptest.NewServer(http.NotFoundHandler())
	url := down.URL
	down.Close()
	if newRemote(t, url).IsAvailable(context.Background()) {
		t.Error("expected unreachable sidecar to be unavailable")
	}
}

func TestFactory(t *testing.T) {
	if _, err := Factory()(classifier.Config{Backend: classifier.BackendRemote}); err == nil {
		t.Error("expected error without url")
	}
	c, err := Factory()(classifier.Config{Remote: classifier.RemoteConfig{URL: "http://localhost:9"}})
	if err != nil {
		t.Fatalf("Factory failed: %v", err)
	}
	if c.Name() != "remote" {
		t.Errorf("expected name remote, got %q", c.Name())
	}
	if err := provider.Close(context.Background(), c); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestClassify_MutualTLSSidecar(t *testing.T) {
	certs := tlstest.Generate(t)
	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.TLS == nil || len(r.TLS.PeerCertificates) == 0 {
			t.Error("expected a client certificate")
		}
		_ = json.NewEncoder(w).Encode(classifyResponse{Classification: "HUMAN", Score: 0.6, Explanation: "natural"})
	}))
	srv.TLS = &tls.Config{
		Certificates: []tls.Certificate{certs.Leaf},
		ClientCAs:    certs.Pool,
		ClientAuth:   tls.RequireAndVerifyClientCert,
	}
	srv.StartTLS()
	defer srv.Close()

	withTLS := func(cfg *classifier.Config) {
		cfg.Remote.TLS = security.TLSConfig{CAFile: certs.CAFile, CertFile: certs.CertFile, KeyFile: certs.KeyFile}
	}
	c := newRemote(t, srv.URL, withTLS)
	got, err := c.Classify(context.Background(), classifier.Input{Audio: &audio.Clip{Data: []byte{1}}, Language: "Telugu"})
	if err != nil {
		t.Fatalf("Classify over mTLS: %v", err)
	}
	if got.Label != classifier.LabelHuman {
		t.Errorf("unexpected verdict %+v", got)
	}

	untrusted := newRemote(t, srv.URL)
	if _, err := untrusted.Classify(context.Background(), classifier.Input{Audio: &audio.Clip{Data: []byte{1}}, Language: "Telugu"}); err == nil {
		t.Error("expected a client without the CA to fail")
	}
}
