// Package remote classifies clips by calling an HTTP sidecar that hosts a
// detection model. The sidecar receives the same language and base64 audio
// the service was given and answers with a label, score and explanation.
package remote

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/kbukum/voicecheck/classifier"
	"github.com/kbukum/voicecheck/httpclient"
	"github.com/kbukum/voicecheck/logger"
	"github.com/kbukum/voicecheck/provider"
	"github.com/kbukum/voicecheck/resilience"
)

// ProviderName is the registered name for the remote backend.
const ProviderName = classifier.BackendRemote

// Classifier implements classifier.Classifier against a sidecar.
type Classifier struct {
	client *httpclient.Client
	log    *logger.Logger
}

type classifyRequest struct {
	Language    string `json:"language"`
	AudioFormat string `json:"audioFormat"`
	AudioBase64 string `json:"audioBase64"`
}

type classifyResponse struct {
	Classification string  `json:"classification"`
	Score          float64 `json:"confidenceScore"`
	Explanation    string  `json:"explanation"`
}

// New creates a remote classifier for cfg.Remote.
func New(cfg classifier.Config) (*Classifier, error) {
	cfg.ApplyDefaults()
	if cfg.Remote.URL == "" {
		return nil, fmt.Errorf("remote classifier: url is required")
	}

	log := logger.WithComponent("classifier.remote")
	cb := resilience.DefaultCircuitBreakerConfig(ProviderName)
	cb.MaxFailures = cfg.Remote.MaxFailures
	cb.Timeout = cfg.Remote.ResetTimeout
	cb.OnStateChange = func(name string, from, to resilience.State) {
		log.Warn("circuit state changed", logger.Fields("circuit", name, "from", from.String(), "to", to.String()))
	}

	client, err := httpclient.New(httpclient.Config{
		BaseURL:        strings.TrimRight(cfg.Remote.URL, "/"),
		Timeout:        cfg.Remote.Timeout,
		TLS:            &cfg.Remote.TLS,
		CircuitBreaker: &cb,
	})
	if err != nil {
		return nil, fmt.Errorf("remote classifier: %w", err)
	}
	return &Classifier{client: client, log: log}, nil
}

// Factory returns a provider.Factory for the registry.
func Factory() provider.Factory[classifier.Classifier, classifier.Config] {
	return func(cfg classifier.Config) (classifier.Classifier, error) {
		return New(cfg)
	}
}

// Name returns the provider name.
func (c *Classifier) Name() string { return ProviderName }

// IsAvailable checks that the sidecar answers /health and the circuit is not open.
func (c *Classifier) IsAvailable(ctx context.Context) bool {
	if c.client.CircuitState() == resilience.StateOpen {
		return false
	}
	resp, err := c.client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/health"})
	return err == nil && resp.IsSuccess()
}

// Classify posts the clip to {url}/classify.
func (c *Classifier) Classify(ctx context.Context, in classifier.Input) (*classifier.Result, error) {
	if in.Audio == nil || len(in.Audio.Data) == 0 {
		return nil, fmt.Errorf("remote: no audio")
	}

	resp, err := httpclient.Post[classifyResponse](ctx, c.client, "/classify", classifyRequest{
		Language:    in.Language,
		AudioFormat: "mp3",
		AudioBase64: base64.StdEncoding.EncodeToString(in.Audio.Data),
	})
	if err != nil {
		return nil, fmt.Errorf("remote: %w", err)
	}

	return &classifier.Result{
		Label:       classifier.Label(resp.Data.Classification),
		Score:       resp.Data.Score,
		Explanation: resp.Data.Explanation,
	}, nil
}

// Close releases idle connections to the sidecar.
func (c *Classifier) Close(context.Context) error {
	c.client.CloseIdleConnections()
	return nil
}
