package classifier

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestResultCheck(t *testing.T) {
	tests := []struct {
		name    string
		result  *Result
		wantErr bool
	}{
		{"ai", &Result{Label: LabelAIGenerated, Score: 0.91, Explanation: "x"}, false},
		{"human at bounds", &Result{Label: LabelHuman, Score: 1, Explanation: "x"}, false},
		{"zero score", &Result{Label: LabelHuman, Score: 0, Explanation: "x"}, false},
		{"nil", nil, true},
		{"unknown label", &Result{Label: "ROBOT", Score: 0.5, Explanation: "x"}, true},
		{"lowercase label", &Result{Label: "human", Score: 0.5, Explanation: "x"}, true},
		{"score above one", &Result{Label: LabelHuman, Score: 1.2, Explanation: "x"}, true},
		{"negative score", &Result{Label: LabelHuman, Score: -0.1, Explanation: "x"}, true},
		{"nan score", &Result{Label: LabelHuman, Score: math.NaN(), Explanation: "x"}, true},
		{"no explanation", &Result{Label: LabelHuman, Score: 0.5}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.result.Check(); (err != nil) != tc.wantErr {
				t.Errorf("Check() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Backend != BackendHeuristic {
		t.Errorf("expected heuristic backend, got %q", cfg.Backend)
	}
	if cfg.Timeout != 30*time.Second || cfg.Remote.Timeout != 30*time.Second {
		t.Errorf("unexpected timeouts %s / %s", cfg.Timeout, cfg.Remote.Timeout)
	}
	if cfg.MaxConcurrent != 8 || cfg.MaxWait != 5*time.Second {
		t.Errorf("unexpected bulkhead defaults %d / %s", cfg.MaxConcurrent, cfg.MaxWait)
	}
	if cfg.AnalysisWindow != 10*time.Second {
		t.Errorf("expected 10s analysis window, got %s", cfg.AnalysisWindow)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfigValidate_RemoteNeedsURL(t *testing.T) {
	cfg := Config{Backend: BackendRemote}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for remote backend without url")
	}
	cfg.Remote.URL = "http://localhost:9000"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfigValidate_ReportsEveryField(t *testing.T) {
	cfg := Config{Backend: BackendRemote, MaxConcurrent: 5000}
	cfg.Remote.TLS.CertFile = "client.pem"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"classifier.remote.url", "classifier.timeout", "classifier.max_concurrent", "classifier.remote.tls"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}
