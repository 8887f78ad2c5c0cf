package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:  "invalid-level",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "voicecheck", &buf)

	l.WithComponent("detection").Info("clip classified", Fields(FieldLanguage, "Tamil", FieldScore, 0.87))

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "clip classified" {
		t.Errorf("unexpected message %v", entry["message"])
	}
	if entry[FieldComponent] != "detection" {
		t.Errorf("expected component field, got %v", entry[FieldComponent])
	}
	if entry[FieldLanguage] != "Tamil" {
		t.Errorf("expected language field, got %v", entry[FieldLanguage])
	}
	if entry["service"] != "voicecheck" {
		t.Errorf("expected service field, got %v", entry["service"])
	}
}

func TestWithContextRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "svc", &buf)

	ctx := ContextWithRequestID(context.Background(), "req-42")
	if got := RequestIDFromContext(ctx); got != "req-42" {
		t.Fatalf("expected req-42, got %q", got)
	}

	l.WithContext(ctx).Warn("rejected")
	if !strings.Contains(buf.String(), `"request_id":"req-42"`) {
		t.Errorf("expected request id in output, got %q", buf.String())
	}
}

func TestWithContextWithoutRequestID(t *testing.T) {
	l := NewDefault("test")
	if got := l.WithContext(context.Background()); got != l {
		t.Error("expected the same logger when the context carries no request id")
	}
}

func TestWithComponentKeepsService(t *testing.T) {
	l := NewDefault("test")
	if cl := l.WithComponent("handler"); cl.service != "test" {
		t.Errorf("service should be preserved, got %q", cl.service)
	}
}

func TestInit(t *testing.T) {
	cfg := Config{
		Level:       "info",
		Format:      "console",
		Output:      "stdout",
		ServiceName: "voicecheck",
	}
	Init(&cfg)
	gl := GetGlobalLogger()
	if gl == nil {
		t.Fatal("expected global logger to be set after Init")
	}
	if gl.service != "voicecheck" {
		t.Errorf("expected service name from config, got %q", gl.service)
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	globalLogger = nil
	l := GetGlobalLogger()
	if l == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	l := NewDefault("custom")
	SetGlobalLogger(l)
	if got := GetGlobalLogger(); got != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	Init(&Config{Level: "debug", Format: "console", Output: "stdout"})
	// These should not panic
	Debug("debug msg")
	Info("info msg")
	Error("error msg")
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stdout"}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: "stderr"}, false},
		{"invalid level", Config{Level: "bad", Format: "json", Output: "stdout"}, true},
		{"invalid format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFieldHelpers(t *testing.T) {
	f := Fields("a", 1, "b")
	if len(f) != 1 || f["a"] != 1 {
		t.Errorf("expected odd trailing key to be dropped, got %v", f)
	}

	ef := ErrorFields("decode", os.ErrNotExist)
	if ef[FieldOperation] != "decode" || ef[FieldError] != os.ErrNotExist.Error() {
		t.Errorf("unexpected error fields %v", ef)
	}

	df := DurationFields("classify", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", df[FieldDuration])
	}

	m := MergeWithError(nil, os.ErrClosed)
	if m[FieldError] != os.ErrClosed.Error() {
		t.Errorf("expected error merged, got %v", m)
	}
}
