package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/voicecheck/component"
)

func TestConfig_ExporterSettings(t *testing.T) {
	cfg := Config{Endpoint: "collector:4318", Insecure: true}
	cfg.ApplyDefaults()

	tc := cfg.Tracer("voicecheck", "1.2.0", "test")
	if tc.ServiceName != "voicecheck" || tc.ServiceVersion != "1.2.0" || tc.Environment != "test" {
		t.Errorf("unexpected identity %+v", tc)
	}
	if tc.Endpoint != "collector:4318" || !tc.Insecure || tc.SampleRate != 1.0 {
		t.Errorf("unexpected tracer settings %+v", tc)
	}

	mc := cfg.Meter("voicecheck", "1.2.0", "test")
	if mc.Endpoint != "collector:4318" || mc.Interval != 15*time.Second {
		t.Errorf("unexpected meter settings %+v", mc)
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Enabled() {
		t.Error("expected export disabled without endpoint")
	}
	if cfg.SampleRate != 1 || cfg.MetricInterval != 15*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	cfg.SampleRate = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected sample rate above 1 to fail")
	}
}

func TestNewMetrics_Noop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordStart(ctx)
	metrics.RecordEnd(ctx, "Tamil", "success", 100*time.Millisecond)
	metrics.RecordError(ctx, "DECODE_ERROR", "decode")
	metrics.RecordScore(ctx, "heuristic", "HUMAN", 0.9)
}

func TestMetrics_RecordsNamedInstruments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}

	ctx := context.Background()
	metrics.RecordStart(ctx)
	metrics.RecordEnd(ctx, "Hindi", "success", 20*time.Millisecond)
	metrics.RecordError(ctx, "CLASSIFIER_TIMEOUT", "classify")
	metrics.RecordScore(ctx, "heuristic", "AI_GENERATED", 0.91)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	seen := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			seen[m.Name] = true
		}
	}
	for _, name := range []string{
		MetricDetectionRequests,
		MetricDetectionDuration,
		MetricDetectionActive,
		MetricDetectionErrors,
		MetricClassifierScore,
	} {
		if !seen[name] {
			t.Errorf("expected instrument %s to be recorded, got %v", name, seen)
		}
	}
}

func TestOperationContext_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	oc := NewOperationContext("voicecheck", "req-1", "Telugu", nil)
	ctx, span := oc.Start(context.Background())

	_, child := StartSpan(ctx, SpanDetectionDecode)
	EndSpan(child, errors.New("bad base64"))

	oc.End(ctx, span, "DECODE_ERROR", errors.New("bad base64"))

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	decode, root := spans[0], spans[1]
	if decode.Name() != SpanDetectionDecode || root.Name() != SpanDetection {
		t.Errorf("unexpected span names %q, %q", decode.Name(), root.Name())
	}
	if decode.Parent().SpanID() != root.SpanContext().SpanID() {
		t.Error("decode span should be a child of the detection span")
	}
	if root.Status().Code != codes.Error {
		t.Errorf("expected error status on root span, got %v", root.Status())
	}

	attrs := map[string]string{}
	for _, kv := range root.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs[AttrLanguage] != "Telugu" || attrs[AttrRequestID] != "req-1" || attrs[AttrOutcome] != "DECODE_ERROR" {
		t.Errorf("unexpected root attributes %v", attrs)
	}
}

func TestOperationContext_Duration(t *testing.T) {
	oc := NewOperationContext("voicecheck", "", "English", nil)
	oc.StartTime = time.Now().Add(-50 * time.Millisecond)

	if d := oc.Duration(); d < 45*time.Millisecond || d > 500*time.Millisecond {
		t.Errorf("expected duration around 50ms, got %v", d)
	}
}

func TestComponent_DisabledIsNoop(t *testing.T) {
	c := NewComponent(Config{}, "voicecheck", "dev", "test")
	ctx := context.Background()

	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if c.tp != nil || c.mp != nil {
		t.Error("expected no providers without an endpoint")
	}
	if h := c.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %s", h.Status)
	}
	if d := c.Describe(); d.Details != "disabled" {
		t.Errorf("expected disabled description, got %q", d.Details)
	}
	if err := c.Stop(ctx); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}
