package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/voicecheck/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// InitMeter initializes the OpenTelemetry meter provider and installs it globally.
// The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the detection pipeline instruments.
type Metrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	active   metric.Int64UpDownCounter
	errors   metric.Int64Counter
	score    metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requests, err := meter.Int64Counter(MetricDetectionRequests,
		metric.WithDescription("Detection requests by language and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricDetectionRequests, err)
	}

	duration, err := meter.Float64Histogram(MetricDetectionDuration,
		metric.WithDescription("End to end detection latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricDetectionDuration, err)
	}

	active, err := meter.Int64UpDownCounter(MetricDetectionActive,
		metric.WithDescription("Detections in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricDetectionActive, err)
	}

	errs, err := meter.Int64Counter(MetricDetectionErrors,
		metric.WithDescription("Failed detections by error code and stage"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricDetectionErrors, err)
	}

	score, err := meter.Float64Histogram(MetricClassifierScore,
		metric.WithDescription("Confidence scores returned by the classifier"),
		metric.WithExplicitBucketBoundaries(0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 0.99),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricClassifierScore, err)
	}

	return &Metrics{
		requests: requests,
		duration: duration,
		active:   active,
		errors:   errs,
		score:    score,
	}, nil
}

// RecordStart increments the in-flight count.
func (m *Metrics) RecordStart(ctx context.Context) {
	m.active.Add(ctx, 1)
}

// RecordEnd decrements the in-flight count and records the finished detection.
// outcome is "success" or an error code.
func (m *Metrics) RecordEnd(ctx context.Context, language, outcome string, duration time.Duration) {
	m.active.Add(ctx, -1)
	m.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrLanguage, language),
		attribute.String(AttrOutcome, outcome),
	))
	m.duration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrOutcome, outcome),
	))
}

// RecordError counts a failure by error code and the stage that produced it.
func (m *Metrics) RecordError(ctx context.Context, code, stage string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrErrorCode, code),
		attribute.String(AttrStage, stage),
	))
}

// RecordScore records a classifier verdict.
func (m *Metrics) RecordScore(ctx context.Context, backend, classification string, score float64) {
	m.score.Record(ctx, score, metric.WithAttributes(
		attribute.String(AttrBackend, backend),
		attribute.String(AttrClassification, classification),
	))
}
