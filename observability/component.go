package observability

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/voicecheck/component"
)

// Component owns the tracer and meter providers for the service lifetime.
type Component struct {
	cfg         Config
	service     string
	version     string
	environment string

	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates the telemetry component.
func NewComponent(cfg Config, service, version, environment string) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, service: service, version: version, environment: environment}
}

func (c *Component) Name() string { return "telemetry" }

// Start installs OTLP providers when an endpoint is configured.
func (c *Component) Start(ctx context.Context) error {
	if !c.cfg.Enabled() {
		return nil
	}
	tp, err := InitTracer(ctx, c.cfg.Tracer(c.service, c.version, c.environment))
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	mp, err := InitMeter(ctx, c.cfg.Meter(c.service, c.version, c.environment))
	if err != nil {
		_ = tp.Shutdown(ctx)
		return fmt.Errorf("telemetry: %w", err)
	}
	c.tp, c.mp = tp, mp
	return nil
}

// Stop flushes and shuts down the providers.
func (c *Component) Stop(ctx context.Context) error {
	var errs []error
	if c.tp != nil {
		errs = append(errs, c.tp.Shutdown(ctx))
	}
	if c.mp != nil {
		errs = append(errs, c.mp.Shutdown(ctx))
	}
	c.tp, c.mp = nil, nil
	return errors.Join(errs...)
}

func (c *Component) Health(context.Context) component.Health {
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *Component) Describe() component.Description {
	details := "disabled"
	if c.cfg.Enabled() {
		details = fmt.Sprintf("otlp %s sample=%.2f", c.cfg.Endpoint, c.cfg.SampleRate)
	}
	return component.Description{Type: "telemetry", Details: details}
}
