package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OperationContext tracks one detection from its root span to the
// recorded outcome.
type OperationContext struct {
	ServiceName string
	RequestID   string
	Language    string
	StartTime   time.Time
	Metrics     *Metrics
}

// NewOperationContext creates a new operation context.
// If metrics is nil, metric recording is silently skipped.
func NewOperationContext(serviceName, requestID, language string, metrics *Metrics) *OperationContext {
	return &OperationContext{
		ServiceName: serviceName,
		RequestID:   requestID,
		Language:    language,
		StartTime:   time.Now(),
		Metrics:     metrics,
	}
}

// Start opens the root detection span and counts the request as in flight.
func (oc *OperationContext) Start(ctx context.Context) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanDetection)
	span.SetAttributes(
		attribute.String(AttrServiceName, oc.ServiceName),
		attribute.String(AttrLanguage, oc.Language),
	)
	if oc.RequestID != "" {
		span.SetAttributes(attribute.String(AttrRequestID, oc.RequestID))
	}
	if oc.Metrics != nil {
		oc.Metrics.RecordStart(ctx)
	}
	return ctx, span
}

// End closes the root span and records the outcome ("success" or an error code).
func (oc *OperationContext) End(ctx context.Context, span trace.Span, outcome string, err error) {
	duration := time.Since(oc.StartTime)
	span.SetAttributes(
		attribute.String(AttrOutcome, outcome),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	EndSpan(span, err)

	if oc.Metrics != nil {
		oc.Metrics.RecordEnd(ctx, oc.Language, outcome, duration)
	}
}

// Duration returns the elapsed time since operation start.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
