// Package observability wires OpenTelemetry tracing and metrics for the
// detection pipeline.
//
// Exporters are only created when an OTLP endpoint is configured; otherwise
// the global no-op providers stay in place and every instrument is free.
//
//	comp := observability.NewComponent(cfg, "voicecheck", version.GetShortVersion(), "production")
//	_ = comp.Start(ctx)
//	defer comp.Stop(ctx)
//
//	metrics, _ := observability.NewMetrics(observability.Meter("voicecheck"))
//	ctx, span := observability.StartSpan(ctx, observability.SpanDetectionDecode)
//	defer span.End()
package observability
