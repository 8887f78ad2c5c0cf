// Package component defines lifecycle-managed parts of the service: the
// HTTP server, the classifier backend and the telemetry exporters.
//
// Components start in registration order and stop in reverse order. Their
// Health results feed the /health endpoint and the startup summary.
package component
