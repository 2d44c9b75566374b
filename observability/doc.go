// Package observability provides OpenTelemetry tracing and metrics for
// plan synthesis and plan execution: tracer/meter initialization with
// OTLP HTTP exporters, span helpers, and the planner metric bundle.
package observability
