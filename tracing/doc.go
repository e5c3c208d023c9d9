// Package tracing wraps OpenTelemetry so that widget and directory operations
// can be traced without importing the upstream packages directly. Spans are
// no-ops until Init or InitWithExporter installs a provider.
package tracing
