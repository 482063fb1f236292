// Package otel provides OpenTelemetry metric exporter bindings for authcore
// counters.
//
// [NewExporter] registers an Int64ObservableCounter per engine metric; a
// single callback reads [authcore.Engine.MetricsSnapshot] on each collection
// cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider; callers supply the Meter.
//   - Mutate engine state.
package otel
