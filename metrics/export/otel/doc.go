// Package otel provides OpenTelemetry metric exporter bindings for cookieAuth counters
// and histograms.
//
// [NewOTelExporter] registers an Int64ObservableCounter per engine counter
// (cookieauth_login_success_total, cookieauth_auth_attached_total, and the
// rest of [internaldefs.CounterDefs]) and an Int64ObservableGauge per
// authenticate-latency bucket. A single callback reads
// [cookieAuth.Engine.MetricsSnapshot] on each collection cycle, so
// observation cost is one snapshot per scrape regardless of instrument count.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate engine state.
package otel
