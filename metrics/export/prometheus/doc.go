// Package prometheus provides Prometheus collectors for caffauth metrics.
//
// [NewPrometheusExporter] accepts a [caffauth.Engine] and exposes an
// [http.Handler] that renders all caffauth counters in Prometheus text
// exposition format. Counter names are prefixed caffauth_*_total.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
