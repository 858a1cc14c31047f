// Package prometheus provides Prometheus rendering for cookieAuth metrics.
//
// [NewPrometheusExporter] accepts a [cookieAuth.Engine] and exposes an [http.Handler]
// that renders every engine counter and the authenticate latency histogram in
// Prometheus text exposition format. A scrape of an active engine looks like:
//
//	# HELP cookieauth_login_success_total Successful logins.
//	# TYPE cookieauth_login_success_total counter
//	cookieauth_login_success_total 42
//	...
//	cookieauth_authenticate_latency_seconds_bucket{le="0.005"} 40
//	cookieauth_authenticate_latency_seconds_bucket{le="+Inf"} 42
//
// The families mirror [internaldefs.CounterDefs]; renewal, rejection, and
// session metrics carry the same cookieauth_ prefix.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
