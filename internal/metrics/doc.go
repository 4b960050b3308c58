// Package metrics exports gitcite activity as Prometheus metrics.
//
// [PrometheusRecorder] implements both observability.CitationHooks and
// observability.HTTPHooks, so registering it with the observability package
// is enough to instrument parsing, fetching, formatting and every outgoing
// host API call. The HTTP server additionally records its own inbound
// requests through [PrometheusRecorder.ObserveRequest].
package metrics
