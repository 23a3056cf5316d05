// Package metrics provides Prometheus metrics for observability.
//
// This package exposes metrics for the routing registry:
//   - Key-query latency histogram broken down by outcome
//     (hit, not_found, unavailable, error)
//   - Key-query counters by outcome
//   - Assignment snapshot update counter and rebuild duration
//   - Gauges for the host and topic counts of the current snapshot
//
// Metrics are exposed via a dedicated HTTP server on /metrics in Prometheus
// format.
//
// Usage:
//
//	routingMetrics := metrics.NewRoutingMetrics()
//	registry := routing.NewInstrumentedRegistry(base, routingMetrics)
//
//	metricsServer := metrics.NewServer(":9090")
//	metricsServer.Start()
package metrics
