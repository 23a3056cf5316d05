package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rivulet-io/rivulet/internal/routing"
)

// RoutingMetrics holds metrics for the partition-routing registry.
type RoutingMetrics struct {
	// KeyQueryLatency tracks key-query latencies broken down by outcome.
	// Labels: outcome (hit, not_found, unavailable, error)
	KeyQueryLatency *prometheus.HistogramVec

	// KeyQueriesTotal tracks total key queries by outcome.
	KeyQueriesTotal *prometheus.CounterVec

	// UpdatesTotal tracks total assignment snapshot updates.
	UpdatesTotal prometheus.Counter

	// UpdateDuration tracks how long snapshot rebuilds take.
	UpdateDuration prometheus.Histogram

	// SnapshotHosts is the number of hosts in the current snapshot.
	SnapshotHosts prometheus.Gauge

	// SnapshotTopics is the number of topics with partition counts in the
	// current snapshot.
	SnapshotTopics prometheus.Gauge
}

// DefaultKeyQueryLatencyBuckets are latency buckets for key queries. The
// resolver is an in-memory lookup, so the range is skewed toward
// microseconds with headroom for scheduling outliers.
var DefaultKeyQueryLatencyBuckets = []float64{
	0.000001, // 1µs
	0.000005, // 5µs
	0.00001,  // 10µs
	0.00005,  // 50µs
	0.0001,   // 100µs
	0.0005,   // 500µs
	0.001,    // 1ms
	0.005,    // 5ms
	0.01,     // 10ms
}

// NewRoutingMetrics creates and registers routing metrics.
// Uses promauto for automatic registration with the default registry.
func NewRoutingMetrics() *RoutingMetrics {
	return newRoutingMetrics(promauto.With(prometheus.DefaultRegisterer))
}

// NewRoutingMetricsWithRegistry creates routing metrics registered with a
// custom registry. Useful for testing to avoid conflicts with the default
// registry.
func NewRoutingMetricsWithRegistry(reg prometheus.Registerer) *RoutingMetrics {
	return newRoutingMetrics(promauto.With(reg))
}

func newRoutingMetrics(factory promauto.Factory) *RoutingMetrics {
	return &RoutingMetrics{
		KeyQueryLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "rivulet",
				Subsystem: "routing",
				Name:      "key_query_latency_seconds",
				Help:      "Key-query latency in seconds, broken down by outcome.",
				Buckets:   DefaultKeyQueryLatencyBuckets,
			},
			[]string{"outcome"},
		),
		KeyQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rivulet",
				Subsystem: "routing",
				Name:      "key_queries_total",
				Help:      "Total number of key queries, broken down by outcome.",
			},
			[]string{"outcome"},
		),
		UpdatesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "rivulet",
				Subsystem: "routing",
				Name:      "snapshot_updates_total",
				Help:      "Total number of assignment snapshot updates applied.",
			},
		),
		UpdateDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "rivulet",
				Subsystem: "routing",
				Name:      "snapshot_update_duration_seconds",
				Help:      "Time spent rebuilding and publishing an assignment snapshot.",
				Buckets:   DefaultKeyQueryLatencyBuckets,
			},
		),
		SnapshotHosts: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "rivulet",
				Subsystem: "routing",
				Name:      "snapshot_hosts",
				Help:      "Number of hosts in the current assignment snapshot.",
			},
		),
		SnapshotTopics: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "rivulet",
				Subsystem: "routing",
				Name:      "snapshot_topics",
				Help:      "Number of topics with partition counts in the current snapshot.",
			},
		),
	}
}

// RecordKeyQuery records one key query with its duration and outcome.
func (m *RoutingMetrics) RecordKeyQuery(durationSeconds float64, outcome string) {
	m.KeyQueryLatency.WithLabelValues(outcome).Observe(durationSeconds)
	m.KeyQueriesTotal.WithLabelValues(outcome).Inc()
}

// RecordUpdate records one snapshot update with its duration and the
// resulting snapshot size.
func (m *RoutingMetrics) RecordUpdate(durationSeconds float64, hosts, topics int) {
	m.UpdatesTotal.Inc()
	m.UpdateDuration.Observe(durationSeconds)
	m.SnapshotHosts.Set(float64(hosts))
	m.SnapshotTopics.Set(float64(topics))
}

// Ensure RoutingMetrics implements the registry's recorder interface.
var _ routing.MetricsRecorder = (*RoutingMetrics)(nil)
