package routing

import (
	"time"

	"github.com/rivulet-io/rivulet/internal/partition"
)

// Key-query outcome labels reported to the metrics recorder.
const (
	QueryOutcomeHit         = "hit"
	QueryOutcomeNotFound    = "not_found"
	QueryOutcomeUnavailable = "unavailable"
	QueryOutcomeError       = "error"
)

// MetricsRecorder is the interface for recording registry operation
// metrics. It keeps this package decoupled from the metrics package.
type MetricsRecorder interface {
	RecordKeyQuery(durationSeconds float64, outcome string)
	RecordUpdate(durationSeconds float64, hosts, topics int)
}

// InstrumentedRegistry wraps a Registry and records metrics for updates and
// key queries. If metrics is nil, operations pass through directly.
type InstrumentedRegistry struct {
	registry *Registry
	metrics  MetricsRecorder
}

// NewInstrumentedRegistry creates an instrumented wrapper around a Registry.
func NewInstrumentedRegistry(registry *Registry, metrics MetricsRecorder) *InstrumentedRegistry {
	return &InstrumentedRegistry{registry: registry, metrics: metrics}
}

// Update rebuilds and publishes the cluster snapshot, recording duration
// and snapshot size.
func (r *InstrumentedRegistry) Update(activeByHost, standbyByHost map[HostInfo][]TopicPartition, partitionCounts map[string]int32) {
	start := time.Now()
	r.registry.Update(activeByHost, standbyByHost, partitionCounts)
	if r.metrics != nil {
		r.metrics.RecordUpdate(time.Since(start).Seconds(), r.registry.HostCount(), len(partitionCounts))
	}
}

// AllMetadata returns the metadata of every host in the current snapshot.
func (r *InstrumentedRegistry) AllMetadata() []*InstanceMetadata {
	return r.registry.AllMetadata()
}

// AllMetadataForStore returns the metadata of every host serving the store.
func (r *InstrumentedRegistry) AllMetadataForStore(storeName string) ([]*InstanceMetadata, error) {
	return r.registry.AllMetadataForStore(storeName)
}

// LocalMetadata returns the metadata entry for this process's own host.
func (r *InstrumentedRegistry) LocalMetadata() *InstanceMetadata {
	return r.registry.LocalMetadata()
}

// KeyQueryMetadataForKey resolves key ownership, recording latency and the
// query outcome.
func (r *InstrumentedRegistry) KeyQueryMetadataForKey(storeName string, key any, strategy partition.Partitioner) (*KeyQueryMetadata, error) {
	start := time.Now()
	result, err := r.registry.KeyQueryMetadataForKey(storeName, key, strategy)
	if r.metrics != nil {
		r.metrics.RecordKeyQuery(time.Since(start).Seconds(), queryOutcome(result, err))
	}
	return result, err
}

func queryOutcome(result *KeyQueryMetadata, err error) string {
	switch {
	case err != nil:
		return QueryOutcomeError
	case result == nil:
		return QueryOutcomeNotFound
	case result.Unavailable():
		return QueryOutcomeUnavailable
	default:
		return QueryOutcomeHit
	}
}

// Ensure InstrumentedRegistry implements MetadataProvider.
var _ MetadataProvider = (*InstrumentedRegistry)(nil)
