package routing

import (
	"fmt"

	"github.com/rivulet-io/rivulet/internal/partition"
)

// globalStorePartition is the placeholder partition index reported for
// global-store queries. Global stores are not partitioned, so the index is
// not meaningful; a fixed value keeps the result shape consistent.
const globalStorePartition int32 = 0

// KeyQueryMetadataForKey resolves (store, key) to the host actively serving
// the key's partition plus the hosts holding standby copies, using the
// supplied partitioning strategy against the current snapshot.
//
// The result distinguishes three non-error cases: a populated result for a
// routable key, nil for a store unknown to the topology, and the
// NotAvailable sentinel when the cluster snapshot is empty (callers should
// retry after the next rebalance). Missing arguments and strategies that
// resolve zero or multiple partitions fail with an invalid-argument error.
func (r *Registry) KeyQueryMetadataForKey(storeName string, key any, strategy partition.Partitioner) (*KeyQueryMetadata, error) {
	if storeName == "" {
		return nil, ErrMissingStoreName
	}
	if key == nil {
		return nil, ErrMissingKey
	}
	if strategy == nil {
		return nil, ErrMissingPartitioner
	}

	snap := r.snapshot.Load()
	if len(snap.instances) == 0 {
		na := NotAvailable()
		return &na, nil
	}

	if !r.topo.HasStore(storeName) {
		return nil, nil
	}
	if r.topo.IsGlobal(storeName) {
		return globalQueryMetadata(snap), nil
	}

	topic, ok := r.topo.SourceTopic(storeName)
	if !ok {
		// Topology and assignment disagree; treat the store as invisible.
		return nil, nil
	}

	partitions, err := strategy.Partitions(topic, key, nil, snap.partitionCounts[topic])
	if err != nil {
		return nil, fmt.Errorf("routing: resolve partition for store %q: %w", storeName, err)
	}
	switch {
	case len(partitions) == 0:
		return nil, ErrNoPartitionResolved
	case len(partitions) > 1:
		return nil, fmt.Errorf("%w: store %q resolved %d partitions", ErrMultiplePartitions, storeName, len(partitions))
	}

	tp := TopicPartition{Topic: topic, Partition: partitions[0]}
	result := KeyQueryMetadata{ActiveHost: UnknownHost, Partition: tp.Partition}
	for _, meta := range snap.instances {
		if meta.HasActivePartition(tp) {
			result.ActiveHost = meta.host
		}
		if meta.HasStandbyPartition(tp) {
			result.StandbyHosts = append(result.StandbyHosts, meta.host)
		}
	}
	return &result, nil
}

// globalQueryMetadata routes a global-store query. Global stores are fully
// replicated, so the local host answers when its identity is known;
// otherwise the first host of the snapshot is picked deterministically.
// Standbys are always empty for global stores.
func globalQueryMetadata(snap *clusterSnapshot) *KeyQueryMetadata {
	host := snap.instances[0].host
	if snap.local != nil {
		host = snap.local.host
	}
	return &KeyQueryMetadata{ActiveHost: host, Partition: globalStorePartition}
}
