package routing

import (
	"errors"
	"sort"
	"sync/atomic"

	"github.com/rivulet-io/rivulet/internal/logging"
	"github.com/rivulet-io/rivulet/internal/partition"
)

// Common errors. All of them signal an invalid argument supplied by the
// caller; none are retried internally.
var (
	ErrMissingStoreName    = errors.New("routing: store name must not be empty")
	ErrMissingKey          = errors.New("routing: key must not be nil")
	ErrMissingPartitioner  = errors.New("routing: partitioner must not be nil")
	ErrNoPartitionResolved = errors.New("routing: partitioner resolved no partition for key")
	ErrMultiplePartitions  = errors.New("routing: point lookups must resolve to exactly one partition")
)

// StoreTopology is the read-only topology collaborator the registry
// consults: whether a store is global, which single source topic feeds a
// non-global store, and which stores a topic feeds. It must be fully built
// before the first Update or query.
type StoreTopology interface {
	HasStore(name string) bool
	IsGlobal(name string) bool
	SourceTopic(name string) (string, bool)
	StoresForTopic(topic string) []string
	GlobalStores() []string
}

// MetadataProvider is the read side of the registry, consumed by whatever
// layer serves interactive-query traffic.
type MetadataProvider interface {
	AllMetadata() []*InstanceMetadata
	AllMetadataForStore(storeName string) ([]*InstanceMetadata, error)
	LocalMetadata() *InstanceMetadata
	KeyQueryMetadataForKey(storeName string, key any, strategy partition.Partitioner) (*KeyQueryMetadata, error)
}

// clusterSnapshot is the complete, immutable routing state derived from one
// Update call. It is published with a single atomic store and never mutated
// afterwards.
type clusterSnapshot struct {
	instances       []*InstanceMetadata
	byHost          map[HostInfo]*InstanceMetadata
	partitionCounts map[string]int32
	local           *InstanceMetadata
}

func emptySnapshot() *clusterSnapshot {
	return &clusterSnapshot{
		byHost:          make(map[HostInfo]*InstanceMetadata),
		partitionCounts: make(map[string]int32),
	}
}

// Registry holds the current cluster assignment snapshot and answers
// ownership queries against it. Reads are lock-free: each call dereferences
// the published snapshot once and works on that consistent copy even if a
// concurrent Update completes mid-call. The single writer (the rebalance
// collaborator) is serialized upstream by contract.
type Registry struct {
	topo   StoreTopology
	local  HostInfo
	logger *logging.Logger

	snapshot atomic.Pointer[clusterSnapshot]
}

// NewRegistry creates a registry for the given topology and local host
// identity. Use UnknownHost when the local identity is not known. A nil
// logger defaults to logging.Default(). Construction never fails; every
// read operation before the first Update yields empty results.
func NewRegistry(topo StoreTopology, localHost HostInfo, logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.Default()
	}
	r := &Registry{
		topo:   topo,
		local:  localHost,
		logger: logger.With(map[string]any{"component": "routing"}),
	}
	r.snapshot.Store(emptySnapshot())
	return r
}

// Update rebuilds the cluster snapshot from scratch and publishes it
// atomically. It is called by the assignment collaborator after every
// rebalance. All-empty maps are valid input and produce an empty snapshot.
// Previously returned metadata keeps observing the old, now-detached data.
func (r *Registry) Update(activeByHost, standbyByHost map[HostInfo][]TopicPartition, partitionCounts map[string]int32) {
	snap := r.buildSnapshot(activeByHost, standbyByHost, partitionCounts)
	r.snapshot.Store(snap)
	r.logger.Infof("assignment snapshot installed", map[string]any{
		"hosts":  len(snap.instances),
		"topics": len(snap.partitionCounts),
	})
}

func (r *Registry) buildSnapshot(activeByHost, standbyByHost map[HostInfo][]TopicPartition, partitionCounts map[string]int32) *clusterSnapshot {
	snap := emptySnapshot()

	for topic, count := range partitionCounts {
		snap.partitionCounts[topic] = count
	}

	hosts := make(map[HostInfo]struct{}, len(activeByHost)+len(standbyByHost))
	for host := range activeByHost {
		hosts[host] = struct{}{}
	}
	for host := range standbyByHost {
		hosts[host] = struct{}{}
	}

	globals := r.topo.GlobalStores()

	for host := range hosts {
		meta := newInstanceMetadata(host)

		for _, tp := range activeByHost[host] {
			meta.activePartitions[tp] = struct{}{}
			for _, store := range r.topo.StoresForTopic(tp.Topic) {
				meta.storeNames[store] = struct{}{}
			}
		}
		for _, tp := range standbyByHost[host] {
			meta.standbyPartitions[tp] = struct{}{}
			for _, store := range r.topo.StoresForTopic(tp.Topic) {
				meta.standbyStoreNames[store] = struct{}{}
				meta.storeNames[store] = struct{}{}
			}
		}

		// Global stores are fully replicated: every known host serves
		// them, even hosts with zero partitions, and they are never
		// standby-routed.
		for _, store := range globals {
			meta.storeNames[store] = struct{}{}
		}

		snap.byHost[host] = meta
		snap.instances = append(snap.instances, meta)
	}

	sort.Slice(snap.instances, func(i, j int) bool {
		a, b := snap.instances[i].host, snap.instances[j].host
		if a.Host != b.Host {
			return a.Host < b.Host
		}
		return a.Port < b.Port
	})

	if r.local != UnknownHost {
		snap.local = snap.byHost[r.local]
	}
	return snap
}

// AllMetadata returns the metadata of every host in the current snapshot.
// The returned slice is a fresh copy, decoupled from future updates.
func (r *Registry) AllMetadata() []*InstanceMetadata {
	snap := r.snapshot.Load()
	if len(snap.instances) == 0 {
		return nil
	}
	out := make([]*InstanceMetadata, len(snap.instances))
	copy(out, snap.instances)
	return out
}

// AllMetadataForStore returns the metadata of every host serving the named
// store in any capacity. An unknown store (or a registry that has never
// seen an update) yields an empty result, not an error.
func (r *Registry) AllMetadataForStore(storeName string) ([]*InstanceMetadata, error) {
	if storeName == "" {
		return nil, ErrMissingStoreName
	}
	snap := r.snapshot.Load()
	var out []*InstanceMetadata
	for _, meta := range snap.instances {
		if meta.HasStore(storeName) {
			out = append(out, meta)
		}
	}
	return out, nil
}

// LocalMetadata returns the metadata entry for this process's own host, or
// nil when the local identity is unknown or absent from the latest snapshot.
func (r *Registry) LocalMetadata() *InstanceMetadata {
	return r.snapshot.Load().local
}

// HostCount returns the number of hosts in the current snapshot.
func (r *Registry) HostCount() int {
	return len(r.snapshot.Load().instances)
}

// Ensure Registry implements MetadataProvider.
var _ MetadataProvider = (*Registry)(nil)
