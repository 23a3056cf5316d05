package routing

import "sort"

// InstanceMetadata describes everything one host serves in the current
// assignment snapshot: the topic-partitions it actively owns, the ones it
// holds as standby, and the store names derivable from both. Values are
// immutable once built; accessors return freshly allocated, sorted copies,
// so callers can never reach back into registry state.
type InstanceMetadata struct {
	host              HostInfo
	storeNames        map[string]struct{}
	activePartitions  map[TopicPartition]struct{}
	standbyStoreNames map[string]struct{}
	standbyPartitions map[TopicPartition]struct{}
}

func newInstanceMetadata(host HostInfo) *InstanceMetadata {
	return &InstanceMetadata{
		host:              host,
		storeNames:        make(map[string]struct{}),
		activePartitions:  make(map[TopicPartition]struct{}),
		standbyStoreNames: make(map[string]struct{}),
		standbyPartitions: make(map[TopicPartition]struct{}),
	}
}

// Host returns the host this metadata describes.
func (m *InstanceMetadata) Host() HostInfo {
	return m.host
}

// StoreNames returns the names of every store this host serves in any
// capacity, active or standby, including global stores. Sorted.
func (m *InstanceMetadata) StoreNames() []string {
	return sortedNames(m.storeNames)
}

// ActivePartitions returns the topic-partitions this host actively owns.
// Sorted by topic, then partition.
func (m *InstanceMetadata) ActivePartitions() []TopicPartition {
	return sortedPartitions(m.activePartitions)
}

// StandbyStoreNames returns the names of stores for which this host holds
// only standby copies of at least one partition. Global stores never appear
// here. Sorted.
func (m *InstanceMetadata) StandbyStoreNames() []string {
	return sortedNames(m.standbyStoreNames)
}

// StandbyPartitions returns the topic-partitions this host holds as
// standby. Sorted by topic, then partition.
func (m *InstanceMetadata) StandbyPartitions() []TopicPartition {
	return sortedPartitions(m.standbyPartitions)
}

// HasStore reports whether this host serves the named store in any capacity.
func (m *InstanceMetadata) HasStore(name string) bool {
	_, ok := m.storeNames[name]
	return ok
}

// HasActivePartition reports whether this host actively owns tp.
func (m *InstanceMetadata) HasActivePartition(tp TopicPartition) bool {
	_, ok := m.activePartitions[tp]
	return ok
}

// HasStandbyPartition reports whether this host holds tp as standby.
func (m *InstanceMetadata) HasStandbyPartition(tp TopicPartition) bool {
	_, ok := m.standbyPartitions[tp]
	return ok
}

func sortedNames(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func sortedPartitions(set map[TopicPartition]struct{}) []TopicPartition {
	if len(set) == 0 {
		return nil
	}
	out := make([]TopicPartition, 0, len(set))
	for tp := range set {
		out = append(out, tp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Topic != out[j].Topic {
			return out[i].Topic < out[j].Topic
		}
		return out[i].Partition < out[j].Partition
	})
	return out
}
