package routing

import (
	"fmt"
	"net"
	"strconv"
)

// HostInfo identifies a host serving interactive queries, by advertised
// host name and port. HostInfo is comparable; equality is by both fields.
type HostInfo struct {
	Host string
	Port int32
}

// UnknownHost is the sentinel for "identity of the local process is
// unknown". It is also the active host of an unavailable key-query result.
var UnknownHost = HostInfo{Host: "unknown", Port: -1}

func (h HostInfo) String() string {
	return net.JoinHostPort(h.Host, strconv.FormatInt(int64(h.Port), 10))
}

// ParseHostInfo parses a "host:port" string into a HostInfo.
func ParseHostInfo(s string) (HostInfo, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return HostInfo{}, fmt.Errorf("routing: parse host info %q: %w", s, err)
	}
	port, err := strconv.ParseInt(portStr, 10, 32)
	if err != nil {
		return HostInfo{}, fmt.Errorf("routing: parse host info %q: %w", s, err)
	}
	return HostInfo{Host: host, Port: int32(port)}, nil
}

// TopicPartition identifies one partition of a topic. It is comparable;
// equality is by both fields.
type TopicPartition struct {
	Topic     string
	Partition int32
}

func (tp TopicPartition) String() string {
	return fmt.Sprintf("%s-%d", tp.Topic, tp.Partition)
}

// NoPartition is the partition index of a key-query result that carries no
// meaningful partition.
const NoPartition int32 = -1

// KeyQueryMetadata is the result of resolving (store, key) to cluster
// ownership: the host actively serving the key's partition, the hosts
// holding standby copies, and the resolved partition index.
type KeyQueryMetadata struct {
	ActiveHost   HostInfo
	StandbyHosts []HostInfo
	Partition    int32
}

// NotAvailable returns the sentinel result meaning "routing information is
// not available yet": the cluster snapshot is empty, typically because no
// rebalance has completed. Callers should retry after the next assignment
// rather than treat the store as nonexistent.
func NotAvailable() KeyQueryMetadata {
	return KeyQueryMetadata{ActiveHost: UnknownHost, Partition: NoPartition}
}

// Unavailable reports whether m is the NotAvailable sentinel.
func (m KeyQueryMetadata) Unavailable() bool {
	return m.ActiveHost == UnknownHost && len(m.StandbyHosts) == 0 && m.Partition == NoPartition
}

func (m KeyQueryMetadata) String() string {
	return fmt.Sprintf("KeyQueryMetadata{active=%s, standbys=%v, partition=%d}",
		m.ActiveHost, m.StandbyHosts, m.Partition)
}
