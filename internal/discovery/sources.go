package discovery

import (
	"context"

	"github.com/rivulet-io/rivulet/internal/routing"
)

// Assignment is one complete view of partition ownership across the
// cluster, ready to be installed into the registry.
type Assignment struct {
	Active  map[routing.HostInfo][]routing.TopicPartition
	Standby map[routing.HostInfo][]routing.TopicPartition
}

// AssignmentSource produces the current cluster assignment. The processing
// engine's rebalance listener is the authoritative implementation;
// GroupAssignmentSource is a fallback for engines that only expose a plain
// consumer group.
type AssignmentSource interface {
	Assignments(ctx context.Context) (Assignment, error)
}

// PartitionCountSource supplies the per-topic partition counts that govern
// key routing.
type PartitionCountSource interface {
	PartitionCounts(ctx context.Context, topics []string) (map[string]int32, error)
}
