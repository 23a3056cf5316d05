package discovery

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kmsg"

	"github.com/rivulet-io/rivulet/internal/logging"
	"github.com/rivulet-io/rivulet/internal/routing"
)

// GroupAssignmentSource derives active partition ownership from a consumer
// group's member assignments. Members advertise their interactive-query
// endpoint through a "host:port" group instance ID; members without a
// parseable one are skipped. Plain consumer groups cannot express standby
// ownership, so the Standby side of the result is always empty.
type GroupAssignmentSource struct {
	admin  *kadm.Client
	group  string
	logger *logging.Logger
}

// NewGroupAssignmentSource creates an assignment source for the given
// consumer group. A nil logger defaults to logging.Default().
func NewGroupAssignmentSource(admin *kadm.Client, group string, logger *logging.Logger) *GroupAssignmentSource {
	if logger == nil {
		logger = logging.Default()
	}
	return &GroupAssignmentSource{
		admin:  admin,
		group:  group,
		logger: logger.With(map[string]any{"component": "discovery", "group": group}),
	}
}

// Assignments describes the consumer group and converts its member
// assignments into an Assignment.
func (s *GroupAssignmentSource) Assignments(ctx context.Context) (Assignment, error) {
	groups, err := s.admin.DescribeGroups(ctx, s.group)
	if err != nil {
		return Assignment{}, fmt.Errorf("discovery: describe group %q: %w", s.group, err)
	}

	described, ok := groups[s.group]
	if !ok {
		return Assignment{}, fmt.Errorf("discovery: group %q not found", s.group)
	}
	if described.Err != nil {
		return Assignment{}, fmt.Errorf("discovery: describe group %q: %w", s.group, described.Err)
	}

	active := make(map[routing.HostInfo][]routing.TopicPartition, len(described.Members))
	for _, member := range described.Members {
		host, ok := memberHost(member.InstanceID)
		if !ok {
			s.logger.Debugf("skipping member without host:port instance id", map[string]any{
				"memberId": member.MemberID,
				"clientId": member.ClientID,
			})
			continue
		}

		assigned, ok := member.Assigned.AsConsumer()
		if !ok {
			continue
		}
		active[host] = append(active[host], assignmentPartitions(assigned)...)
	}

	return Assignment{
		Active:  active,
		Standby: map[routing.HostInfo][]routing.TopicPartition{},
	}, nil
}

func memberHost(instanceID *string) (routing.HostInfo, bool) {
	if instanceID == nil || *instanceID == "" {
		return routing.HostInfo{}, false
	}
	host, err := routing.ParseHostInfo(*instanceID)
	if err != nil {
		return routing.HostInfo{}, false
	}
	return host, true
}

func assignmentPartitions(assigned *kmsg.ConsumerMemberAssignment) []routing.TopicPartition {
	var out []routing.TopicPartition
	for _, topic := range assigned.Topics {
		for _, p := range topic.Partitions {
			out = append(out, routing.TopicPartition{Topic: topic.Topic, Partition: p})
		}
	}
	return out
}

// Ensure GroupAssignmentSource implements AssignmentSource.
var _ AssignmentSource = (*GroupAssignmentSource)(nil)
