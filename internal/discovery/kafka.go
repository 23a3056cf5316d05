package discovery

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

// NewAdminClient creates a Kafka client and its admin wrapper for
// discovery use.
func NewAdminClient(seedBrokers []string, clientID string) (*kgo.Client, *kadm.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(seedBrokers...),
		kgo.ClientID(clientID),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("discovery: create kafka client: %w", err)
	}
	return client, kadm.NewClient(client), nil
}

// KafkaPartitionCounts is a PartitionCountSource backed by Kafka topic
// metadata.
type KafkaPartitionCounts struct {
	admin *kadm.Client
}

// NewKafkaPartitionCounts creates a partition-count source using the given
// admin client.
func NewKafkaPartitionCounts(admin *kadm.Client) *KafkaPartitionCounts {
	return &KafkaPartitionCounts{admin: admin}
}

// PartitionCounts returns the current partition count of each requested
// topic. Topics that do not exist (or fail to list) are simply absent from
// the result; stores fed by them stay unroutable until the topic appears.
func (s *KafkaPartitionCounts) PartitionCounts(ctx context.Context, topics []string) (map[string]int32, error) {
	if len(topics) == 0 {
		return map[string]int32{}, nil
	}

	details, err := s.admin.ListTopics(ctx, topics...)
	if err != nil {
		return nil, fmt.Errorf("discovery: list topics: %w", err)
	}
	return countsFromTopicDetails(details), nil
}

func countsFromTopicDetails(details kadm.TopicDetails) map[string]int32 {
	counts := make(map[string]int32, len(details))
	for topic, detail := range details {
		if detail.Err != nil {
			continue
		}
		counts[topic] = int32(len(detail.Partitions))
	}
	return counts
}

// Ensure KafkaPartitionCounts implements PartitionCountSource.
var _ PartitionCountSource = (*KafkaPartitionCounts)(nil)
