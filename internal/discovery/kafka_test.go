package discovery

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twmb/franz-go/pkg/kadm"
)

func TestCountsFromTopicDetails(t *testing.T) {
	details := kadm.TopicDetails{
		"topic-one": kadm.TopicDetail{
			Topic: "topic-one",
			Partitions: kadm.PartitionDetails{
				0: kadm.PartitionDetail{Topic: "topic-one", Partition: 0},
				1: kadm.PartitionDetail{Topic: "topic-one", Partition: 1},
			},
		},
		"topic-two": kadm.TopicDetail{
			Topic: "topic-two",
			Partitions: kadm.PartitionDetails{
				0: kadm.PartitionDetail{Topic: "topic-two", Partition: 0},
			},
		},
		"topic-missing": kadm.TopicDetail{
			Topic: "topic-missing",
			Err:   errors.New("unknown topic or partition"),
		},
	}

	counts := countsFromTopicDetails(details)
	assert.Equal(t, map[string]int32{
		"topic-one": 2,
		"topic-two": 1,
	}, counts, "errored topics must be absent, not zero")
}

func TestCountsFromTopicDetails_Empty(t *testing.T) {
	assert.Empty(t, countsFromTopicDetails(kadm.TopicDetails{}))
}
