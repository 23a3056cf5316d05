package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivulet-io/rivulet/internal/partition"
)

type capturingRecorder struct {
	keyQueryOutcomes []string
	updateHosts      []int
	updateTopics     []int
}

func (c *capturingRecorder) RecordKeyQuery(_ float64, outcome string) {
	c.keyQueryOutcomes = append(c.keyQueryOutcomes, outcome)
}

func (c *capturingRecorder) RecordUpdate(_ float64, hosts, topics int) {
	c.updateHosts = append(c.updateHosts, hosts)
	c.updateTopics = append(c.updateTopics, topics)
}

func TestInstrumentedRegistry_RecordsUpdate(t *testing.T) {
	f := newFixture(t)
	rec := &capturingRecorder{}
	instr := NewInstrumentedRegistry(f.registry, rec)

	instr.Update(f.activeByHost, f.standbyByHost, f.partitionCounts)

	require.Len(t, rec.updateHosts, 1)
	assert.Equal(t, 3, rec.updateHosts[0])
	assert.Equal(t, 4, rec.updateTopics[0])
}

func TestInstrumentedRegistry_RecordsKeyQueryOutcomes(t *testing.T) {
	f := newFixture(t)
	rec := &capturingRecorder{}
	instr := NewInstrumentedRegistry(f.registry, rec)
	strategy := partition.ForSerializer(partition.StringSerializer{})

	_, err := instr.KeyQueryMetadataForKey("table-three", "the-key", strategy)
	require.NoError(t, err)

	_, err = instr.KeyQueryMetadataForKey("not-a-store", "the-key", strategy)
	require.NoError(t, err)

	_, err = instr.KeyQueryMetadataForKey("table-one", "the-key", fixedPartitioner(0, 1))
	require.Error(t, err)

	instr.Update(nil, nil, nil)
	_, err = instr.KeyQueryMetadataForKey("table-one", "the-key", strategy)
	require.NoError(t, err)

	assert.Equal(t, []string{
		QueryOutcomeHit,
		QueryOutcomeNotFound,
		QueryOutcomeError,
		QueryOutcomeUnavailable,
	}, rec.keyQueryOutcomes)
}

func TestInstrumentedRegistry_NilRecorderPassesThrough(t *testing.T) {
	f := newFixture(t)
	instr := NewInstrumentedRegistry(f.registry, nil)

	instr.Update(f.activeByHost, f.standbyByHost, f.partitionCounts)
	assert.Len(t, instr.AllMetadata(), 3)

	metas, err := instr.AllMetadataForStore("table-one")
	require.NoError(t, err)
	assert.Len(t, metas, 3)

	require.NotNil(t, instr.LocalMetadata())
	assert.Equal(t, hostOne, instr.LocalMetadata().Host())
}
