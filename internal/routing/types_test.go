package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHostInfo(t *testing.T) {
	tests := []struct {
		in      string
		want    HostInfo
		wantErr bool
	}{
		{in: "host-one:8080", want: HostInfo{Host: "host-one", Port: 8080}},
		{in: "10.0.0.1:9090", want: HostInfo{Host: "10.0.0.1", Port: 9090}},
		{in: "host-one", wantErr: true},
		{in: "host-one:not-a-port", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHostInfo(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHostInfo_RoundTrip(t *testing.T) {
	h := HostInfo{Host: "host-one", Port: 8080}
	parsed, err := ParseHostInfo(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, parsed)
}

func TestKeyQueryMetadata_Unavailable(t *testing.T) {
	assert.True(t, NotAvailable().Unavailable())

	populated := KeyQueryMetadata{ActiveHost: HostInfo{Host: "a", Port: 1}, Partition: 0}
	assert.False(t, populated.Unavailable())

	// An unknown active host alone does not make a result unavailable:
	// a resolved partition may simply have no current owner.
	orphan := KeyQueryMetadata{ActiveHost: UnknownHost, Partition: 3}
	assert.False(t, orphan.Unavailable())
}

func TestTopicPartition_String(t *testing.T) {
	tp := TopicPartition{Topic: "topic-one", Partition: 2}
	assert.Equal(t, "topic-one-2", tp.String())
}
