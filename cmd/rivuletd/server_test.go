package main

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivulet-io/rivulet/internal/config"
	"github.com/rivulet-io/rivulet/internal/logging"
	"github.com/rivulet-io/rivulet/internal/metrics"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Node.AdvertisedAddr = "host-one:8080"
	cfg.Kafka.SeedBrokers = []string{"localhost:9092"}
	cfg.Discovery.Group = "rivulet-app"
	cfg.Stores = []config.StoreConfig{
		{Name: "table-one", SourceTopic: "topic-one"},
		{Name: "global-table", SourceTopic: "global-topic", Global: true},
	}
	return cfg
}

func TestNewServer(t *testing.T) {
	srv, err := NewServer(ServerOptions{
		Config:  testConfig(),
		Logger:  logging.Default(),
		Metrics: metrics.NewRoutingMetricsWithRegistry(prometheus.NewRegistry()),
	})
	require.NoError(t, err)
	require.NotNil(t, srv.Provider())

	// No discovery has run yet, so the registry is empty.
	assert.Empty(t, srv.Provider().AllMetadata())
	assert.Nil(t, srv.Provider().LocalMetadata())
	assert.ElementsMatch(t, []string{"topic-one", "global-topic"}, srv.topo.SourceTopics())
}

func TestNewServer_InvalidAdvertisedAddr(t *testing.T) {
	cfg := testConfig()
	cfg.Node.AdvertisedAddr = "not-an-addr"

	_, err := NewServer(ServerOptions{Config: cfg, Logger: logging.Default()})
	assert.Error(t, err)
}

func TestNewServer_DuplicateStore(t *testing.T) {
	cfg := testConfig()
	cfg.Stores = append(cfg.Stores, config.StoreConfig{Name: "table-one", SourceTopic: "topic-other"})

	_, err := NewServer(ServerOptions{Config: cfg, Logger: logging.Default()})
	assert.Error(t, err)
}
