package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/rivulet-io/rivulet/internal/config"
	"github.com/rivulet-io/rivulet/internal/discovery"
	"github.com/rivulet-io/rivulet/internal/logging"
	"github.com/rivulet-io/rivulet/internal/metrics"
	"github.com/rivulet-io/rivulet/internal/routing"
	"github.com/rivulet-io/rivulet/internal/topology"
)

// ServerOptions configures a rivulet routing node.
type ServerOptions struct {
	Config    *config.Config
	Logger    *logging.Logger
	Version   string
	GitCommit string
	BuildTime string

	// Metrics overrides the routing metrics. Nil registers a new set on the
	// default Prometheus registry.
	Metrics *metrics.RoutingMetrics
}

// Server wires the store topology, the routing registry, Kafka-backed
// discovery, and the metrics endpoint into one runnable node.
type Server struct {
	cfg      *config.Config
	logger   *logging.Logger
	opts     ServerOptions
	topo     *topology.Index
	registry *routing.InstrumentedRegistry

	kafkaClient   *kgo.Client
	metricsServer *metrics.Server
}

// NewServer validates the configuration and builds the routing registry.
// Kafka connections are not opened until Start.
func NewServer(opts ServerOptions) (*Server, error) {
	cfg := opts.Config

	builder := topology.NewBuilder()
	for _, store := range cfg.Stores {
		var err error
		if store.Global {
			err = builder.AddGlobalStore(store.Name, store.SourceTopic)
		} else {
			err = builder.AddStore(store.Name, store.SourceTopic)
		}
		if err != nil {
			return nil, fmt.Errorf("build topology: %w", err)
		}
	}
	topo := builder.Build()

	local := routing.UnknownHost
	if addr := cfg.Node.AdvertisedAddr; addr != "" {
		var err error
		local, err = routing.ParseHostInfo(addr)
		if err != nil {
			return nil, fmt.Errorf("parse advertised address: %w", err)
		}
	}

	rm := opts.Metrics
	if rm == nil {
		rm = metrics.NewRoutingMetrics()
	}
	registry := routing.NewRegistry(topo, local, opts.Logger)
	instrumented := routing.NewInstrumentedRegistry(registry, rm)

	return &Server{
		cfg:      cfg,
		logger:   opts.Logger,
		opts:     opts,
		topo:     topo,
		registry: instrumented,
	}, nil
}

// Provider returns the read side of the routing registry, for embedding the
// node into a larger process.
func (s *Server) Provider() routing.MetadataProvider {
	return s.registry
}

// Start serves metrics and runs the discovery refresh loop until ctx is
// canceled.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Infof("starting rivuletd", map[string]any{
		"version":        s.opts.Version,
		"commit":         s.opts.GitCommit,
		"buildTime":      s.opts.BuildTime,
		"advertisedAddr": s.cfg.Node.AdvertisedAddr,
		"group":          s.cfg.Discovery.Group,
		"stores":         len(s.cfg.Stores),
	})

	s.metricsServer = metrics.NewServer(s.cfg.Observability.MetricsAddr)
	if err := s.metricsServer.Start(); err != nil {
		return fmt.Errorf("start metrics server: %w", err)
	}
	s.logger.Infof("metrics server listening", map[string]any{"addr": s.metricsServer.Addr()})

	clientID := fmt.Sprintf("%s-%s", s.cfg.Kafka.ClientID, uuid.New().String())
	kafkaClient, admin, err := discovery.NewAdminClient(s.cfg.Kafka.SeedBrokers, clientID)
	if err != nil {
		return err
	}
	s.kafkaClient = kafkaClient

	refresher := discovery.NewRefresher(
		discovery.NewGroupAssignmentSource(admin, s.cfg.Discovery.Group, s.logger),
		discovery.NewKafkaPartitionCounts(admin),
		s.registry,
		discovery.RefresherConfig{
			Topics:   s.topo.SourceTopics(),
			Interval: time.Duration(s.cfg.Discovery.RefreshIntervalMs) * time.Millisecond,
			Logger:   s.logger,
		},
	)

	return refresher.Run(ctx)
}

// Shutdown closes the Kafka client and the metrics endpoint.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.kafkaClient != nil {
		s.kafkaClient.Close()
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Close(); err != nil {
			return fmt.Errorf("close metrics server: %w", err)
		}
	}
	return nil
}
