// Package config provides configuration loading and validation for rivulet.
// Supports YAML files with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors.
var (
	ErrInvalidAdvertisedAddr = errors.New("config: advertised address must be host:port")
	ErrInvalidStore          = errors.New("config: invalid store declaration")
	ErrDuplicateStore        = errors.New("config: duplicate store name")
	ErrInvalidRefresh        = errors.New("config: refresh interval must be positive")
)

// Config holds all configuration for a rivulet node.
type Config struct {
	Node          NodeConfig          `yaml:"node"`
	Kafka         KafkaConfig         `yaml:"kafka"`
	Stores        []StoreConfig       `yaml:"stores"`
	Discovery     DiscoveryConfig     `yaml:"discovery"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// NodeConfig identifies this node to the rest of the cluster.
type NodeConfig struct {
	// AdvertisedAddr is the host:port other nodes use to reach this node's
	// interactive-query endpoint. Empty means the local identity is
	// unknown, which is valid for query-only clients.
	AdvertisedAddr string `yaml:"advertisedAddr" env:"RIVULET_ADVERTISED_ADDR"`
}

// KafkaConfig configures the connection used for partition-count and
// assignment discovery.
type KafkaConfig struct {
	SeedBrokers []string `yaml:"seedBrokers" env:"RIVULET_KAFKA_SEED_BROKERS"`
	ClientID    string   `yaml:"clientId" env:"RIVULET_KAFKA_CLIENT_ID"`
}

// StoreConfig declares one state store of the processing topology.
type StoreConfig struct {
	Name        string `yaml:"name"`
	SourceTopic string `yaml:"sourceTopic"`
	Global      bool   `yaml:"global"`
}

// DiscoveryConfig configures the periodic assignment refresh.
type DiscoveryConfig struct {
	// Group is the consumer group whose member assignments describe
	// active partition ownership.
	Group string `yaml:"group" env:"RIVULET_DISCOVERY_GROUP"`

	// RefreshIntervalMs is how often partition counts and assignments are
	// re-fetched and pushed into the registry.
	RefreshIntervalMs int64 `yaml:"refreshIntervalMs" env:"RIVULET_DISCOVERY_REFRESH_INTERVAL_MS"`
}

// ObservabilityConfig configures metrics and logging.
type ObservabilityConfig struct {
	MetricsAddr string `yaml:"metricsAddr" env:"RIVULET_METRICS_ADDR"`
	LogLevel    string `yaml:"logLevel" env:"RIVULET_LOG_LEVEL"`
	LogFormat   string `yaml:"logFormat" env:"RIVULET_LOG_FORMAT"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Kafka: KafkaConfig{
			ClientID: "rivuletd",
		},
		Discovery: DiscoveryConfig{
			RefreshIntervalMs: 10000, // 10s
		},
		Observability: ObservabilityConfig{
			MetricsAddr: ":9090",
			LogLevel:    "info",
			LogFormat:   "json",
		},
	}
}

// Load returns the default configuration with environment overrides applied.
func Load() (*Config, error) {
	cfg := Default()
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath reads a YAML configuration file, applies environment
// overrides on top, and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("RIVULET_ADVERTISED_ADDR"); v != "" {
		c.Node.AdvertisedAddr = v
	}
	if v := os.Getenv("RIVULET_KAFKA_SEED_BROKERS"); v != "" {
		brokers := strings.Split(v, ",")
		for i := range brokers {
			brokers[i] = strings.TrimSpace(brokers[i])
		}
		c.Kafka.SeedBrokers = brokers
	}
	if v := os.Getenv("RIVULET_KAFKA_CLIENT_ID"); v != "" {
		c.Kafka.ClientID = v
	}
	if v := os.Getenv("RIVULET_DISCOVERY_GROUP"); v != "" {
		c.Discovery.Group = v
	}
	if v := os.Getenv("RIVULET_DISCOVERY_REFRESH_INTERVAL_MS"); v != "" {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Discovery.RefreshIntervalMs = ms
		}
	}
	if v := os.Getenv("RIVULET_METRICS_ADDR"); v != "" {
		c.Observability.MetricsAddr = v
	}
	if v := os.Getenv("RIVULET_LOG_LEVEL"); v != "" {
		c.Observability.LogLevel = v
	}
	if v := os.Getenv("RIVULET_LOG_FORMAT"); v != "" {
		c.Observability.LogFormat = v
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Node.AdvertisedAddr != "" {
		if _, _, err := net.SplitHostPort(c.Node.AdvertisedAddr); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidAdvertisedAddr, c.Node.AdvertisedAddr)
		}
	}

	seen := make(map[string]struct{}, len(c.Stores))
	for _, store := range c.Stores {
		if store.Name == "" || store.SourceTopic == "" {
			return fmt.Errorf("%w: name and sourceTopic are required (name=%q)", ErrInvalidStore, store.Name)
		}
		if _, dup := seen[store.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateStore, store.Name)
		}
		seen[store.Name] = struct{}{}
	}

	if c.Discovery.RefreshIntervalMs <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRefresh, c.Discovery.RefreshIntervalMs)
	}
	return nil
}
