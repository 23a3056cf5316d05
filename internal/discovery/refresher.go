package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/rivulet-io/rivulet/internal/logging"
	"github.com/rivulet-io/rivulet/internal/routing"
)

// Updater is the write side of the routing registry. Both routing.Registry
// and routing.InstrumentedRegistry satisfy it.
type Updater interface {
	Update(activeByHost, standbyByHost map[routing.HostInfo][]routing.TopicPartition, partitionCounts map[string]int32)
}

// RefresherConfig configures the periodic assignment refresh.
type RefresherConfig struct {
	// Topics are the source topics whose partition counts govern routing,
	// typically topology.Index.SourceTopics().
	Topics []string

	// Interval between refreshes.
	Interval time.Duration

	// Logger for refresh events.
	Logger *logging.Logger
}

// Refresher periodically combines an AssignmentSource and a
// PartitionCountSource into registry updates.
type Refresher struct {
	assignments AssignmentSource
	counts      PartitionCountSource
	registry    Updater
	topics      []string
	interval    time.Duration
	logger      *logging.Logger
}

// NewRefresher creates a refresher pushing into the given registry.
func NewRefresher(assignments AssignmentSource, counts PartitionCountSource, registry Updater, cfg RefresherConfig) *Refresher {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Refresher{
		assignments: assignments,
		counts:      counts,
		registry:    registry,
		topics:      cfg.Topics,
		interval:    interval,
		logger:      logger.With(map[string]any{"component": "discovery"}),
	}
}

// RefreshOnce fetches partition counts and assignments and installs them
// into the registry. On any fetch error the registry keeps its previous
// snapshot.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	counts, err := r.counts.PartitionCounts(ctx, r.topics)
	if err != nil {
		return fmt.Errorf("discovery: fetch partition counts: %w", err)
	}

	assignment, err := r.assignments.Assignments(ctx)
	if err != nil {
		return fmt.Errorf("discovery: fetch assignments: %w", err)
	}

	r.registry.Update(assignment.Active, assignment.Standby, counts)
	return nil
}

// Run refreshes immediately and then on every interval tick until ctx is
// canceled. Individual refresh failures are logged and retried on the next
// tick; the previous snapshot stays in place meanwhile.
func (r *Refresher) Run(ctx context.Context) error {
	if err := r.RefreshOnce(ctx); err != nil {
		r.logger.Warnf("initial refresh failed", map[string]any{"error": err.Error()})
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.RefreshOnce(ctx); err != nil {
				r.logger.Warnf("refresh failed", map[string]any{"error": err.Error()})
			}
		}
	}
}
