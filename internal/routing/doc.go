// Package routing is the partition-routing and metadata registry that lets
// any node in a rivulet cluster answer which host owns the data for a store
// and key, and which hosts hold standby copies.
//
// The Registry ingests a full assignment snapshot after every rebalance
// (active and standby topic-partitions per host, plus per-topic partition
// counts) and serves store-level and key-level ownership queries against it.
// Each update builds a complete new snapshot off to the side and publishes
// it with a single atomic pointer store, so concurrent readers always see
// either the old snapshot or the new one, never a mix. Snapshot contents
// are immutable once published; collections handed to callers are copies.
package routing
