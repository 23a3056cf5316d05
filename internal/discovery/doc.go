// Package discovery feeds the routing registry from the outside world.
//
// The registry itself performs no I/O: it only ingests full assignment
// snapshots. This package implements the collaborators that produce those
// snapshots: a Kafka-backed partition-count source (kadm topic listing), an
// assignment source deriving active ownership from a consumer group's
// member assignments, and a Refresher that periodically combines both into
// Registry.Update calls. A processing engine embedding rivulet can replace
// either source with its own implementation of the interfaces.
package discovery
