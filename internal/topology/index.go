// Package topology holds the static mapping between state stores and the
// source topics that feed them.
//
// The index is built once, before any assignment update or query, and is
// read-only afterwards. Non-global stores are fed by exactly one source
// topic; this restriction is enforced at build time because the partition
// count of that single topic governs key routing. Global stores are fully
// replicated to every host and are never partition-routed.
package topology

import (
	"errors"
	"fmt"
	"sort"
)

// Common errors.
var (
	ErrEmptyStoreName = errors.New("topology: store name must not be empty")
	ErrEmptyTopicName = errors.New("topology: source topic must not be empty")
	ErrStoreExists    = errors.New("topology: store already declared")
)

type storeEntry struct {
	global      bool
	sourceTopic string
}

// Builder accumulates store declarations and produces an immutable Index.
type Builder struct {
	stores map[string]storeEntry
}

// NewBuilder creates an empty topology builder.
func NewBuilder() *Builder {
	return &Builder{stores: make(map[string]storeEntry)}
}

// AddStore declares a partitioned store fed by a single source topic.
func (b *Builder) AddStore(name, sourceTopic string) error {
	return b.add(name, sourceTopic, false)
}

// AddGlobalStore declares a store replicated in full to every host.
func (b *Builder) AddGlobalStore(name, sourceTopic string) error {
	return b.add(name, sourceTopic, true)
}

func (b *Builder) add(name, sourceTopic string, global bool) error {
	if name == "" {
		return ErrEmptyStoreName
	}
	if sourceTopic == "" {
		return fmt.Errorf("%w: store %q", ErrEmptyTopicName, name)
	}
	if _, ok := b.stores[name]; ok {
		return fmt.Errorf("%w: %q", ErrStoreExists, name)
	}
	b.stores[name] = storeEntry{global: global, sourceTopic: sourceTopic}
	return nil
}

// Build produces the immutable index from the declarations so far.
func (b *Builder) Build() *Index {
	stores := make(map[string]storeEntry, len(b.stores))
	byTopic := make(map[string][]string)
	var globals []string

	for name, entry := range b.stores {
		stores[name] = entry
		if entry.global {
			globals = append(globals, name)
			continue
		}
		byTopic[entry.sourceTopic] = append(byTopic[entry.sourceTopic], name)
	}

	sort.Strings(globals)
	for _, names := range byTopic {
		sort.Strings(names)
	}

	return &Index{stores: stores, byTopic: byTopic, globals: globals}
}

// Index answers store-topology queries. It is immutable and safe for
// concurrent use.
type Index struct {
	stores  map[string]storeEntry
	byTopic map[string][]string
	globals []string
}

// HasStore reports whether the store is known to the topology.
func (ix *Index) HasStore(name string) bool {
	_, ok := ix.stores[name]
	return ok
}

// IsGlobal reports whether the store is a global store. Unknown stores
// report false.
func (ix *Index) IsGlobal(name string) bool {
	return ix.stores[name].global
}

// SourceTopic returns the source topic feeding a non-global store. The
// second result is false for unknown or global stores.
func (ix *Index) SourceTopic(name string) (string, bool) {
	entry, ok := ix.stores[name]
	if !ok || entry.global {
		return "", false
	}
	return entry.sourceTopic, true
}

// StoresForTopic returns the non-global stores fed by the given topic,
// sorted by name. The returned slice is a copy.
func (ix *Index) StoresForTopic(topic string) []string {
	names := ix.byTopic[topic]
	if len(names) == 0 {
		return nil
	}
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// GlobalStores returns the names of all global stores, sorted. The returned
// slice is a copy.
func (ix *Index) GlobalStores() []string {
	if len(ix.globals) == 0 {
		return nil
	}
	out := make([]string, len(ix.globals))
	copy(out, ix.globals)
	return out
}

// SourceTopics returns every source topic feeding a non-global store,
// sorted. Useful for partition-count discovery.
func (ix *Index) SourceTopics() []string {
	topics := make([]string, 0, len(ix.byTopic))
	for topic := range ix.byTopic {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// Stores returns every declared store name, sorted.
func (ix *Index) Stores() []string {
	names := make([]string, 0, len(ix.stores))
	for name := range ix.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
