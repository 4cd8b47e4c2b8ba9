// Package board holds partitioned schedule state: a mapping from partition
// key (one key per schedule table) to its ordered entry list.
//
// Its central guarantee is identity stability. A write to one partition
// installs a new top-level mapping and a new list for that partition only;
// every other partition keeps the exact slice value it had, so a consumer
// that compares slice identity can skip recomputation for partitions the
// write did not touch. Reads are lock-free snapshot loads. Writes to the
// same key are serialized and their events delivered in commit order;
// writes to different keys proceed independently.
package board

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

const numStripes = 64

// Store is a partitioned entry-list store. E is the entry type; consumers
// that mutate entries in place should use a pointer type for E and confine
// mutation to Update callbacks.
type Store[E any] struct {
	snapshot atomic.Pointer[map[string][]E]
	stripes  [numStripes]sync.Mutex
	hub      *hub[E]
	logger   *zap.Logger
}

// New builds a store seeded with the given partitions and starts its watch
// hub. Seed lists are copied, so the caller keeps no write access to the
// store's state. The returned stop function tears the hub down, as does
// cancellation of ctx; Get and the write operations stay usable after
// teardown, only event delivery stops.
func New[E any](
	ctx context.Context,
	cfg Config,
	seed map[string][]E,
	logger *zap.Logger,
) (*Store[E], func()) {
	if logger == nil {
		logger = zap.NewNop()
	}
	snap := make(map[string][]E, len(seed))
	for key, entries := range seed {
		cp := make([]E, len(entries))
		copy(cp, entries)
		snap[key] = cp
	}
	s := &Store[E]{logger: logger}
	s.snapshot.Store(&snap)
	var stop func()
	s.hub, stop = newHub[E](ctx, cfg.normalized(), logger)
	return s, stop
}

// Get returns the current list under key, or nil when the partition does
// not exist. While no write touches key, successive calls return the
// identical slice; writes to other keys never change what Get(key)
// returns.
func (s *Store[E]) Get(key string) []E {
	return (*s.snapshot.Load())[key]
}

// Keys returns the current partition keys, in no particular order.
func (s *Store[E]) Keys() []string {
	snap := *s.snapshot.Load()
	keys := make([]string, 0, len(snap))
	for key := range snap {
		keys = append(keys, key)
	}
	return keys
}

// Update replaces the list under key with up(current). The updater
// receives a fresh copy of the current list, free to mutate or to swap
// for a different one; what it returns becomes the partition's new list
// under a new top-level mapping that shares every other partition's
// slice. A nil result still commits, as the empty list, so updating an
// absent key creates the partition.
//
// Updates to the same key are serialized. Under write contention across
// keys the updater may run more than once before its result commits, so
// it must be a pure function of its argument.
func (s *Store[E]) Update(key string, up func([]E) []E) {
	s.commit(key, OpReplace, up)
}

// Append adds entry at the end of key's list, creating the partition if
// needed.
func (s *Store[E]) Append(key string, entry E) {
	s.commit(key, OpAppend, func(entries []E) []E {
		return append(entries, entry)
	})
}

// Remove drops every entry of key's list matching drop.
func (s *Store[E]) Remove(key string, drop func(E) bool) {
	s.commit(key, OpRemove, func(entries []E) []E {
		kept := entries[:0]
		for _, e := range entries {
			if !drop(e) {
				kept = append(kept, e)
			}
		}
		return kept
	})
}

// Watch subscribes to key's committed writes. Events for one key arrive
// in commit order; a slow consumer loses events rather than stalling
// writers, and can always re-read via Get. The cancel func unregisters
// the watcher; the channel is never closed.
func (s *Store[E]) Watch(key string) (<-chan Event[E], func()) {
	return s.hub.watch(key)
}

// commit runs the read-copy-update cycle for one key and publishes the
// resulting event. The key's stripe lock serializes same-key writers and
// keeps publish order aligned with commit order; the CAS install loop
// resolves races with writers on other stripes.
func (s *Store[E]) commit(key string, op Op, up func([]E) []E) {
	stripe := &s.stripes[indexByHash(key, numStripes)]
	stripe.Lock()
	defer stripe.Unlock()

	var entries []E
	for {
		cur := s.snapshot.Load()
		next := make(map[string][]E, len(*cur)+1)
		for k, v := range *cur {
			next[k] = v
		}
		entries = up(copyEntries((*cur)[key]))
		if entries == nil {
			entries = []E{}
		}
		next[key] = entries
		if s.snapshot.CompareAndSwap(cur, &next) {
			break
		}
	}
	s.hub.publish(Event[E]{Key: key, Op: op, Entries: entries, At: committedNow()})
}

func copyEntries[E any](entries []E) []E {
	cp := make([]E, len(entries))
	copy(cp, entries)
	return cp
}
