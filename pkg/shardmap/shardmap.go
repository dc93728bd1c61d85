// Package shardmap provides a map partitioned into independently locked
// shards. Writers touching keys in different shards never contend; writers
// touching the same key serialize on that key's shard.
package shardmap

import (
	"cmp"
	"hash/maphash"
	"slices"
	"sync"
)

// DefaultShardCount is used when a non-positive shard count is requested.
const DefaultShardCount = 100

// Entry is one key/value pair of a Snapshot.
type Entry[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

type shard[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]V
}

// Map is a concurrent map with a fixed number of shards.
type Map[K cmp.Ordered, V any] struct {
	shards []shard[K, V]
	seed   maphash.Seed
}

// New creates a Map with shardCount shards.
func New[K cmp.Ordered, V any](shardCount int) *Map[K, V] {
	if shardCount <= 0 {
		shardCount = DefaultShardCount
	}
	m := &Map[K, V]{
		shards: make([]shard[K, V], shardCount),
		seed:   maphash.MakeSeed(),
	}
	for i := range m.shards {
		m.shards[i].m = make(map[K]V)
	}
	return m
}

// ShardCount returns the number of shards.
func (m *Map[K, V]) ShardCount() int {
	return len(m.shards)
}

func (m *Map[K, V]) shardIndex(key K) int {
	return int(maphash.Comparable(m.seed, key) % uint64(len(m.shards)))
}

// Access locks the shard owning key, hands fn a pointer to the key's value
// (the zero value if absent) and stores the result. The shard is unlocked
// when Access returns, including when fn panics.
func (m *Map[K, V]) Access(key K, fn func(v *V)) {
	s := &m.shards[m.shardIndex(key)]
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.m[key]
	fn(&v)
	s.m[key] = v
}

// Load returns the value stored for key.
func (m *Map[K, V]) Load(key K) (V, bool) {
	s := &m.shards[m.shardIndex(key)]
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok
}

// Erase removes key if present.
func (m *Map[K, V]) Erase(key K) {
	s := &m.shards[m.shardIndex(key)]
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}

// Len returns the number of keys across all shards.
func (m *Map[K, V]) Len() int {
	n := 0
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.Lock()
		n += len(s.m)
		s.mu.Unlock()
	}
	return n
}

// Snapshot copies every shard, locking them one at a time in ascending
// shard order, and returns the entries sorted by key. It is only
// consistent once all concurrent writers have finished.
func (m *Map[K, V]) Snapshot() []Entry[K, V] {
	var entries []Entry[K, V]
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.Lock()
		for k, v := range s.m {
			entries = append(entries, Entry[K, V]{Key: k, Value: v})
		}
		s.mu.Unlock()
	}
	slices.SortFunc(entries, func(a, b Entry[K, V]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return entries
}
