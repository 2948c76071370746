package counter

import (
	"github.com/ValentinKolb/pMap/lib/pmap"
	"github.com/ValentinKolb/pMap/lib/pmap/engines/bucketlist"
)

// Entry is one key together with its occurrence count.
type Entry[K comparable] struct {
	Key   K   `json:"key"`
	Count int `json:"count"`
}

// MapFactory creates the max-ordered priority map backing a counter.
type MapFactory[K comparable] func() pmap.Map[K, int]

// Counter counts occurrences of keys and keeps the most common key
// accessible in O(1). It is a thin layer over a max-ordered priority map:
// counts form a dense band of small values, so every count change is a unit
// step of the underlying map.
//
// Unlike the raw map, a counter never holds a key at count zero: Remove
// drops the key entirely once its last occurrence is gone.
//
// Thread-safety: single-writer, like the map underneath.
type Counter[K comparable] struct {
	m pmap.Map[K, int]
}

// New creates a counter backed by the bucket list engine.
func New[K comparable]() *Counter[K] {
	return NewWithMap[K](func() pmap.Map[K, int] {
		return bucketlist.New[K](bucketlist.DefaultOptions[int]())
	})
}

// NewWithMap creates a counter backed by the map the factory returns. The
// map must order values largest-first and support ordered iteration
// (pmap.FeatureRange), otherwise TopN and Range could not honor their
// most-common-first contract. NewWithMap panics on a map without it.
func NewWithMap[K comparable](factory MapFactory[K]) *Counter[K] {
	m := factory()
	if !m.SupportsFeature(pmap.FeatureRange) {
		panic("counter: backing map does not support ordered iteration")
	}
	return &Counter[K]{m: m}
}

// Add records one occurrence of key and returns its new count.
func (c *Counter[K]) Add(key K) int {
	c.m.Increment(key)
	return c.m.GetOrDefault(key)
}

// AddN records n occurrences of key and returns its new count. A
// non-positive n leaves the counter unchanged.
func (c *Counter[K]) AddN(key K, n int) int {
	if n <= 0 {
		return c.Count(key)
	}
	count := c.m.GetOrDefault(key) + n
	c.m.Set(key, count)
	return count
}

// Remove discards one occurrence of key and returns its new count. The key
// is dropped entirely when the count reaches zero. Removing an absent key is
// a no-op and returns zero.
func (c *Counter[K]) Remove(key K) int {
	count, err := c.m.Get(key)
	if err != nil {
		return 0
	}
	if count <= 1 {
		c.m.Erase(key)
		return 0
	}
	c.m.Decrement(key)
	return count - 1
}

// Erase drops key regardless of its count and reports whether it was present.
func (c *Counter[K]) Erase(key K) bool {
	return c.m.Erase(key)
}

// Count returns the occurrence count of key, zero if absent. No side effects.
func (c *Counter[K]) Count(key K) int {
	count, err := c.m.Get(key)
	if err != nil {
		return 0
	}
	return count
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int {
	return c.m.Size()
}

// MostCommon returns the key with the highest count. Ties are broken
// arbitrarily. The second return value is false if the counter is empty.
func (c *Counter[K]) MostCommon() (Entry[K], bool) {
	key, count, err := c.m.Top()
	if err != nil {
		return Entry[K]{}, false
	}
	return Entry[K]{Key: key, Count: count}, true
}

// TopN returns up to n entries ordered by descending count. The order of
// keys with equal counts is not specified.
func (c *Counter[K]) TopN(n int) []Entry[K] {
	if n <= 0 {
		return nil
	}
	entries := make([]Entry[K], 0, n)
	c.m.Range(func(key K, count int) bool {
		entries = append(entries, Entry[K]{Key: key, Count: count})
		return len(entries) < n
	})
	return entries
}

// Range calls fn for every key-count pair, most common first, until fn
// returns false.
func (c *Counter[K]) Range(fn func(key K, count int) bool) {
	c.m.Range(fn)
}
