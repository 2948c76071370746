package bucketlist

import (
	"fmt"

	"github.com/ValentinKolb/pMap/lib/pmap"
	"github.com/ValentinKolb/pMap/lib/pmap/engines/bucketlist/internal"
	"github.com/ValentinKolb/pMap/lib/pmap/util"
)

// --------------------------------------------------------------------------
// Core bucket list structure
// --------------------------------------------------------------------------

// mapImpl implements pmap.Map as an ordered bucket index: a doubly-linked
// sequence of buckets, one per distinct priority value, kept sorted under the
// configured comparator, plus a key index holding a bucket pointer per key.
//
// The extreme bucket is always the front of the sequence, so Top and Pop are
// O(1). Both unit steps and arbitrary Sets scan bucket-by-bucket from the
// vacated position, bounded by the number of distinct values crossed, not by
// map size. When occupied values are dense a unit step crosses at most one
// bucket, making Increment and Decrement amortized O(1).
type mapImpl[K comparable, V pmap.Numeric] struct {
	cmp pmap.Compare[V] // defines "a sits before b"; front of the list is the extreme
	def V               // value given to auto-inserted keys

	// ascending is true for less-like comparators. It decides which end of
	// the sequence the default-insert scan starts from, since the default is
	// expected adjacent to one of the two extremes.
	ascending bool

	buckets *internal.List[K, V]
	index   map[K]*internal.Bucket[K, V]
}

// Options configures a bucket list map during initialization
type Options[V pmap.Numeric] struct {
	Compare pmap.Compare[V] // Ordering of priorities (nil = pmap.Greater, a max-map)
	Default V               // Priority given to keys on first touch (zero value if unset)
}

// DefaultOptions returns the default bucket list options: a max-map with a
// zero default value.
func DefaultOptions[V pmap.Numeric]() *Options[V] {
	return &Options[V]{Compare: pmap.Greater[V]()}
}

// New creates a new bucket list priority map with the specified options
// (optional).
//
// Thread-safety: the returned map is single-writer; see pmap.Map.
func New[K comparable, V pmap.Numeric](opts *Options[V]) pmap.Map[K, V] {
	if opts == nil {
		opts = DefaultOptions[V]()
	}
	cmp := opts.Compare
	if cmp == nil {
		cmp = pmap.Greater[V]()
	}

	var zero V
	return &mapImpl[K, V]{
		cmp:       cmp,
		def:       opts.Default,
		ascending: cmp(zero, zero+1),
		buckets:   internal.NewList[K, V](),
		index:     make(map[K]*internal.Bucket[K, V]),
	}
}

// --------------------------------------------------------------------------
// Core Map Interface Methods - Read Operations
// --------------------------------------------------------------------------

// Get returns the priority of key. An absent key is reported with
// pmap.RetCKeyNotFound and is never auto-inserted, so callers can tell
// "never inserted" from "present with the default value".
func (m *mapImpl[K, V]) Get(key K) (V, error) {
	b, ok := m.index[key]
	if !ok {
		var zero V
		return zero, pmap.NewError(pmap.RetCKeyNotFound, fmt.Sprintf("key %v not found", key))
	}
	return b.Value, nil
}

// GetOrDefault returns the priority of key, inserting the key with the
// default value first if it is absent.
func (m *mapImpl[K, V]) GetOrDefault(key K) V {
	return m.ensure(key).Value
}

// Contains reports whether key is present.
func (m *mapImpl[K, V]) Contains(key K) bool {
	_, ok := m.index[key]
	return ok
}

// Size returns the number of keys currently present.
func (m *mapImpl[K, V]) Size() int { return len(m.index) }

// Empty reports whether no keys are present.
func (m *mapImpl[K, V]) Empty() bool { return len(m.index) == 0 }

// Top returns the extreme priority and one arbitrary key holding it.
func (m *mapImpl[K, V]) Top() (K, V, error) {
	front := m.buckets.Front()
	if front == nil {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, pmap.NewError(pmap.RetCEmptyMap, "top on empty priority map")
	}
	return front.AnyKey(), front.Value, nil
}

// Range calls fn for every key-value pair in priority order, extreme first,
// until fn returns false. The order of keys within one bucket is not
// specified.
func (m *mapImpl[K, V]) Range(fn func(key K, value V) bool) {
	for b := m.buckets.Front(); b != nil; b = b.Next() {
		for k := range b.Members {
			if !fn(k, b.Value) {
				return
			}
		}
	}
}

// --------------------------------------------------------------------------
// Core Map Interface Methods - Write Operations
// --------------------------------------------------------------------------

// Set moves key to the given priority, inserting it with the default value
// first if it is absent. Setting the current priority is a no-op.
func (m *mapImpl[K, V]) Set(key K, value V) {
	m.move(m.ensure(key), key, value)
}

// Increment raises the priority of key by one, inserting it first if absent.
func (m *mapImpl[K, V]) Increment(key K) { m.step(key, true) }

// Decrement lowers the priority of key by one, inserting it first if absent.
func (m *mapImpl[K, V]) Decrement(key K) { m.step(key, false) }

// Pop removes and returns what Top would return.
func (m *mapImpl[K, V]) Pop() (K, V, error) {
	front := m.buckets.Front()
	if front == nil {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, pmap.NewError(pmap.RetCEmptyMap, "pop on empty priority map")
	}

	key := front.AnyKey()
	front.Delete(key)
	delete(m.index, key)
	if front.Len() == 0 {
		m.buckets.Remove(front)
	}
	return key, front.Value, nil
}

// Erase removes key wherever it sits and reports whether it was present.
func (m *mapImpl[K, V]) Erase(key K) bool {
	b, ok := m.index[key]
	if !ok {
		return false
	}

	b.Delete(key)
	delete(m.index, key)
	if b.Len() == 0 {
		m.buckets.Remove(b)
	}
	return true
}

// --------------------------------------------------------------------------
// Update and Search Algorithms
// --------------------------------------------------------------------------

// ensure returns the bucket of key, inserting the key with the default value
// first if it is absent.
//
// The insertion point for the default value is found by a linear scan from
// the end of the sequence the default is expected next to: the front for
// less-like comparators, the back for greater-like ones (for a counting map
// every occupied value is above the zero default, which therefore sits at
// the very back). The scan is expected short but not guaranteed O(1).
func (m *mapImpl[K, V]) ensure(key K) *internal.Bucket[K, V] {
	if b, ok := m.index[key]; ok {
		return b
	}

	var dst *internal.Bucket[K, V]
	if m.ascending {
		// scan towards the back
		b := m.buckets.Front()
		for b != nil && m.cmp(b.Value, m.def) {
			b = b.Next()
		}
		switch {
		case b != nil && b.Value == m.def:
			b.Add(key)
			dst = b
		case b != nil:
			dst = internal.NewBucket(m.def, key)
			m.buckets.InsertBefore(dst, b)
		default:
			dst = internal.NewBucket(m.def, key)
			m.buckets.PushBack(dst)
		}
	} else {
		// scan towards the front
		b := m.buckets.Back()
		for b != nil && m.cmp(m.def, b.Value) {
			b = b.Prev()
		}
		switch {
		case b != nil && b.Value == m.def:
			b.Add(key)
			dst = b
		case b != nil:
			dst = internal.NewBucket(m.def, key)
			m.buckets.InsertAfter(dst, b)
		default:
			dst = internal.NewBucket(m.def, key)
			m.buckets.PushFront(dst)
		}
	}

	m.index[key] = dst
	return dst
}

// step moves key by exactly one, inserting it first if absent. The scan in
// move starts at the bucket adjacent to the vacated one: with densely
// occupied values (integer counting, the common workload) a step by one can
// only merge into that neighbor or splice right next to the vacated bucket,
// so the scan ends after at most one comparison and the step is amortized
// O(1). Sparser spacing, such as fractional float priorities planted by Set,
// scans as far as the order requires and stays correct.
func (m *mapImpl[K, V]) step(key K, up bool) {
	old := m.ensure(key)
	newVal := old.Value
	if up {
		newVal++
	} else {
		newVal--
	}
	m.move(old, key, newVal)
}

// move relocates key from its current bucket old to the bucket for newVal,
// scanning linearly in the comparator-determined direction from the vacated
// position. The scan visits one bucket per distinct value strictly between
// the old and new value, so its cost is bounded by how far the value moves,
// not by the number of keys.
func (m *mapImpl[K, V]) move(old *internal.Bucket[K, V], key K, newVal V) {
	oldVal := old.Value
	if newVal == oldVal {
		return
	}

	old.Delete(key)

	var dst *internal.Bucket[K, V]
	if m.cmp(oldVal, newVal) {
		// scan towards the back until a bucket matches newVal or crosses past it
		b := old.Next()
		for b != nil && m.cmp(b.Value, newVal) {
			b = b.Next()
		}
		switch {
		case b != nil && b.Value == newVal:
			b.Add(key)
			dst = b
		case b != nil:
			dst = internal.NewBucket(newVal, key)
			m.buckets.InsertBefore(dst, b)
		default:
			dst = internal.NewBucket(newVal, key)
			m.buckets.PushBack(dst)
		}
	} else {
		// scan towards the front
		b := old.Prev()
		for b != nil && m.cmp(newVal, b.Value) {
			b = b.Prev()
		}
		switch {
		case b != nil && b.Value == newVal:
			b.Add(key)
			dst = b
		case b != nil:
			dst = internal.NewBucket(newVal, key)
			m.buckets.InsertAfter(dst, b)
		default:
			dst = internal.NewBucket(newVal, key)
			m.buckets.PushFront(dst)
		}
	}

	m.index[key] = dst
	if old.Len() == 0 {
		m.buckets.Remove(old)
	}
}

// --------------------------------------------------------------------------
// Map Interface Implementation - Features and Metadata
// --------------------------------------------------------------------------

// GetInfo returns statistics about the map
func (m *mapImpl[K, V]) GetInfo() pmap.Info {
	// occupancy per bucket, front to back
	occupancy := make([]float64, 0, m.buckets.Len())
	for b := m.buckets.Front(); b != nil; b = b.Next() {
		occupancy = append(occupancy, float64(b.Len()))
	}

	order := "descending"
	if m.ascending {
		order = "ascending"
	}

	// Metadata for this specific implementation
	meta := &struct {
		Order           string     `json:"order"`
		BucketOccupancy util.Stats `json:"bucket_occupancy"`
	}{
		Order:           order,
		BucketOccupancy: util.NewStats(occupancy),
	}

	return pmap.Info{
		Keys:    len(m.index),
		Buckets: m.buckets.Len(),
		Impl:    pmap.ImplBucketList,
		SupportedFeatures: []pmap.Feature{
			pmap.FeatureGet, pmap.FeatureSet, pmap.FeatureStep,
			pmap.FeatureTop, pmap.FeaturePop, pmap.FeatureErase,
			pmap.FeatureRange, pmap.FeatureValidate,
		},
		Metadata: meta,
	}
}

// SupportsFeature checks if this implementation supports a specific feature
func (m *mapImpl[K, V]) SupportsFeature(feature pmap.Feature) bool {
	supportedFeatures := pmap.FeatureGet |
		pmap.FeatureSet |
		pmap.FeatureStep |
		pmap.FeatureTop |
		pmap.FeaturePop |
		pmap.FeatureErase |
		pmap.FeatureRange |
		pmap.FeatureValidate
	return supportedFeatures&feature == feature
}

// Validate checks every structural invariant of the bucket index:
// the key<->bucket bijection, the absence of empty and duplicate-value
// buckets, and the sort order of the sequence under the comparator.
func (m *mapImpl[K, V]) Validate() error {
	members := 0
	for b := m.buckets.Front(); b != nil; b = b.Next() {
		if b.Len() == 0 {
			return fmt.Errorf("bucket with value %v has no members", b.Value)
		}
		if next := b.Next(); next != nil {
			if b.Value == next.Value {
				return fmt.Errorf("duplicate bucket value %v", b.Value)
			}
			if !m.cmp(b.Value, next.Value) {
				return fmt.Errorf("buckets out of order: %v before %v", b.Value, next.Value)
			}
		}
		for k := range b.Members {
			indexed, ok := m.index[k]
			if !ok {
				return fmt.Errorf("member key %v of bucket %v missing from key index", k, b.Value)
			}
			if indexed != b {
				return fmt.Errorf("key index for %v references bucket %v, member of bucket %v", k, indexed.Value, b.Value)
			}
		}
		members += b.Len()
	}

	if members != len(m.index) {
		return fmt.Errorf("key index holds %d keys, buckets hold %d members", len(m.index), members)
	}
	return nil
}
