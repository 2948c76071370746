package mapheap

import (
	"container/heap"
	"fmt"

	"github.com/ValentinKolb/pMap/lib/pmap"
	"github.com/ValentinKolb/pMap/lib/pmap/util"
)

// --------------------------------------------------------------------------
// Core map heap structure
// --------------------------------------------------------------------------

// item represents one key in the heap with its current priority
// and its position in the heap slice
type item[K comparable, V pmap.Numeric] struct {
	key   K
	value V
	index int // Index in the heap, maintained by the heap package
}

// heapState is the binary heap over all items, ordered by the configured
// comparator. It implements heap.Interface; all access goes through the
// container/heap package functions.
type heapState[K comparable, V pmap.Numeric] struct {
	items []*item[K, V]
	cmp   pmap.Compare[V]
}

// Len returns the number of items in the heap (part of heap.Interface)
func (h *heapState[K, V]) Len() int { return len(h.items) }

// Less compares items by priority (part of heap.Interface)
func (h *heapState[K, V]) Less(i, j int) bool {
	return h.cmp(h.items[i].value, h.items[j].value)
}

// Swap exchanges items at positions i and j (part of heap.Interface)
func (h *heapState[K, V]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].index = i
	h.items[j].index = j
}

// Push adds an item to the heap (part of heap.Interface)
func (h *heapState[K, V]) Push(x interface{}) {
	it := x.(*item[K, V])
	it.index = len(h.items)
	h.items = append(h.items, it)
}

// Pop removes and returns the last item (part of heap.Interface)
func (h *heapState[K, V]) Pop() interface{} {
	old := h.items
	n := len(old)
	it := old[n-1]
	old[n-1] = nil  // Avoid memory leak
	it.index = -1   // For safety
	h.items = old[:n-1]
	return it
}

// mapImpl implements pmap.Map as a binary heap combined with a key index.
// The extreme priority sits at the heap root, giving O(1) Top and O(log n)
// for every mutation - including unit steps, which is the trade-off against
// the bucket list engine this implementation exists to make measurable.
type mapImpl[K comparable, V pmap.Numeric] struct {
	heap  *heapState[K, V]
	index map[K]*item[K, V] // Map for O(1) access by key
	def   V
}

// Options configures a map heap during initialization
type Options[V pmap.Numeric] struct {
	Compare pmap.Compare[V] // Ordering of priorities (nil = pmap.Greater, a max-map)
	Default V               // Priority given to keys on first touch (zero value if unset)
}

// DefaultOptions returns the default map heap options: a max-map with a
// zero default value.
func DefaultOptions[V pmap.Numeric]() *Options[V] {
	return &Options[V]{Compare: pmap.Greater[V]()}
}

// New creates a new map heap priority map with the specified options
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

	return &mapImpl[K, V]{
		heap:  &heapState[K, V]{items: make([]*item[K, V], 0), cmp: cmp},
		index: make(map[K]*item[K, V]),
		def:   opts.Default,
	}
}

// --------------------------------------------------------------------------
// Core Map Interface Methods - Read Operations
// --------------------------------------------------------------------------

// Get returns the priority of key, reporting an absent key with
// pmap.RetCKeyNotFound. It never auto-inserts.
func (m *mapImpl[K, V]) Get(key K) (V, error) {
	it, ok := m.index[key]
	if !ok {
		var zero V
		return zero, pmap.NewError(pmap.RetCKeyNotFound, fmt.Sprintf("key %v not found", key))
	}
	return it.value, nil
}

// GetOrDefault returns the priority of key, inserting the key with the
// default value first if it is absent.
func (m *mapImpl[K, V]) GetOrDefault(key K) V {
	return m.ensure(key).value
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

// Top returns the extreme priority and one key holding it. Among several
// keys with equal extreme priority the choice is implementation-defined.
func (m *mapImpl[K, V]) Top() (K, V, error) {
	if len(m.heap.items) == 0 {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, pmap.NewError(pmap.RetCEmptyMap, "top on empty priority map")
	}
	root := m.heap.items[0]
	return root.key, root.value, nil
}

// Range calls fn for every key-value pair until fn returns false. The
// iteration order is NOT priority order; this implementation does not
// advertise pmap.FeatureRange.
func (m *mapImpl[K, V]) Range(fn func(key K, value V) bool) {
	for _, it := range m.heap.items {
		if !fn(it.key, it.value) {
			return
		}
	}
}

// --------------------------------------------------------------------------
// Core Map Interface Methods - Write Operations
// --------------------------------------------------------------------------

// ensure returns the item of key, inserting the key with the default value
// first if it is absent.
func (m *mapImpl[K, V]) ensure(key K) *item[K, V] {
	if it, ok := m.index[key]; ok {
		return it
	}
	it := &item[K, V]{key: key, value: m.def}
	heap.Push(m.heap, it)
	m.index[key] = it
	return it
}

// Set moves key to the given priority, inserting it first if absent.
func (m *mapImpl[K, V]) Set(key K, value V) {
	it := m.ensure(key)
	if it.value == value {
		return
	}
	it.value = value
	heap.Fix(m.heap, it.index)
}

// Increment raises the priority of key by one, inserting it first if absent.
func (m *mapImpl[K, V]) Increment(key K) {
	it := m.ensure(key)
	it.value++
	heap.Fix(m.heap, it.index)
}

// Decrement lowers the priority of key by one, inserting it first if absent.
func (m *mapImpl[K, V]) Decrement(key K) {
	it := m.ensure(key)
	it.value--
	heap.Fix(m.heap, it.index)
}

// Pop removes and returns what Top would return.
func (m *mapImpl[K, V]) Pop() (K, V, error) {
	if len(m.heap.items) == 0 {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, pmap.NewError(pmap.RetCEmptyMap, "pop on empty priority map")
	}
	it := heap.Pop(m.heap).(*item[K, V])
	delete(m.index, it.key)
	return it.key, it.value, nil
}

// Erase removes key wherever it sits and reports whether it was present.
func (m *mapImpl[K, V]) Erase(key K) bool {
	it, ok := m.index[key]
	if !ok {
		return false
	}
	heap.Remove(m.heap, it.index)
	delete(m.index, key)
	return true
}

// --------------------------------------------------------------------------
// Map Interface Implementation - Features and Metadata
// --------------------------------------------------------------------------

// GetInfo returns statistics about the map
func (m *mapImpl[K, V]) GetInfo() pmap.Info {
	// count keys per distinct priority to report the same occupancy shape
	// the bucket list engine reports
	counts := make(map[V]int, len(m.heap.items))
	for _, it := range m.heap.items {
		counts[it.value]++
	}
	occupancy := make([]float64, 0, len(counts))
	for _, n := range counts {
		occupancy = append(occupancy, float64(n))
	}

	meta := &struct {
		ValueOccupancy util.Stats `json:"value_occupancy"`
	}{
		ValueOccupancy: util.NewStats(occupancy),
	}

	return pmap.Info{
		Keys:    len(m.index),
		Buckets: len(counts),
		Impl:    pmap.ImplMapHeap,
		SupportedFeatures: []pmap.Feature{
			pmap.FeatureGet, pmap.FeatureSet, pmap.FeatureStep,
			pmap.FeatureTop, pmap.FeaturePop, pmap.FeatureErase,
			pmap.FeatureValidate,
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
		pmap.FeatureValidate
	return supportedFeatures&feature == feature
}

// Validate checks the heap property and the key<->item index consistency.
func (m *mapImpl[K, V]) Validate() error {
	for i, it := range m.heap.items {
		if it.index != i {
			return fmt.Errorf("item %v records index %d, sits at %d", it.key, it.index, i)
		}
		parent := (i - 1) / 2
		if i > 0 && m.heap.cmp(it.value, m.heap.items[parent].value) {
			return fmt.Errorf("heap property violated between %v and parent %v", it.key, m.heap.items[parent].key)
		}
		indexed, ok := m.index[it.key]
		if !ok {
			return fmt.Errorf("heap item %v missing from key index", it.key)
		}
		if indexed != it {
			return fmt.Errorf("key index for %v references a different item", it.key)
		}
	}
	if len(m.index) != len(m.heap.items) {
		return fmt.Errorf("key index holds %d keys, heap holds %d items", len(m.index), len(m.heap.items))
	}
	return nil
}
