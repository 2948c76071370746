package mapheap

import (
	"testing"

	"github.com/ValentinKolb/pMap/lib/pmap"
)

// newImpl creates a map and returns the concrete type for white-box checks
func newImpl(opts *Options[int]) *mapImpl[string, int] {
	return New[string](opts).(*mapImpl[string, int])
}

// TestHeapRootIsExtreme tests that the extreme priority sits at the root
func TestHeapRootIsExtreme(t *testing.T) {
	m := newImpl(nil)

	m.Set("a", 100)
	m.Set("b", 200)
	m.Set("c", 50)

	if len(m.heap.items) != 3 {
		t.Errorf("Heap should have 3 items, but has %d", len(m.heap.items))
	}

	// max-map, so the highest value should be the root
	root := m.heap.items[0]
	if root.key != "b" || root.value != 200 {
		t.Errorf("Expected root (b,200), got (%s,%d)", root.key, root.value)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
}

// TestFixAfterUpdate tests that updates restore the heap property
func TestFixAfterUpdate(t *testing.T) {
	m := newImpl(nil)

	m.Set("a", 100)
	m.Set("b", 200)

	// Raise a above b
	m.Set("a", 300)
	key, value, err := m.Top()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if key != "a" || value != 300 {
		t.Errorf("Expected top (a,300), got (%s,%d)", key, value)
	}

	// Lower a below b again
	m.Set("a", 50)
	key, value, _ = m.Top()
	if key != "b" || value != 200 {
		t.Errorf("Expected top (b,200), got (%s,%d)", key, value)
	}

	if err := m.Validate(); err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
}

// TestItemIndexMaintained tests that item positions stay in sync with the
// heap slice across mutations
func TestItemIndexMaintained(t *testing.T) {
	m := newImpl(nil)

	keys := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i, key := range keys {
		m.Set(key, (i*37)%11)
	}

	m.Erase("c")
	m.Increment("f")
	m.Decrement("a")
	m.Pop()

	for i, it := range m.heap.items {
		if it.index != i {
			t.Errorf("Item %s records index %d but sits at %d", it.key, it.index, i)
		}
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
}

// TestRangeNotOrdered documents that this engine does not advertise
// priority-ordered iteration
func TestRangeNotOrdered(t *testing.T) {
	m := newImpl(nil)

	if m.SupportsFeature(pmap.FeatureRange) {
		t.Error("Heap engine must not advertise priority-ordered iteration")
	}

	m.Set("a", 1)
	m.Set("b", 2)

	// Range still visits every pair
	visited := make(map[string]int)
	m.Range(func(key string, value int) bool {
		visited[key] = value
		return true
	})
	if len(visited) != 2 || visited["a"] != 1 || visited["b"] != 2 {
		t.Errorf("Range should visit every pair, got %v", visited)
	}
}

// TestGetInfo tests the reported metadata
func TestGetInfo(t *testing.T) {
	m := newImpl(nil)
	for i, key := range []string{"a", "b", "c", "d"} {
		m.Set(key, i%2)
	}

	info := m.GetInfo()
	if info.Impl != pmap.ImplMapHeap {
		t.Errorf("Expected impl %v, got %v", pmap.ImplMapHeap, info.Impl)
	}
	if info.Keys != 4 {
		t.Errorf("Expected 4 keys, got %d", info.Keys)
	}
	if info.Buckets != 2 {
		t.Errorf("Expected 2 distinct values, got %d", info.Buckets)
	}
}
