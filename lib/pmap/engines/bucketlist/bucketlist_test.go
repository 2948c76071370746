package bucketlist

import (
	"testing"

	"github.com/ValentinKolb/pMap/lib/pmap"
)

// newImpl creates a map and returns the concrete type for white-box checks
func newImpl(opts *Options[int]) *mapImpl[string, int] {
	return New[string](opts).(*mapImpl[string, int])
}

func TestBucketSharing(t *testing.T) {
	m := newImpl(nil)

	// three distinct values over five keys
	m.Set("a", 10)
	m.Set("b", 10)
	m.Set("c", 20)
	m.Set("d", 20)
	m.Set("e", 30)

	if got := m.buckets.Len(); got != 3 {
		t.Errorf("Expected 3 buckets for 3 distinct values, got %d", got)
	}
	if m.index["a"] != m.index["b"] {
		t.Errorf("Keys with equal value should share one bucket")
	}
	if m.index["a"] == m.index["c"] {
		t.Errorf("Keys with different values should not share a bucket")
	}

	// merging the last key of a value removes its bucket
	m.Set("e", 10)
	if got := m.buckets.Len(); got != 2 {
		t.Errorf("Expected 2 buckets after merge, got %d", got)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
}

func TestStepUsesAdjacentBucket(t *testing.T) {
	m := newImpl(nil)

	m.Set("a", 5)
	m.Set("b", 6)

	// a joins b's existing bucket
	m.Increment("a")
	if got := m.buckets.Len(); got != 1 {
		t.Errorf("Expected 1 bucket after merge step, got %d", got)
	}
	if m.index["a"] != m.index["b"] {
		t.Errorf("Stepped key should have merged into the adjacent bucket")
	}

	// b leaves into a fresh bucket, the shared one survives
	m.Increment("b")
	if got := m.buckets.Len(); got != 2 {
		t.Errorf("Expected 2 buckets after split step, got %d", got)
	}

	// front of a max-map is the highest value
	if front := m.buckets.Front(); front.Value != 7 {
		t.Errorf("Expected front bucket value 7, got %d", front.Value)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
}

func TestStepWithFractionalValues(t *testing.T) {
	// float priorities set to fractional values break the dense spacing a
	// unit step usually sees, so the step must scan past the neighbor
	m := New[string](&Options[float64]{Compare: pmap.Greater[float64]()}).(*mapImpl[string, float64])

	m.Set("a", 1.0)
	m.Set("b", 1.5)
	m.Set("c", 2.0)

	// 1.0 -> 2.0 crosses the 1.5 bucket and merges with c
	m.Increment("a")
	if got, _ := m.Get("a"); got != 2.0 {
		t.Errorf("Expected value 2.0 after increment, got %v", got)
	}
	if m.index["a"] != m.index["c"] {
		t.Errorf("Incremented key should share the existing bucket of its target value")
	}
	if front := m.buckets.Front(); front.Value != 2.0 {
		t.Errorf("Expected front bucket value 2.0, got %v", front.Value)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}

	// 1.5 -> 2.5 splices a fresh bucket past the shared front one
	m.Increment("b")
	if front := m.buckets.Front(); front.Value != 2.5 {
		t.Errorf("Expected front bucket value 2.5, got %v", front.Value)
	}

	// 2.0 -> 1.0 steps down across the gap left by b
	m.Decrement("c")
	if back := m.buckets.Back(); back.Value != 1.0 {
		t.Errorf("Expected back bucket value 1.0, got %v", back.Value)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
}

func TestStepVacatesEmptyBucket(t *testing.T) {
	m := newImpl(nil)

	m.Set("only", 3)
	m.Increment("only")

	if got := m.buckets.Len(); got != 1 {
		t.Errorf("Vacated bucket should be removed, got %d buckets", got)
	}
	if got, _ := m.Get("only"); got != 4 {
		t.Errorf("Expected value 4, got %d", got)
	}
}

func TestDefaultPlacementMaxMap(t *testing.T) {
	// max-map: the zero default is below every counted value, so auto-inserts
	// land at the back of the sequence
	m := newImpl(nil)
	m.Set("high", 100)
	m.Set("mid", 50)

	m.Increment("fresh")
	if back := m.buckets.Back(); back.Value != 1 {
		t.Errorf("Expected fresh key at the back with value 1, got %d", back.Value)
	}
	if front := m.buckets.Front(); front.Value != 100 {
		t.Errorf("Expected front value 100, got %d", front.Value)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
}

func TestDefaultPlacementMinMap(t *testing.T) {
	m := newImpl(&Options[int]{Compare: pmap.Less[int]()})
	if !m.ascending {
		t.Fatalf("Less comparator should be detected as ascending")
	}

	m.Set("a", 5)
	m.Set("b", 9)

	// zero default is the new extreme of a min-map
	m.GetOrDefault("fresh")
	if front := m.buckets.Front(); front.Value != 0 {
		t.Errorf("Expected default value 0 at the front of a min-map, got %d", front.Value)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
}

func TestCustomDefault(t *testing.T) {
	m := newImpl(&Options[int]{Compare: pmap.Greater[int](), Default: 10})

	if got := m.GetOrDefault("fresh"); got != 10 {
		t.Errorf("Expected configured default 10, got %d", got)
	}
	m.Increment("stepped")
	if got, _ := m.Get("stepped"); got != 11 {
		t.Errorf("Expected 11 after increment from default 10, got %d", got)
	}
}

func TestSetSameValueKeepsBucket(t *testing.T) {
	m := newImpl(nil)

	m.Set("a", 7)
	before := m.index["a"]
	m.Set("a", 7)
	if m.index["a"] != before {
		t.Errorf("Setting the current value should not move the key")
	}
	if got := m.buckets.Len(); got != 1 {
		t.Errorf("Expected 1 bucket, got %d", got)
	}
}

func TestGetInfo(t *testing.T) {
	m := newImpl(nil)
	for i, key := range []string{"a", "b", "c", "d"} {
		m.Set(key, i%2)
	}

	info := m.GetInfo()
	if info.Impl != pmap.ImplBucketList {
		t.Errorf("Expected impl %v, got %v", pmap.ImplBucketList, info.Impl)
	}
	if info.Keys != 4 {
		t.Errorf("Expected 4 keys, got %d", info.Keys)
	}
	if info.Buckets != 2 {
		t.Errorf("Expected 2 buckets, got %d", info.Buckets)
	}
	if len(info.SupportedFeatures) == 0 {
		t.Errorf("Expected supported features to be listed")
	}
	if info.Metadata == nil {
		t.Errorf("Expected implementation metadata")
	}
}
