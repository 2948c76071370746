package testing

import (
	"math/rand"
	"sort"
	"strconv"
	"testing"

	"github.com/ValentinKolb/pMap/lib/pmap"
)

// MapFactory is a function that creates a new priority map instance with the
// given comparator. The suite instantiates maps over string keys and int
// priorities.
type MapFactory func(cmp pmap.Compare[int]) pmap.Map[string, int]

// RunMapTests runs a comprehensive test suite for a pmap.Map implementation.
func RunMapTests(t *testing.T, name string, factory MapFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Get&Set", func(t *testing.T) {
			testGetSet(t, factory(pmap.Greater[int]()))
		})

		t.Run("AutoInsert", func(t *testing.T) {
			testAutoInsert(t, factory(pmap.Greater[int]()))
		})

		t.Run("StepEquivalence", func(t *testing.T) {
			testStepEquivalence(t, factory(pmap.Greater[int]()))
		})

		t.Run("CountingScenario", func(t *testing.T) {
			testCountingScenario(t, factory(pmap.Greater[int]()))
		})

		t.Run("SetScenario", func(t *testing.T) {
			testSetScenario(t, factory(pmap.Greater[int]()))
		})

		t.Run("Erase", func(t *testing.T) {
			testErase(t, factory(pmap.Greater[int]()))
		})

		t.Run("PopDrain", func(t *testing.T) {
			testPopDrain(t, factory(pmap.Greater[int]()), false)
		})

		t.Run("PopDrain(min)", func(t *testing.T) {
			testPopDrain(t, factory(pmap.Less[int]()), true)
		})

		t.Run("TieBreak", func(t *testing.T) {
			testTieBreak(t, factory(pmap.Greater[int]()))
		})

		t.Run("Range", func(t *testing.T) {
			testRange(t, factory(pmap.Greater[int]()))
		})

		t.Run("MinMap", func(t *testing.T) {
			testMinMap(t, factory(pmap.Less[int]()))
		})

		t.Run("TopologicalSort", func(t *testing.T) {
			testTopologicalSort(t, factory(pmap.Less[int]()))
		})

		t.Run("RandomizedAgainstReference", func(t *testing.T) {
			testRandomizedAgainstReference(t, factory(pmap.Greater[int]()), false)
		})

		t.Run("RandomizedAgainstReference(min)", func(t *testing.T) {
			testRandomizedAgainstReference(t, factory(pmap.Less[int]()), true)
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// Checks if the map supports the specified feature
// Skip the test if it is not supported
func requireFeature(t testing.TB, m pmap.Map[string, int], feature pmap.Feature) {
	if !m.SupportsFeature(feature) {
		t.Skip()
	}
}

// validate runs the implementation's own consistency check where supported
func validate(t *testing.T, m pmap.Map[string, int]) {
	t.Helper()
	v, ok := m.(pmap.Validator)
	if !ok {
		return
	}
	if err := v.Validate(); err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testGetSet(t *testing.T, m pmap.Map[string, int]) {
	requireFeature(t, m, pmap.FeatureGet)
	requireFeature(t, m, pmap.FeatureSet)

	if !m.Empty() || m.Size() != 0 {
		t.Errorf("New map should be empty, got size %d", m.Size())
	}

	// an absent key must be reported as such, not defaulted
	_, err := m.Get("absent")
	if err == nil {
		t.Errorf("Expected error for absent key, got nil")
	}
	if !pmap.IsKeyNotFound(err) {
		t.Errorf("Expected KeyNotFound error, got %v", err)
	}

	// a failed Get must not have inserted anything
	if m.Contains("absent") || m.Size() != 0 {
		t.Errorf("Failed Get must not mutate the map")
	}

	m.Set("a", 5)
	got, err := m.Get("a")
	if err != nil {
		t.Errorf("Unexpected error after Set: %v", err)
	}
	if got != 5 {
		t.Errorf("Expected value 5, got %d", got)
	}

	// round trip over a spread of values, including re-sets
	for _, v := range []int{10, -3, 0, 7, 7, 100, -100} {
		m.Set("a", v)
		got, err = m.Get("a")
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		if got != v {
			t.Errorf("Expected value %d after Set, got %d", v, got)
		}
		validate(t, m)
	}

	if m.Size() != 1 {
		t.Errorf("Expected one key, got %d", m.Size())
	}

	// a key holding the default value is distinguishable from an absent one
	m.Set("b", 0)
	got, err = m.Get("b")
	if err != nil {
		t.Errorf("Key with value 0 must be reported present, got %v", err)
	}
	if got != 0 {
		t.Errorf("Expected value 0, got %d", got)
	}
}

func testAutoInsert(t *testing.T, m pmap.Map[string, int]) {
	requireFeature(t, m, pmap.FeatureGet)
	requireFeature(t, m, pmap.FeatureStep)

	// first touch creates the key with the default value
	if got := m.GetOrDefault("fresh"); got != 0 {
		t.Errorf("Expected default value 0 on first touch, got %d", got)
	}
	if !m.Contains("fresh") {
		t.Errorf("GetOrDefault must insert the key")
	}

	// step on an absent key inserts the default first, then steps
	m.Increment("inc")
	if got, _ := m.Get("inc"); got != 1 {
		t.Errorf("Increment on absent key should yield 1, got %d", got)
	}

	m.Decrement("dec")
	if got, _ := m.Get("dec"); got != -1 {
		t.Errorf("Decrement on absent key should yield -1, got %d", got)
	}

	validate(t, m)
}

func testStepEquivalence(t *testing.T, m pmap.Map[string, int]) {
	requireFeature(t, m, pmap.FeatureSet)
	requireFeature(t, m, pmap.FeatureStep)

	reference := make(map[string]int)
	rnd := rand.New(rand.NewSource(42))

	numOps := 2000
	for i := 0; i < numOps; i++ {
		key := "key-" + strconv.Itoa(rnd.Intn(20))

		switch i % 3 {
		case 0:
			m.Increment(key)
			reference[key]++
		case 1:
			m.Decrement(key)
			reference[key]--
		case 2:
			// set(k, get(k)+1) must be observably equivalent to a step
			m.Set(key, m.GetOrDefault(key)+1)
			reference[key]++
		}
	}

	for key, want := range reference {
		got, err := m.Get(key)
		if err != nil {
			t.Errorf("Key %s missing: %v", key, err)
			continue
		}
		if got != want {
			t.Errorf("Key %s: expected %d, got %d", key, want, got)
		}
	}

	if m.Size() != len(reference) {
		t.Errorf("Expected %d keys, got %d", len(reference), m.Size())
	}

	validate(t, m)
}

func testCountingScenario(t *testing.T, m pmap.Map[string, int]) {
	requireFeature(t, m, pmap.FeatureStep)
	requireFeature(t, m, pmap.FeatureTop)

	// count 7,7,7,11,11
	for i := 0; i < 3; i++ {
		m.Increment("7")
	}
	for i := 0; i < 2; i++ {
		m.Increment("11")
	}

	key, value, err := m.Top()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if key != "7" || value != 3 {
		t.Errorf("Expected top (7, 3), got (%s, %d)", key, value)
	}

	// after stepping 7 down twice, 11 leads with 2
	m.Decrement("7")
	m.Decrement("7")

	key, value, err = m.Top()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if key != "11" || value != 2 {
		t.Errorf("Expected top (11, 2), got (%s, %d)", key, value)
	}

	validate(t, m)
}

func testSetScenario(t *testing.T, m pmap.Map[string, int]) {
	requireFeature(t, m, pmap.FeatureSet)
	requireFeature(t, m, pmap.FeatureTop)

	m.Set("1", 50)
	m.Set("2", 50)
	m.Set("3", 100)

	key, value, err := m.Top()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if key != "3" || value != 100 {
		t.Errorf("Expected top (3, 100), got (%s, %d)", key, value)
	}

	for _, k := range []string{"1", "2"} {
		got, err := m.Get(k)
		if err != nil {
			t.Errorf("Key %s missing: %v", k, err)
		}
		if got != 50 {
			t.Errorf("Key %s: expected 50, got %d", k, got)
		}
	}

	validate(t, m)
}

func testErase(t *testing.T, m pmap.Map[string, int]) {
	requireFeature(t, m, pmap.FeatureSet)
	requireFeature(t, m, pmap.FeatureErase)

	if m.Erase("absent") {
		t.Errorf("Erase of absent key should return false")
	}

	// two keys sharing a bucket, one alone
	m.Set("a", 10)
	m.Set("b", 10)
	m.Set("c", 20)

	if !m.Erase("a") {
		t.Errorf("Erase of present key should return true")
	}
	if m.Contains("a") {
		t.Errorf("Key a should be gone after Erase")
	}
	if got, _ := m.Get("b"); got != 10 {
		t.Errorf("Key b should be untouched, got %d", got)
	}
	validate(t, m)

	// erasing the last member of a value must not disturb the rest
	if !m.Erase("c") {
		t.Errorf("Erase of present key should return true")
	}
	if m.Size() != 1 {
		t.Errorf("Expected one key left, got %d", m.Size())
	}
	validate(t, m)

	if m.Erase("a") {
		t.Errorf("Erase must not report an already-erased key as present")
	}
}

func testPopDrain(t *testing.T, m pmap.Map[string, int], min bool) {
	requireFeature(t, m, pmap.FeatureSet)
	requireFeature(t, m, pmap.FeaturePop)

	numKeys := 500
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < numKeys; i++ {
		m.Set("drain-key-"+strconv.Itoa(i), rnd.Intn(50)-25)
	}

	seen := make(map[string]bool)
	prev := 0
	for i := 0; i < numKeys; i++ {
		key, value, err := m.Pop()
		if err != nil {
			t.Fatalf("Unexpected error on pop %d: %v", i, err)
		}
		if seen[key] {
			t.Errorf("Key %s popped twice", key)
		}
		seen[key] = true

		// priorities must never get better again as the map drains
		if i > 0 {
			if min && value < prev {
				t.Errorf("Pop order not non-decreasing: %d after %d", value, prev)
			}
			if !min && value > prev {
				t.Errorf("Pop order not non-increasing: %d after %d", value, prev)
			}
		}
		prev = value
	}

	if len(seen) != numKeys {
		t.Errorf("Expected %d distinct popped keys, got %d", numKeys, len(seen))
	}
	if !m.Empty() {
		t.Errorf("Map should be empty after draining, size %d", m.Size())
	}

	// draining past empty is a typed, recoverable condition
	_, _, err := m.Pop()
	if !pmap.IsEmptyMap(err) {
		t.Errorf("Expected EmptyMap error, got %v", err)
	}
	_, _, err = m.Top()
	if !pmap.IsEmptyMap(err) {
		t.Errorf("Expected EmptyMap error from Top, got %v", err)
	}
}

func testTieBreak(t *testing.T, m pmap.Map[string, int]) {
	requireFeature(t, m, pmap.FeatureSet)
	requireFeature(t, m, pmap.FeaturePop)

	tied := map[string]bool{"x": true, "y": true, "z": true}
	for k := range tied {
		m.Set(k, 99)
	}
	m.Set("low", 1)

	// which tied key comes first is unspecified, but each pop must yield
	// one of them exactly once, before the lower key
	n := len(tied)
	for i := 0; i < n; i++ {
		key, value, err := m.Pop()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if value != 99 {
			t.Errorf("Expected tied value 99, got %d", value)
		}
		if !tied[key] {
			t.Errorf("Popped unexpected or repeated key %s", key)
		}
		delete(tied, key)
	}

	key, value, err := m.Pop()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if key != "low" || value != 1 {
		t.Errorf("Expected (low, 1) last, got (%s, %d)", key, value)
	}
}

func testRange(t *testing.T, m pmap.Map[string, int]) {
	requireFeature(t, m, pmap.FeatureSet)
	requireFeature(t, m, pmap.FeatureRange)

	want := map[string]int{
		"a": 3, "b": 1, "c": 4, "d": 1, "e": 5, "f": 9, "g": 2, "h": 6,
	}
	for k, v := range want {
		m.Set(k, v)
	}

	var values []int
	got := make(map[string]int)
	m.Range(func(key string, value int) bool {
		values = append(values, value)
		got[key] = value
		return true
	})

	if len(got) != len(want) {
		t.Fatalf("Range visited %d keys, expected %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Range reported %d for %s, expected %d", got[k], k, v)
		}
	}
	if !sort.SliceIsSorted(values, func(i, j int) bool { return values[i] > values[j] }) {
		t.Errorf("Range order not extreme-first: %v", values)
	}

	// early termination
	visited := 0
	m.Range(func(key string, value int) bool {
		visited++
		return visited < 3
	})
	if visited != 3 {
		t.Errorf("Range should stop when fn returns false, visited %d", visited)
	}
}

func testMinMap(t *testing.T, m pmap.Map[string, int]) {
	requireFeature(t, m, pmap.FeatureSet)
	requireFeature(t, m, pmap.FeatureTop)

	m.Set("big", 1000)
	m.Set("small", -1000)
	m.Set("mid", 0)

	key, value, err := m.Top()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if key != "small" || value != -1000 {
		t.Errorf("Min-map top should be (small, -1000), got (%s, %d)", key, value)
	}

	validate(t, m)
}

// testTopologicalSort runs Kahn's algorithm over a DAG with a min-map as the
// in-degree structure: nodes with in-degree zero surface at the top, popping
// and decrementing successors until the map drains.
func testTopologicalSort(t *testing.T, m pmap.Map[string, int]) {
	requireFeature(t, m, pmap.FeatureStep)
	requireFeature(t, m, pmap.FeaturePop)

	edges := map[string][]string{
		"shirt":  {"tie", "belt"},
		"tie":    {"jacket"},
		"belt":   {"jacket"},
		"pants":  {"belt", "shoes"},
		"socks":  {"shoes"},
		"jacket": {},
		"shoes":  {},
		"watch":  {},
	}

	// initialize in-degrees; GetOrDefault registers source-only nodes at zero
	for node, succs := range edges {
		m.GetOrDefault(node)
		for _, s := range succs {
			m.Increment(s)
		}
	}

	position := make(map[string]int)
	var order []string
	for !m.Empty() {
		node, degree, err := m.Pop()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if degree != 0 {
			t.Fatalf("Node %s surfaced with in-degree %d; graph should be acyclic", node, degree)
		}
		position[node] = len(order)
		order = append(order, node)
		for _, s := range edges[node] {
			m.Decrement(s)
		}
	}

	if len(order) != len(edges) {
		t.Fatalf("Topological order has %d nodes, expected %d", len(order), len(edges))
	}
	for node, succs := range edges {
		for _, s := range succs {
			if position[node] >= position[s] {
				t.Errorf("Edge %s -> %s violated: positions %d >= %d", node, s, position[node], position[s])
			}
		}
	}
}

func testRandomizedAgainstReference(t *testing.T, m pmap.Map[string, int], min bool) {
	requireFeature(t, m, pmap.FeatureSet)
	requireFeature(t, m, pmap.FeatureStep)
	requireFeature(t, m, pmap.FeatureTop)
	requireFeature(t, m, pmap.FeatureErase)

	reference := make(map[string]int)
	rnd := rand.New(rand.NewSource(1))

	// trueExtreme recomputes the expected top value from the reference map
	trueExtreme := func() (int, bool) {
		first := true
		best := 0
		for _, v := range reference {
			if first || (min && v < best) || (!min && v > best) {
				best = v
				first = false
			}
		}
		return best, !first
	}

	numOps := 5000
	for i := 0; i < numOps; i++ {
		key := "key-" + strconv.Itoa(rnd.Intn(40))

		switch rnd.Intn(10) {
		case 0, 1, 2:
			m.Increment(key)
			reference[key]++
		case 3, 4:
			m.Decrement(key)
			reference[key]--
		case 5, 6:
			v := rnd.Intn(200) - 100
			m.Set(key, v)
			reference[key] = v
		case 7:
			removed := m.Erase(key)
			_, present := reference[key]
			if removed != present {
				t.Fatalf("Erase(%s) returned %v, reference says %v", key, removed, present)
			}
			delete(reference, key)
		case 8:
			got, err := m.Get(key)
			want, present := reference[key]
			if present && (err != nil || got != want) {
				t.Fatalf("Get(%s) = (%d, %v), reference says %d", key, got, err, want)
			}
			if !present && !pmap.IsKeyNotFound(err) {
				t.Fatalf("Get(%s) should report KeyNotFound, got %v", key, err)
			}
		case 9:
			if m.GetOrDefault(key) != reference[key] {
				t.Fatalf("GetOrDefault(%s) diverged from reference", key)
			}
			if _, ok := reference[key]; !ok {
				reference[key] = 0
			}
		}

		// cross-check the extreme every few operations
		if i%50 == 0 {
			want, any := trueExtreme()
			_, got, err := m.Top()
			if !any {
				if !pmap.IsEmptyMap(err) {
					t.Fatalf("Expected EmptyMap at op %d, got %v", i, err)
				}
			} else {
				if err != nil {
					t.Fatalf("Unexpected Top error at op %d: %v", i, err)
				}
				if got != want {
					t.Fatalf("Top value %d at op %d, reference extreme %d", got, i, want)
				}
			}
			validate(t, m)
		}

		if m.Size() != len(reference) {
			t.Fatalf("Size %d diverged from reference %d at op %d", m.Size(), len(reference), i)
		}
	}

	validate(t, m)
}
