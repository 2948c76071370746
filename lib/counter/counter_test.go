package counter

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/ValentinKolb/pMap/lib/pmap"
	"github.com/ValentinKolb/pMap/lib/pmap/engines/mapheap"
)

func TestAddAndCount(t *testing.T) {
	c := New[string]()

	if c.Len() != 0 {
		t.Errorf("New counter should be empty, got %d keys", c.Len())
	}
	if c.Count("absent") != 0 {
		t.Errorf("Absent key should count 0")
	}

	if got := c.Add("a"); got != 1 {
		t.Errorf("First Add should return 1, got %d", got)
	}
	if got := c.Add("a"); got != 2 {
		t.Errorf("Second Add should return 2, got %d", got)
	}
	if got := c.AddN("b", 5); got != 5 {
		t.Errorf("AddN(5) on fresh key should return 5, got %d", got)
	}
	if got := c.AddN("b", 0); got != 5 {
		t.Errorf("AddN with non-positive n should be a no-op, got %d", got)
	}

	if c.Count("a") != 2 || c.Count("b") != 5 {
		t.Errorf("Counts diverged: a=%d b=%d", c.Count("a"), c.Count("b"))
	}
	if c.Len() != 2 {
		t.Errorf("Expected 2 distinct keys, got %d", c.Len())
	}
}

func TestRemoveDropsAtZero(t *testing.T) {
	c := New[string]()

	c.Add("a")
	c.Add("a")

	if got := c.Remove("a"); got != 1 {
		t.Errorf("Expected count 1 after first Remove, got %d", got)
	}
	if got := c.Remove("a"); got != 0 {
		t.Errorf("Expected count 0 after second Remove, got %d", got)
	}

	// the key is gone, not sitting at zero
	if c.Len() != 0 {
		t.Errorf("Key at zero should be dropped, got %d keys", c.Len())
	}
	if _, ok := c.MostCommon(); ok {
		t.Errorf("Drained counter should report empty")
	}

	// removing an absent key is a no-op
	if got := c.Remove("a"); got != 0 {
		t.Errorf("Remove on absent key should return 0, got %d", got)
	}
}

func TestErase(t *testing.T) {
	c := New[string]()

	c.AddN("a", 10)
	if !c.Erase("a") {
		t.Errorf("Erase of present key should return true")
	}
	if c.Erase("a") || c.Len() != 0 {
		t.Errorf("Key should be fully gone after Erase")
	}
}

func TestNewWithMapRequiresOrderedIteration(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for a backing map without ordered iteration")
		}
	}()

	// the heap engine cannot iterate in priority order
	NewWithMap[string](func() pmap.Map[string, int] {
		return mapheap.New[string](mapheap.DefaultOptions[int]())
	})
}

func TestMostCommonAndTopN(t *testing.T) {
	c := New[string]()

	text := "the quick brown fox jumps over the lazy dog the fox"
	for _, word := range strings.Fields(text) {
		c.Add(word)
	}

	top, ok := c.MostCommon()
	if !ok {
		t.Fatalf("Expected a most common entry")
	}
	if top.Key != "the" || top.Count != 3 {
		t.Errorf("Expected (the, 3), got (%s, %d)", top.Key, top.Count)
	}

	top2 := c.TopN(2)
	if len(top2) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(top2))
	}
	if top2[0].Key != "the" || top2[0].Count != 3 {
		t.Errorf("Expected (the, 3) first, got (%s, %d)", top2[0].Key, top2[0].Count)
	}
	if top2[1].Key != "fox" || top2[1].Count != 2 {
		t.Errorf("Expected (fox, 2) second, got (%s, %d)", top2[1].Key, top2[1].Count)
	}

	// n larger than the key count returns everything
	all := c.TopN(100)
	if len(all) != c.Len() {
		t.Errorf("Expected %d entries, got %d", c.Len(), len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Count > all[i-1].Count {
			t.Errorf("TopN out of order at %d: %d after %d", i, all[i].Count, all[i-1].Count)
		}
	}

	if c.TopN(0) != nil {
		t.Errorf("TopN(0) should return nil")
	}
}

func TestRandomizedAgainstReference(t *testing.T) {
	c := New[string]()
	reference := make(map[string]int)
	rnd := rand.New(rand.NewSource(3))

	for i := 0; i < 5000; i++ {
		key := "word-" + strconv.Itoa(rnd.Intn(30))

		if rnd.Intn(3) == 0 {
			got := c.Remove(key)
			if reference[key] > 0 {
				reference[key]--
				if reference[key] == 0 {
					delete(reference, key)
				}
			}
			if got != reference[key] {
				t.Fatalf("Remove(%s) returned %d, reference says %d", key, got, reference[key])
			}
		} else {
			c.Add(key)
			reference[key]++
		}
	}

	if c.Len() != len(reference) {
		t.Fatalf("Counter holds %d keys, reference %d", c.Len(), len(reference))
	}
	for key, want := range reference {
		if got := c.Count(key); got != want {
			t.Errorf("Count(%s) = %d, reference says %d", key, got, want)
		}
	}

	// most common must match the reference maximum
	if top, ok := c.MostCommon(); ok {
		max := 0
		for _, v := range reference {
			if v > max {
				max = v
			}
		}
		if top.Count != max {
			t.Errorf("MostCommon count %d, reference maximum %d", top.Count, max)
		}
	} else if len(reference) > 0 {
		t.Errorf("Counter reports empty, reference holds %d keys", len(reference))
	}
}
