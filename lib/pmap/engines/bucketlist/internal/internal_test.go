package internal

import "testing"

// collect walks the list front to back and returns the bucket values
func collect(l *List[string, int]) []int {
	var values []int
	for b := l.Front(); b != nil; b = b.Next() {
		values = append(values, b.Value)
	}
	return values
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBucket(t *testing.T) {
	b := NewBucket(7, "a")

	if b.Value != 7 {
		t.Errorf("Expected value 7, got %d", b.Value)
	}
	if b.Len() != 1 {
		t.Errorf("Expected one member, got %d", b.Len())
	}
	if b.AnyKey() != "a" {
		t.Errorf("Expected member a, got %s", b.AnyKey())
	}

	b.Add("b")
	b.Add("b") // adding twice is idempotent
	if b.Len() != 2 {
		t.Errorf("Expected two members, got %d", b.Len())
	}

	b.Delete("a")
	if b.Len() != 1 || b.AnyKey() != "b" {
		t.Errorf("Expected only member b after delete")
	}

	b.Delete("absent") // deleting an absent key is a no-op
	if b.Len() != 1 {
		t.Errorf("Delete of absent key should not change the member set")
	}
}

func TestAnyKeyPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for AnyKey on empty bucket")
		}
	}()

	b := NewBucket(1, "a")
	b.Delete("a")
	b.AnyKey()
}

func TestPushAndOrder(t *testing.T) {
	l := NewList[string, int]()

	if l.Len() != 0 || l.Front() != nil || l.Back() != nil {
		t.Fatalf("New list should be empty")
	}

	l.PushBack(NewBucket(2, "b"))
	l.PushFront(NewBucket(1, "a"))
	l.PushBack(NewBucket(3, "c"))

	if !equal(collect(l), []int{1, 2, 3}) {
		t.Errorf("Expected order [1 2 3], got %v", collect(l))
	}
	if l.Len() != 3 {
		t.Errorf("Expected length 3, got %d", l.Len())
	}
	if l.Front().Value != 1 || l.Back().Value != 3 {
		t.Errorf("Front/Back out of sync: %d, %d", l.Front().Value, l.Back().Value)
	}
}

func TestInsertBeforeAfter(t *testing.T) {
	l := NewList[string, int]()
	first := NewBucket(1, "a")
	last := NewBucket(5, "c")
	l.PushBack(first)
	l.PushBack(last)

	mid := NewBucket(3, "b")
	l.InsertBefore(mid, last)
	if !equal(collect(l), []int{1, 3, 5}) {
		t.Errorf("Expected order [1 3 5], got %v", collect(l))
	}

	l.InsertAfter(NewBucket(4, "d"), mid)
	l.InsertBefore(NewBucket(0, "e"), first) // before the head
	l.InsertAfter(NewBucket(6, "f"), last)   // after the tail

	if !equal(collect(l), []int{0, 1, 3, 4, 5, 6}) {
		t.Errorf("Expected order [0 1 3 4 5 6], got %v", collect(l))
	}
	if l.Front().Value != 0 || l.Back().Value != 6 {
		t.Errorf("Front/Back out of sync after boundary inserts")
	}
	if l.Len() != 6 {
		t.Errorf("Expected length 6, got %d", l.Len())
	}
}

func TestRemove(t *testing.T) {
	l := NewList[string, int]()
	buckets := make([]*Bucket[string, int], 5)
	for i := range buckets {
		buckets[i] = NewBucket(i, "k")
		l.PushBack(buckets[i])
	}

	l.Remove(buckets[2]) // middle
	if !equal(collect(l), []int{0, 1, 3, 4}) {
		t.Errorf("Expected [0 1 3 4], got %v", collect(l))
	}

	l.Remove(buckets[0]) // head
	if l.Front().Value != 1 {
		t.Errorf("Expected new head 1, got %d", l.Front().Value)
	}

	l.Remove(buckets[4]) // tail
	if l.Back().Value != 3 {
		t.Errorf("Expected new tail 3, got %d", l.Back().Value)
	}

	l.Remove(buckets[1])
	l.Remove(buckets[3])
	if l.Len() != 0 || l.Front() != nil || l.Back() != nil {
		t.Errorf("List should be empty after removing every bucket")
	}

	// a drained list must accept new buckets again
	l.PushBack(NewBucket(9, "z"))
	if l.Len() != 1 || l.Front() != l.Back() {
		t.Errorf("List broken after drain and refill")
	}
}

func TestNodeIdentityStable(t *testing.T) {
	l := NewList[string, int]()
	tracked := NewBucket(2, "tracked")
	l.PushBack(NewBucket(1, "a"))
	l.PushBack(tracked)
	l.PushBack(NewBucket(3, "b"))

	// pointers held elsewhere stay valid across surrounding churn
	l.Remove(l.Front())
	l.InsertAfter(NewBucket(4, "c"), tracked)
	l.Remove(l.Back())

	if tracked.Value != 2 || tracked.Len() != 1 {
		t.Errorf("Tracked bucket mutated by unrelated list operations")
	}
	found := false
	for b := l.Front(); b != nil; b = b.Next() {
		if b == tracked {
			found = true
		}
	}
	if !found {
		t.Errorf("Tracked bucket no longer reachable from the list")
	}
}
