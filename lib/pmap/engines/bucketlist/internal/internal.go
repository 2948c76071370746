package internal

// --------------------------------------------------------------------------
// Bucket Type (one distinct priority value and its member keys)
// --------------------------------------------------------------------------

// Bucket holds one distinct priority value together with the set of keys
// currently at that value. Buckets are the nodes of a List and have stable
// identity: a *Bucket stays valid across insertions and removals elsewhere
// in the sequence, which is what allows the key index to hold plain bucket
// pointers as non-owning back-references.
//
// A bucket is never observed empty from outside the engine - the engine
// removes it from its List the instant the last member leaves.
type Bucket[K comparable, V any] struct {
	Value   V
	Members map[K]struct{}

	prev, next *Bucket[K, V]
}

// NewBucket creates a bucket for value with a single member key.
func NewBucket[K comparable, V any](value V, key K) *Bucket[K, V] {
	return &Bucket[K, V]{
		Value:   value,
		Members: map[K]struct{}{key: {}},
	}
}

// Next returns the following bucket in sequence order or nil at the back.
func (b *Bucket[K, V]) Next() *Bucket[K, V] { return b.next }

// Prev returns the preceding bucket in sequence order or nil at the front.
func (b *Bucket[K, V]) Prev() *Bucket[K, V] { return b.prev }

// Add inserts key into the member set.
func (b *Bucket[K, V]) Add(key K) { b.Members[key] = struct{}{} }

// Delete removes key from the member set.
func (b *Bucket[K, V]) Delete(key K) { delete(b.Members, key) }

// Len returns the number of member keys.
func (b *Bucket[K, V]) Len() int { return len(b.Members) }

// AnyKey returns an arbitrary member key. Which key is returned is
// implementation-defined (map iteration order) and may differ between calls.
// Must not be called on an empty bucket.
func (b *Bucket[K, V]) AnyKey() K {
	for k := range b.Members {
		return k
	}
	panic("pmap/bucketlist: AnyKey on empty bucket")
}

// --------------------------------------------------------------------------
// List Type (doubly-linked sequence of buckets)
// --------------------------------------------------------------------------

// List is a doubly-linked sequence of buckets. The engine keeps it sorted by
// bucket value under its comparator; the list itself is order-agnostic and
// only provides structural operations with stable node identity.
type List[K comparable, V any] struct {
	head *Bucket[K, V]
	tail *Bucket[K, V]
	size int
}

// NewList creates an empty bucket sequence.
func NewList[K comparable, V any]() *List[K, V] {
	return &List[K, V]{}
}

// Len returns the number of buckets in the sequence.
func (l *List[K, V]) Len() int { return l.size }

// Front returns the first bucket or nil if the sequence is empty.
func (l *List[K, V]) Front() *Bucket[K, V] { return l.head }

// Back returns the last bucket or nil if the sequence is empty.
func (l *List[K, V]) Back() *Bucket[K, V] { return l.tail }

// PushFront inserts b at the front of the sequence.
func (l *List[K, V]) PushFront(b *Bucket[K, V]) {
	b.prev = nil
	b.next = l.head
	if l.head != nil {
		l.head.prev = b
	} else {
		l.tail = b
	}
	l.head = b
	l.size++
}

// PushBack inserts b at the back of the sequence.
func (l *List[K, V]) PushBack(b *Bucket[K, V]) {
	b.next = nil
	b.prev = l.tail
	if l.tail != nil {
		l.tail.next = b
	} else {
		l.head = b
	}
	l.tail = b
	l.size++
}

// InsertBefore inserts b immediately before at. at must be a member of the
// sequence.
func (l *List[K, V]) InsertBefore(b, at *Bucket[K, V]) {
	if at.prev == nil {
		l.PushFront(b)
		return
	}
	b.prev = at.prev
	b.next = at
	at.prev.next = b
	at.prev = b
	l.size++
}

// InsertAfter inserts b immediately after at. at must be a member of the
// sequence.
func (l *List[K, V]) InsertAfter(b, at *Bucket[K, V]) {
	if at.next == nil {
		l.PushBack(b)
		return
	}
	b.next = at.next
	b.prev = at
	at.next.prev = b
	at.next = b
	l.size++
}

// Remove unlinks b from the sequence. b must be a member of the sequence.
func (l *List[K, V]) Remove(b *Bucket[K, V]) {
	if b.prev != nil {
		b.prev.next = b.next
	} else {
		l.head = b.next
	}
	if b.next != nil {
		b.next.prev = b.prev
	} else {
		l.tail = b.prev
	}
	b.prev = nil
	b.next = nil
	l.size--
}
