// This file provides a lock-free Multi-Producer Single-Consumer (MPSC) queue.
//
// Priority maps are single-writer structures: concurrent mutation is
// undefined behavior, and callers with concurrent producers must funnel all
// updates through one owner goroutine. The Feed is that funnel. Any number
// of goroutines may Push() concurrently; exactly one goroutine consumes the
// items from the Recv() channel and applies them to the map it owns.
//
// Guarantees:
//
//   - Lock-free writes: producers append with atomic operations only
//   - Unbounded: the queue grows as needed, limited only by memory
//   - Single consumer: one goroutine drains via the Recv() channel
//   - No strict FIFO across producers: under concurrent Push() calls the
//     order is decided by which producer completes first, not which started
//     first. Within one producer, order is preserved.
package util

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// feedNode represents a single element in the feed
type feedNode[T any] struct {
	value *T
	next  atomic.Pointer[feedNode[T]]
}

// Feed is a lock-free multi-producer single-consumer queue built from a
// linked list of nodes appended with compare-and-swap.
type Feed[T any] struct {
	head   atomic.Pointer[feedNode[T]]
	tail   atomic.Pointer[feedNode[T]]
	out    chan *T
	closed atomic.Bool

	// condition variable so the consumer can sleep while the feed is empty
	mu   sync.Mutex
	cond *sync.Cond
}

// NewFeed creates a new feed and starts its consumer goroutine. The consumer
// moves items from the internal list to the Recv() channel and exits once
// the feed is closed and drained.
func NewFeed[T any]() *Feed[T] {
	// sentinel node so head and tail are never nil
	sentinel := &feedNode[T]{}

	f := &Feed[T]{
		out: make(chan *T),
	}
	f.cond = sync.NewCond(&f.mu)
	f.head.Store(sentinel)
	f.tail.Store(sentinel)

	go f.consume()

	return f
}

// Push adds an item to the feed.
// Returns true if the item was added, or false if the feed is closed.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (f *Feed[T]) Push(value *T) bool {
	if value == nil || f.closed.Load() {
		return false
	}

	newNode := &feedNode[T]{value: value}

	for {
		tailNode := f.tail.Load()
		next := tailNode.next.Load()

		if next == nil {
			// the tail has no successor yet, try to append our node
			if tailNode.next.CompareAndSwap(nil, newNode) {
				// appended; move the tail forward. The CAS may lose to a
				// helping producer, which is fine - the tail still advances.
				f.tail.CompareAndSwap(tailNode, newNode)

				// wake the consumer
				f.cond.Signal()
				return true
			}
		} else {
			// another producer appended but has not advanced the tail yet - help it
			f.tail.CompareAndSwap(tailNode, next)
		}

		runtime.Gosched()
	}
}

// consume moves items from the linked list to the output channel,
// releasing list nodes as it goes.
func (f *Feed[T]) consume() {
	defer close(f.out)

	for {
		hasItems := false

		for {
			head := f.head.Load()
			next := head.next.Load()
			if next == nil {
				break
			}

			hasItems = true
			value := next.value

			// advance head so the drained node can be collected
			f.head.Store(next)

			f.out <- value
			next.value = nil
		}

		if !hasItems && f.closed.Load() {
			return
		}

		if !hasItems {
			f.mu.Lock()
			// re-check under the lock before sleeping
			if f.head.Load().next.Load() == nil && !f.closed.Load() {
				f.cond.Wait()
			}
			f.mu.Unlock()
		}
	}
}

// Recv returns a receive-only channel for consuming from the feed. The
// channel is closed after Close() once all pushed items have been delivered.
func (f *Feed[T]) Recv() <-chan *T {
	return f.out
}

// Close closes the feed, preventing further writes.
// Items already in the feed are still delivered to the consumer.
func (f *Feed[T]) Close() {
	// the flag must flip under f.mu: the consumer re-checks it while holding
	// the lock before going to sleep, so the wake-up cannot slip into the
	// window between that check and the Wait
	f.mu.Lock()
	f.closed.Store(true)
	f.cond.Signal()
	f.mu.Unlock()
}

// IsClosed returns true if the feed is closed.
func (f *Feed[T]) IsClosed() bool {
	return f.closed.Load()
}
