// Package pmap provides a standardized interface for priority map
// implementations. A priority map is an associative container that maps keys
// to numeric priorities while keeping the key (or one of the keys) with the
// extreme priority accessible in constant time - the combination of a
// frequency counter, a priority queue and a hash map that none of the three
// provides alone.
//
// The package focuses on:
//   - A unified interface (Map) for priority map operations
//   - Pluggable implementations through factory functions
//   - Feature discovery through capability flags
//   - Unified, typed error handling
//
// Key Components:
//
//   - Map Interface: The core generic interface that all implementations must
//     satisfy. It provides key-based operations (Get, GetOrDefault, Set,
//     Increment, Decrement, Erase, Contains), extremal operations (Top, Pop),
//     ordered iteration (Range), and metadata retrieval (GetInfo).
//
//   - Comparators: The Compare type defines the total order of priorities and
//     thereby which end of the order Top and Pop operate on. Greater yields a
//     max-map, Less a min-map; any custom total order is accepted. The
//     comparator is fixed at construction time.
//
//   - Feature Flags: The Feature type defines capability flags that
//     implementations advertise through the SupportsFeature method. This
//     allows callers to discover supported operations at runtime, e.g.
//     whether Range iterates in priority order.
//
//   - Error System: A structured error reporting mechanism using typed error
//     codes (RetCode) and descriptive messages. Exactly two conditions are
//     reported to callers: RetCKeyNotFound (Get on an absent key) and
//     RetCEmptyMap (Top/Pop on a map with zero keys). Both are deterministic
//     and recoverable; no failed operation leaves a map partially mutated.
//
// Missing-Key Policy:
//
// All write operations auto-insert an absent key with the configured default
// value before applying themselves (the accessor-creates-default model).
// Only Get distinguishes an absent key from one holding the default value by
// returning a typed error. This policy is applied consistently across all
// implementations.
//
// Concurrency Model:
//
// Priority maps are single-writer structures: every operation runs to
// completion synchronously, and concurrent mutation is undefined behavior.
// Callers needing concurrent access must serialize all calls externally, for
// example behind a mutex or by feeding a single owner goroutine through a
// queue (see lib/pmap/util.Feed for the latter pattern).
//
// Related Packages:
//
// The engines/bucketlist package provides the primary implementation: an
// ordered bucket index with amortized O(1) unit steps and O(1) extremal
// access. The engines/mapheap package provides a binary-heap alternative
// with O(log n) updates for comparison. The testing package provides a
// standardized test and benchmark suite for any Map implementation, and the
// util package provides supporting statistics and queue primitives.
package pmap
