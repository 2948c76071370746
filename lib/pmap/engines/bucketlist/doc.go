// Package bucketlist implements the primary priority map engine: an ordered
// bucket index. It provides a complete implementation of the pmap.Map
// interface with O(1) extremal access and amortized O(1) unit steps - the
// operation mix of frequency counting, Kahn-style scheduling and similar
// workloads where priorities move by one far more often than they jump.
//
// The package focuses on:
//   - Constant-time access to the extreme bucket (Top, Pop)
//   - Amortized constant-time Increment and Decrement
//   - Set cost proportional to the number of distinct values crossed,
//     independent of the number of keys
//   - Immediate, synchronous reclamation of emptied buckets
//
// Key Components:
//
//   - mapImpl: The engine structure implementing pmap.Map. It owns the
//     bucket sequence and the key index and enforces every structural
//     invariant on each mutation.
//
//   - Bucket sequence (internal package): a doubly-linked list with one
//     bucket per distinct priority value, kept sorted under the configured
//     comparator with the extreme value at the front. Bucket nodes have
//     stable identity, so the key index can hold plain bucket pointers as
//     non-owning back-references that survive unrelated insertions and
//     removals.
//
//   - Key index: a hash map from key to its owning bucket. Every key in the
//     index is a member of the bucket it references and every bucket member
//     is indexed - this bijection is the structure's central invariant and
//     is checked by Validate.
//
// Internal Mechanisms:
//
//   - Moves: every value change scans bucket-by-bucket from the vacated
//     position in the direction the comparator dictates, merging into an
//     existing bucket of the target value or splicing a new one at the
//     crossover point. The scan cost is the number of distinct values
//     crossed, never the number of keys.
//
//   - Unit steps: with densely occupied values (integer counting) a step by
//     one can only merge into the bucket adjacent to the vacated one or
//     splice right next to it, so the scan ends after a single comparison
//     and Increment and Decrement are amortized O(1). Fractional values
//     planted by Set simply make the step scan further, like any other move.
//
//   - Bucket lifecycle: a bucket is created when a value is first needed and
//     unlinked the instant its last member leaves. No empty bucket is ever
//     observable, and no two buckets share a value.
//
// Concurrency:
//
// The engine is strictly single-writer and performs no internal locking.
// Concurrent mutation is undefined behavior; see the pmap package
// documentation for the sanctioned funneling pattern.
package bucketlist
