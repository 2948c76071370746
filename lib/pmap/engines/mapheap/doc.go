// Package mapheap implements a priority map engine as a binary heap combined
// with a hash map for key-based access. It provides the pmap.Map interface
// with O(log n) mutations and O(1) extremal reads.
//
// Compared to the bucketlist engine, unit steps cost O(log n) instead of
// amortized O(1), and iteration in priority order is not available (the heap
// slice is not sorted), so pmap.FeatureRange is not advertised. In exchange
// the representation is a single flat slice, which can win on small maps and
// jump-heavy workloads where Set moves values across many distinct
// priorities at once. The perf command compares the two engines directly.
//
// The heap follows container/heap conventions: each item records its slice
// position so that key-based updates can restore the heap property with
// heap.Fix and key-based removal with heap.Remove.
package mapheap
