// Package util provides supporting components for priority map
// implementations that satisfy the pmap.Map interface.
//
// The package contains:
//   - statistics: distribution statistics used for the bucket occupancy
//     reporting in pmap.Info metadata
//   - feed: a lock-free Multi-Producer Single-Consumer (MPSC) queue for
//     funneling concurrent producers into a map's single writer goroutine
//
// This package is particularly useful for:
//   - Implementations of the pmap.Map interface reporting metadata
//   - Applications that have concurrent producers of priority updates but
//     must respect the single-writer contract of the map
package util
