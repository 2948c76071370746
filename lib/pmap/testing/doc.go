// Package testing provides standardised tests and benchmarks for priority
// map implementations that satisfy the pmap.Map interface.
//
// The package contains:
//   - testing: A comprehensive test suite for validating conformance to the Map interface contract,
//     including cross-checks against a plain reference map under randomized workloads
//   - benchmark: Performance tests for measuring throughput of common map operations
//
// This package is particularly useful for:
//   - Applications that need to select the most appropriate map implementation
//     based on performance characteristics
//   - Developers implementing the Map interface
//
// Example usage:
//
//	// Creating a factory function for your implementation
//	factory := func(cmp pmap.Compare[int]) pmap.Map[string, int] {
//		return NewMyMap(cmp)
//	}
//
//	// Running the standard test suite
//	testing.RunMapTests(t, "MyMap", factory)
//
//	// Running performance benchmarks
//	testing.RunMapBenchmarks(b, "MyMap", factory)
package testing
