// Package cmd implements the command-line interface for the pMap priority
// map toolkit. It provides a hierarchical command structure with tools built
// on the map engines.
//
// The package is organized into several subpackages:
//
//   - perf: Performance testing tool for comparing the map engines
//   - freq: Word frequency counting over files or stdin
//   - topo: Topological sorting of dependency graphs
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See pmap -help for a list of all commands.
package cmd
