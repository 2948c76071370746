// Package counter provides a frequency counter built on a max-ordered
// priority map.
//
// The package focuses on:
//   - Occurrence counting: Add/Remove adjust a key's count by one, AddN by a batch
//   - O(1) most-common access: the highest count is always at the front of the
//     underlying structure, no scan or re-sort takes place
//   - Clean zero semantics: a key whose count drops to zero is removed, so
//     Len and iteration only ever see keys that actually occur
//
// Internal Mechanisms:
// Counts change in unit steps, which is the access pattern the bucket list
// engine is built for: each Add or Remove moves the key to the neighboring
// count bucket in amortized constant time. TopN and Range reuse the engine's
// priority-ordered iteration and therefore require a map that advertises
// pmap.FeatureRange.
//
// Example usage:
//
//	c := counter.New[string]()
//	for _, word := range words {
//		c.Add(word)
//	}
//	if top, ok := c.MostCommon(); ok {
//		fmt.Printf("%s occurs %d times\n", top.Key, top.Count)
//	}
package counter
