package testing

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/ValentinKolb/pMap/lib/pmap"
)

// RunMapBenchmarks runs all benchmarks for a priority map implementation.
//
// All benchmarks drive the map from a single goroutine since the
// implementations are built for single-writer use. Parallel load belongs in
// front of a serialization layer, not here.
func RunMapBenchmarks(b *testing.B, name string, factory MapFactory) {

	b.Run("IncrementHot", func(b *testing.B) {
		benchmarkIncrementHot(b, factory(pmap.Greater[int]()))
	})

	b.Run("IncrementSpread", func(b *testing.B) {
		benchmarkIncrementSpread(b, factory(pmap.Greater[int]()))
	})

	b.Run("SetNear", func(b *testing.B) {
		benchmarkSetNear(b, factory(pmap.Greater[int]()))
	})

	b.Run("SetFar", func(b *testing.B) {
		benchmarkSetFar(b, factory(pmap.Greater[int]()))
	})

	b.Run("Get", func(b *testing.B) {
		benchmarkGet(b, factory(pmap.Greater[int]()))
	})

	b.Run("Top", func(b *testing.B) {
		benchmarkTop(b, factory(pmap.Greater[int]()))
	})

	b.Run("PopDrain", func(b *testing.B) {
		benchmarkPopDrain(b, factory)
	})

	b.Run("Erase", func(b *testing.B) {
		benchmarkErase(b, factory(pmap.Greater[int]()))
	})

	b.Run("MixedUsage", func(b *testing.B) {
		benchmarkMixedUsage(b, factory(pmap.Greater[int]()))
	})
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

// Benchmark for Increment on a small, hot key set (few distinct priorities)
func benchmarkIncrementHot(b *testing.B, m pmap.Map[string, int]) {
	requireFeature(b, m, pmap.FeatureStep)

	numKeys := 16
	keys := make([]string, numKeys)
	for i := 0; i < numKeys; i++ {
		keys[i] = fmt.Sprintf("hot-key-%d", i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Increment(keys[i%numKeys])
	}
}

// Benchmark for Increment spread over many keys
func benchmarkIncrementSpread(b *testing.B, m pmap.Map[string, int]) {
	requireFeature(b, m, pmap.FeatureStep)

	numKeys := 100_000
	keys := make([]string, numKeys)
	for i := 0; i < numKeys; i++ {
		keys[i] = fmt.Sprintf("spread-key-%d", i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Increment(keys[i%numKeys])
	}
}

// Benchmark for Set moving keys between nearby priorities
func benchmarkSetNear(b *testing.B, m pmap.Map[string, int]) {
	requireFeature(b, m, pmap.FeatureSet)

	numKeys := 10_000
	keys := make([]string, numKeys)
	for i := 0; i < numKeys; i++ {
		keys[i] = fmt.Sprintf("near-key-%d", i)
		m.Set(keys[i], i%8)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Set(keys[i%numKeys], i%8)
	}
}

// Benchmark for Set moving keys across the whole priority range
func benchmarkSetFar(b *testing.B, m pmap.Map[string, int]) {
	requireFeature(b, m, pmap.FeatureSet)

	numKeys := 10_000
	keys := make([]string, numKeys)
	for i := 0; i < numKeys; i++ {
		keys[i] = fmt.Sprintf("far-key-%d", i)
		m.Set(keys[i], i)
	}

	rnd := rand.New(rand.NewSource(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Set(keys[i%numKeys], rnd.Intn(numKeys))
	}
}

// Benchmark for Get operation
func benchmarkGet(b *testing.B, m pmap.Map[string, int]) {
	requireFeature(b, m, pmap.FeatureSet)
	requireFeature(b, m, pmap.FeatureGet)

	numKeys := 10_000
	keys := make([]string, numKeys)
	for i := 0; i < numKeys; i++ {
		keys[i] = fmt.Sprintf("get-key-%d", i)
		m.Set(keys[i], i%100)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Get(keys[i%numKeys])
	}
}

// Benchmark for Top operation
func benchmarkTop(b *testing.B, m pmap.Map[string, int]) {
	requireFeature(b, m, pmap.FeatureSet)
	requireFeature(b, m, pmap.FeatureTop)

	numKeys := 10_000
	for i := 0; i < numKeys; i++ {
		m.Set(fmt.Sprintf("top-key-%d", i), i%100)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Top()
	}
}

// Benchmark for draining a populated map via Pop
func benchmarkPopDrain(b *testing.B, factory MapFactory) {
	m := factory(pmap.Greater[int]())
	requireFeature(b, m, pmap.FeatureSet)
	requireFeature(b, m, pmap.FeaturePop)

	numKeys := 10_000
	rnd := rand.New(rand.NewSource(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if m.Empty() {
			// Refill outside the measurement
			b.StopTimer()
			for j := 0; j < numKeys; j++ {
				m.Set(fmt.Sprintf("drain-key-%d", j), rnd.Intn(100))
			}
			b.StartTimer()
		}
		m.Pop()
	}
}

// Benchmark for Erase operation
func benchmarkErase(b *testing.B, m pmap.Map[string, int]) {
	requireFeature(b, m, pmap.FeatureSet)
	requireFeature(b, m, pmap.FeatureErase)

	numKeys := 10_000
	keys := make([]string, numKeys)
	for i := 0; i < numKeys; i++ {
		keys[i] = fmt.Sprintf("erase-key-%d", i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := keys[i%numKeys]
		if i%2 == 0 {
			m.Set(key, i%100)
		} else {
			m.Erase(key)
		}
	}
}

// Benchmark for mixed usage patterns
func benchmarkMixedUsage(b *testing.B, m pmap.Map[string, int]) {
	requireFeature(b, m, pmap.FeatureSet)
	requireFeature(b, m, pmap.FeatureGet)
	requireFeature(b, m, pmap.FeatureStep)
	requireFeature(b, m, pmap.FeatureTop)
	requireFeature(b, m, pmap.FeatureErase)

	numKeys := 10_000
	keys := make([]string, numKeys)
	for i := 0; i < numKeys; i++ {
		keys[i] = fmt.Sprintf("mixed-key-%d", i)
		m.Set(keys[i], i%100)
	}

	rnd := rand.New(rand.NewSource(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := keys[rnd.Intn(numKeys)]

		// 50% steps, 20% reads, 15% sets, 10% top, 5% erase
		switch op := rnd.Intn(100); {
		case op < 50:
			m.Increment(key)
		case op < 70:
			m.GetOrDefault(key)
		case op < 85:
			m.Set(key, rnd.Intn(100))
		case op < 95:
			m.Top()
		default:
			m.Erase(key)
		}
	}
}
