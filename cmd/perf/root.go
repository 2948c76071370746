package perf

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ValentinKolb/pMap/cmd/util"
	"github.com/ValentinKolb/pMap/lib/pmap"
	pmaputil "github.com/ValentinKolb/pMap/lib/pmap/util"
	vmmetrics "github.com/VictoriaMetrics/metrics"
	"github.com/puzpuzpuz/xsync/v3"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// PerfCmd represents the perf command
	PerfCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for priority map engines",
		Long:    "",
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfKeySpread  = 100
	perfNumThreads = 10
	perfLatencyOps = 100_000
	perfSkip       = make([]string, 0)
	perfMapFactory func(cmp pmap.Compare[int]) pmap.Map[string, int]
	perfMapCompare pmap.Compare[int]
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// add flags
	key := "skip"
	PerfCmd.PersistentFlags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,get)"))
	key = "threads"
	PerfCmd.PersistentFlags().Int(key, 10, util.WrapString("Number of producer goroutines for the feed benchmark"))
	key = "keys"
	PerfCmd.PersistentFlags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "latency-ops"
	PerfCmd.PersistentFlags().Int(key, 100_000, util.WrapString("Number of operations for the latency profile"))
	key = "csv"
	PerfCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
	key = "prom"
	PerfCmd.Flags().String(key, "", util.WrapString("Optional path to dump results in Prometheus text format"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfKeySpread = viper.GetInt("keys")
	perfNumThreads = viper.GetInt("threads")
	perfLatencyOps = viper.GetInt("latency-ops")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	var err error
	perfMapFactory, err = util.GetMapFactory()
	if err != nil {
		return err
	}
	perfMapCompare, err = util.GetComparator()
	return err
}

func run(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for priority map engines")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("Engine:  %s\n", viper.GetString("engine"))
	fmt.Printf("Order:   %s\n", viper.GetString("order"))
	fmt.Printf("Keys:    %d\n", perfKeySpread)
	fmt.Printf("Threads: %d (feed benchmark only)\n", perfNumThreads)
	fmt.Println()

	fmt.Println("starting tests...")

	// Create results map
	results := make(map[string]testing.BenchmarkResult)

	incrementResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("increment") {
			return
		}

		m := newMap()
		getKey, _ := getKeys("increment")

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			m.Increment(getKey(i))
		}
	})

	results["increment"] = incrementResult
	printResult("increment", incrementResult)

	setResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("set") {
			return
		}

		m := newMap()
		getKey, iter := getKeys("set")
		iter(func(i int, k string) {
			m.Set(k, i)
		})

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			m.Set(getKey(i), i%perfKeySpread)
		}
	})

	results["set"] = setResult
	printResult("set", setResult)

	getResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("get") {
			return
		}

		m := newMap()
		getKey, iter := getKeys("get")
		iter(func(i int, k string) {
			m.Set(k, i)
		})

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = m.Get(getKey(i))
		}
	})

	results["get"] = getResult
	printResult("get", getResult)

	topResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("top") {
			return
		}

		m := newMap()
		_, iter := getKeys("top")
		iter(func(i int, k string) {
			m.Set(k, i)
		})

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _, _ = m.Top()
		}
	})

	results["top"] = topResult
	printResult("top", topResult)

	popResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("pop") {
			return
		}

		m := newMap()
		_, iter := getKeys("pop")

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if m.Empty() {
				b.StopTimer()
				iter(func(j int, k string) {
					m.Set(k, j)
				})
				b.StartTimer()
			}
			_, _, _ = m.Pop()
		}
	})

	results["pop"] = popResult
	printResult("pop", popResult)

	mixedResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("mixed") {
			return
		}

		m := newMap()
		getKey, _ := getKeys("mixed")

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			key := getKey(i)
			switch i % 4 {
			case 0:
				m.Increment(key)
			case 1:
				m.GetOrDefault(key)
			case 2:
				m.Set(key, i%perfKeySpread)
			case 3:
				m.Top()
			}
		}
	})

	results["mixed"] = mixedResult
	printResult("mixed", mixedResult)

	feedResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("feed") {
			return
		}
		benchmarkFeed(b)
	})

	results["feed"] = feedResult
	printResult("feed", feedResult)

	// Latency profile with percentiles
	if !shouldSkip("latency") {
		fmt.Println()
		runLatencyProfile()
	}

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	// Dump results in Prometheus text format if specified
	if promPath := viper.GetString("prom"); promPath != "" {
		fmt.Printf("\nExporting results to Prometheus format: %s\n", promPath)
		if err := writeResultsToProm(promPath, results); err != nil {
			return fmt.Errorf("failed to export results: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Benchmark implementations
// --------------------------------------------------------------------------

// benchmarkFeed measures the full single-writer pipeline: perfNumThreads
// producers push increments into a feed, one consumer goroutine owns the map
// and applies them
func benchmarkFeed(b *testing.B) {
	m := newMap()
	getKey, _ := getKeys("feed")
	feed := pmaputil.NewFeed[string]()

	// counts pushes across all producers without a shared lock
	pushed := xsync.NewCounter()

	// consumer owns the map
	done := make(chan struct{})
	go func() {
		defer close(done)
		for key := range feed.Recv() {
			m.Increment(*key)
		}
	}()

	b.ResetTimer()

	var wg sync.WaitGroup
	wg.Add(perfNumThreads)
	for t := 0; t < perfNumThreads; t++ {
		go func(offset int) {
			defer wg.Done()
			for i := offset; i < b.N; i += perfNumThreads {
				key := getKey(i)
				if feed.Push(&key) {
					pushed.Inc()
				}
			}
		}(t)
	}

	wg.Wait()
	feed.Close()
	<-done

	b.StopTimer()
	// producers partition [0,N) by stride, so a short count means drops
	if pushed.Value() != int64(b.N) {
		fmt.Printf("(feed) - pushed %d of %d items\n", pushed.Value(), b.N)
	}
}

// runLatencyProfile runs a fixed number of mixed operations and reports
// per-operation latency percentiles
func runLatencyProfile() {
	m := newMap()
	getKey, _ := getKeys("latency")

	sample := gometrics.NewExpDecaySample(4096, 0.015)
	hist := gometrics.NewHistogram(sample)

	for i := 0; i < perfLatencyOps; i++ {
		key := getKey(i)
		start := time.Now()
		switch i % 4 {
		case 0:
			m.Increment(key)
		case 1:
			m.GetOrDefault(key)
		case 2:
			m.Set(key, i%perfKeySpread)
		case 3:
			m.Top()
		}
		hist.Update(time.Since(start).Nanoseconds())
	}

	ps := hist.Percentiles([]float64{0.5, 0.95, 0.99})
	fmt.Printf("latency profile (%d mixed ops):\n", perfLatencyOps)
	fmt.Printf("%-20sp50=%s p95=%s p99=%s max=%s\n",
		"mixed",
		time.Duration(int64(ps[0])),
		time.Duration(int64(ps[1])),
		time.Duration(int64(ps[2])),
		time.Duration(hist.Max()))
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func newMap() pmap.Map[string, int] {
	return perfMapFactory(perfMapCompare)
}

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// creates an array of test keys and functions to work with them
func getKeys(prefix string) (func(int) string, func(func(int, string))) {
	keys := make([]string, perfKeySpread)
	for i := 0; i < perfKeySpread; i++ {
		keys[i] = fmt.Sprintf("__test-%s-%d", prefix, i)
	}

	// Function to get a key by index (with wraparound)
	getKey := func(i int) string {
		return keys[i%perfKeySpread]
	}

	// Function to iterate over all keys and apply a function to each
	iterateKeys := func(fn func(int, string)) {
		for i, key := range keys {
			fn(i, key)
		}
	}

	return getKey, iterateKeys
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(int64(nsPerOp)), opsPerSec)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped",
		"Engine", "Order", "Threads", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, result := range results {
		var nsPerOp float64
		var opsPerSec float64
		var skipped string

		if result.NsPerOp() == 0 {
			skipped = "true"
			nsPerOp = 0
			opsPerSec = 0
		} else {
			skipped = "false"
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(int64(nsPerOp)).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			viper.GetString("engine"),
			viper.GetString("order"),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}

// writeResultsToProm writes benchmark results as Prometheus text format so
// they can be pushed to a gateway or diffed between runs
func writeResultsToProm(promPath string, results map[string]testing.BenchmarkResult) error {
	set := vmmetrics.NewSet()

	engine := viper.GetString("engine")
	order := viper.GetString("order")

	for test, result := range results {
		if result.NsPerOp() == 0 {
			continue
		}
		name := fmt.Sprintf(`pmap_perf_ns_per_op{test=%q,engine=%q,order=%q}`, test, engine, order)
		set.GetOrCreateFloatCounter(name).Set(float64(result.NsPerOp()))
		name = fmt.Sprintf(`pmap_perf_ops_total{test=%q,engine=%q,order=%q}`, test, engine, order)
		set.GetOrCreateCounter(name).Set(uint64(result.N))
	}

	file, err := os.Create(promPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	defer file.Close()

	set.WritePrometheus(file)
	return nil
}
