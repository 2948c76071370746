package freq

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ValentinKolb/pMap/cmd/util"
	"github.com/ValentinKolb/pMap/lib/counter"
	pmaputil "github.com/ValentinKolb/pMap/lib/pmap/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// FreqCmd represents the freq command
	FreqCmd = &cobra.Command{
		Use:   "freq [files...]",
		Short: "Count word frequencies in files or stdin",
		Long: `Count word frequencies and print the most common words.

Each input file is read by its own goroutine; all words are funneled through
a lock-free feed into a single counter, so a slow file never blocks the
others. With no arguments, stdin is read instead.`,
		RunE:    run,
		PreRunE: processConfig,
	}
	freqTop       = 10
	freqMinLength = 1
	freqLowercase = true
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// add flags
	key := "top"
	FreqCmd.Flags().Int(key, 10, util.WrapString("How many of the most common words to print"))
	key = "min-length"
	FreqCmd.Flags().Int(key, 1, util.WrapString("Ignore words shorter than this"))
	key = "lowercase"
	FreqCmd.Flags().Bool(key, true, util.WrapString("Fold words to lowercase before counting"))
}

func processConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	freqTop = viper.GetInt("top")
	freqMinLength = viper.GetInt("min-length")
	freqLowercase = viper.GetBool("lowercase")
	return nil
}

func run(_ *cobra.Command, args []string) error {
	feed := pmaputil.NewFeed[string]()

	// the consumer goroutine owns the counter; producers never touch it
	c := counter.New[string]()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for word := range feed.Recv() {
			c.Add(*word)
		}
	}()

	// one producer per input
	var producerErr error
	var mu sync.Mutex
	var wg sync.WaitGroup

	produce := func(name string, r io.Reader) {
		defer wg.Done()
		if err := scanWords(r, feed); err != nil {
			mu.Lock()
			producerErr = fmt.Errorf("%s: %w", name, err)
			mu.Unlock()
		}
	}

	if len(args) == 0 {
		wg.Add(1)
		go produce("stdin", os.Stdin)
	} else {
		for _, path := range args {
			file, err := os.Open(path)
			if err != nil {
				feed.Close()
				<-done
				return err
			}
			wg.Add(1)
			go func(f *os.File) {
				defer f.Close()
				produce(f.Name(), f)
			}(file)
		}
	}

	wg.Wait()
	feed.Close()
	<-done

	if producerErr != nil {
		return producerErr
	}

	// print results
	fmt.Printf("%d distinct words\n", c.Len())
	for i, entry := range c.TopN(freqTop) {
		fmt.Printf("%3d. %-24s%d\n", i+1, entry.Key, entry.Count)
	}

	return nil
}

// scanWords pushes every qualifying word of r into the feed
func scanWords(r io.Reader, feed *pmaputil.Feed[string]) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() {
		word := strings.Trim(scanner.Text(), ".,;:!?\"'()[]{}")
		if freqLowercase {
			word = strings.ToLower(word)
		}
		if len(word) < freqMinLength || word == "" {
			continue
		}
		w := word
		feed.Push(&w)
	}
	return scanner.Err()
}
