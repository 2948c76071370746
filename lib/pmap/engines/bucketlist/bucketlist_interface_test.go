package bucketlist

import (
	"testing"

	"github.com/ValentinKolb/pMap/lib/pmap"
	pmaptesting "github.com/ValentinKolb/pMap/lib/pmap/testing"
)

func Test(t *testing.T) {
	pmaptesting.RunMapTests(t, "BucketList", func(cmp pmap.Compare[int]) pmap.Map[string, int] {
		return New[string](&Options[int]{Compare: cmp})
	})
}

func Benchmark(b *testing.B) {
	pmaptesting.RunMapBenchmarks(b, "BucketList", func(cmp pmap.Compare[int]) pmap.Map[string, int] {
		return New[string](&Options[int]{Compare: cmp})
	})
}
