package benchmark

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/wizex/bucketmap/internal/telemetry/logger"
	"github.com/wizex/bucketmap/internal/workload"
	"github.com/wizex/bucketmap/pkg/htable"
)

// BucketCounts are the table sizes compared by default.
var BucketCounts = []int{1, 10, 64, 256, 1024}

// KeyCounts are the resident key counts compared by default.
var KeyCounts = []int{1000, 10000, 100000}

func newTable(b *testing.B, buckets int, hasher string) *htable.Table[string, int64] {
	b.Helper()
	t, err := htable.NewFromConfig[int64](
		htable.Config{BucketCount: buckets, Hasher: hasher},
		htable.WithLogger(logger.Nop()),
	)
	if err != nil {
		b.Fatalf("NewFromConfig() error = %v", err)
	}
	return t
}

func keys(b *testing.B, mode string, n int) []string {
	b.Helper()
	ks, err := workload.GenerateKeys(mode, n)
	if err != nil {
		b.Fatalf("GenerateKeys() error = %v", err)
	}
	return ks
}

// prefill inserts every key with its index as value.
func prefill(t *htable.Table[string, int64], ks []string) {
	for i, k := range ks {
		t.Insert(k, int64(i))
	}
}

// reportMemory reports heap usage after the run.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
}

func runWithBucketCounts(b *testing.B, counts []int, fn func(b *testing.B, buckets int)) {
	for _, n := range counts {
		b.Run(fmt.Sprintf("buckets_%d", n), func(b *testing.B) {
			fn(b, n)
		})
	}
}
