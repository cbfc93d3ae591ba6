package benchmark

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/wizex/bucketmap/internal/workload"
	"github.com/wizex/bucketmap/pkg/htable"
)

func BenchmarkTableInsert(b *testing.B) {
	runWithBucketCounts(b, BucketCounts, func(b *testing.B, buckets int) {
		t := newTable(b, buckets, htable.HasherMaphash)
		ks := keys(b, workload.KeyModeSequential, 4096)

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			t.Insert(ks[i%len(ks)], int64(i))
		}
	})
}

func BenchmarkTableLookup(b *testing.B) {
	for _, n := range KeyCounts {
		b.Run(fmt.Sprintf("keys_%d", n), func(b *testing.B) {
			runWithBucketCounts(b, []int{10, 1024}, func(b *testing.B, buckets int) {
				t := newTable(b, buckets, htable.HasherMaphash)
				ks := keys(b, workload.KeyModeSequential, n)
				prefill(t, ks)

				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					t.Lookup(ks[i%len(ks)])
				}
			})
		})
	}
}

// BenchmarkTableMixed runs a 70/25/5 lookup/insert/erase mix in parallel.
func BenchmarkTableMixed(b *testing.B) {
	runWithBucketCounts(b, BucketCounts, func(b *testing.B, buckets int) {
		t := newTable(b, buckets, htable.HasherMaphash)
		ks := keys(b, workload.KeyModeSequential, 10000)
		prefill(t, ks)
		var next atomic.Uint64

		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				i := next.Add(1)
				k := ks[i%uint64(len(ks))]
				switch i % 20 {
				case 0:
					t.Erase(k)
				case 1, 2, 3, 4, 5:
					t.Insert(k, int64(i))
				default:
					t.Lookup(k)
				}
			}
		})
		b.StopTimer()
		reportMemory(b, "heap")
	})
}

// BenchmarkTableCompute contends on a small set of counters.
func BenchmarkTableCompute(b *testing.B) {
	incr := func(old int64, _ bool) (int64, htable.ComputeOp) { return old + 1, htable.UpdateOp }

	runWithBucketCounts(b, []int{1, 16, 256}, func(b *testing.B, buckets int) {
		t := newTable(b, buckets, htable.HasherMaphash)
		ks := keys(b, workload.KeyModeSequential, 64)
		var next atomic.Uint64

		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				t.Compute(ks[next.Add(1)%uint64(len(ks))], incr)
			}
		})
	})
}

// BenchmarkSyncMapMixed is the sync.Map baseline for BenchmarkTableMixed.
func BenchmarkSyncMapMixed(b *testing.B) {
	var m sync.Map
	ks := keys(b, workload.KeyModeSequential, 10000)
	for i, k := range ks {
		m.Store(k, int64(i))
	}
	var next atomic.Uint64

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			i := next.Add(1)
			k := ks[i%uint64(len(ks))]
			switch i % 20 {
			case 0:
				m.Delete(k)
			case 1, 2, 3, 4, 5:
				m.Store(k, int64(i))
			default:
				m.Load(k)
			}
		}
	})
}

func BenchmarkTableClear(b *testing.B) {
	runWithBucketCounts(b, []int{10, 1024}, func(b *testing.B, buckets int) {
		t := newTable(b, buckets, htable.HasherMaphash)
		ks := keys(b, workload.KeyModeSequential, 1000)

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			b.StopTimer()
			prefill(t, ks)
			b.StartTimer()
			t.Clear()
		}
	})
}
