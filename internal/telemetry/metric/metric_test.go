package metric

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wizex/bucketmap/pkg/htable"
)

func TestOpCounterObserve(t *testing.T) {
	c := NewOpCounter("test")

	c.ObserveOp(htable.OpLookup, 0, true)
	c.ObserveOp(htable.OpLookup, 1, true)
	c.ObserveOp(htable.OpLookup, 1, false)
	c.ObserveOp(htable.OpInsert, 2, false)

	tests := []struct {
		op     htable.Op
		result string
		want   float64
	}{
		{htable.OpLookup, "hit", 2},
		{htable.OpLookup, "miss", 1},
		{htable.OpInsert, "miss", 1},
		{htable.OpErase, "hit", 0},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(c.vec.WithLabelValues(string(tt.op), tt.result))
		if got != tt.want {
			t.Errorf("operations_total{op=%q,result=%q} = %v, want %v", tt.op, tt.result, got, tt.want)
		}
	}
}

func TestOpCounterAsTableObserver(t *testing.T) {
	r := NewRegistry("test")
	tbl, err := htable.New[string, int](htable.WithObserver(r.Ops))
	if err != nil {
		t.Fatalf("htable.New() error = %v", err)
	}

	tbl.Insert("a", 1)
	tbl.Lookup("a")
	tbl.Lookup("b")
	tbl.Erase("a")

	if got := testutil.ToFloat64(r.Ops.vec.WithLabelValues(string(htable.OpLookup), "hit")); got != 1 {
		t.Errorf("lookup hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.Ops.vec.WithLabelValues(string(htable.OpLookup), "miss")); got != 1 {
		t.Errorf("lookup misses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.Ops.vec.WithLabelValues(string(htable.OpErase), "hit")); got != 1 {
		t.Errorf("erase hits = %v, want 1", got)
	}
}

type fakeStats struct {
	stats []htable.BucketStats
}

func (f fakeStats) Stats() []htable.BucketStats { return f.stats }
func (f fakeStats) BucketCount() int            { return len(f.stats) }

func TestBucketCollector(t *testing.T) {
	src := fakeStats{stats: []htable.BucketStats{
		{Index: 0, Count: 3},
		{Index: 1, Count: 0},
		{Index: 2, Count: 5},
	}}
	c := NewBucketCollector(src, "test")

	// One series per bucket plus the total and the bucket count.
	if n := testutil.CollectAndCount(c); n != 5 {
		t.Errorf("CollectAndCount() = %d, want 5", n)
	}

	want := `
# HELP test_table_entries Entries stored in the table
# TYPE test_table_entries gauge
test_table_entries 8
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(want), "test_table_entries"); err != nil {
		t.Errorf("CollectAndCompare() error = %v", err)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry("test")
	tbl, err := htable.New[string, int](htable.WithBucketCount(4))
	if err != nil {
		t.Fatalf("htable.New() error = %v", err)
	}
	tbl.Insert("a", 1)
	if err := r.Register(NewBucketCollector(tbl, "test")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	r.WorkloadRuns.WithLabelValues("completed").Inc()

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	for _, want := range []string{
		"go_goroutines",
		"test_table_buckets 4",
		"test_table_entries 1",
		`test_workload_runs_total{outcome="completed"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry("test")
	src := fakeStats{stats: []htable.BucketStats{{Index: 0, Count: 1}}}
	if err := r.Register(NewBucketCollector(src, "test")); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if err := r.Register(NewBucketCollector(src, "test")); err == nil {
		t.Error("second Register() error = nil, want duplicate registration error")
	}
}
