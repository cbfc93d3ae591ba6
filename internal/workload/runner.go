package workload

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/wizex/bucketmap/internal/telemetry/logger"
	"github.com/wizex/bucketmap/pkg/htable"
)

// Table is the subset of *htable.Table[string, int64] a workload drives.
type Table interface {
	Insert(key string, value int64)
	Lookup(key string) (int64, bool)
	At(key string) (int64, error)
	GetOrInsert(key string) int64
	Erase(key string) bool
	Compute(key string, fn func(old int64, ok bool) (int64, htable.ComputeOp)) (int64, bool)
	Len() int
	Stats() []htable.BucketStats
	BucketCount() int
	BucketIndex(key string) int
}

type opKind int

const (
	opInsert opKind = iota
	opLookup
	opAt
	opGetOrInsert
	opErase
	opCompute
	numOpKinds
)

// Result summarizes a workload run.
type Result struct {
	RunID        string               `json:"run_id" yaml:"run_id"`
	Workers      int                  `json:"workers" yaml:"workers"`
	Buckets      int                  `json:"buckets" yaml:"buckets"`
	Inserts      uint64               `json:"inserts" yaml:"inserts"`
	Lookups      uint64               `json:"lookups" yaml:"lookups"`
	Ats          uint64               `json:"ats" yaml:"ats"`
	GetOrInserts uint64               `json:"get_or_inserts" yaml:"get_or_inserts"`
	Erases       uint64               `json:"erases" yaml:"erases"`
	Computes     uint64               `json:"computes" yaml:"computes"`
	Misses       uint64               `json:"key_not_found" yaml:"key_not_found"`
	TotalOps     uint64               `json:"total_ops" yaml:"total_ops"`
	Duration     time.Duration        `json:"duration" yaml:"duration"`
	Throughput   float64              `json:"ops_per_sec" yaml:"ops_per_sec"`
	FinalLen     int                  `json:"final_len" yaml:"final_len"`
	Distribution []htable.BucketStats `json:"distribution,omitempty" yaml:"distribution,omitempty" table:"-"`
}

type counters struct {
	ops    [numOpKinds]atomic.Uint64
	misses atomic.Uint64
}

func (c *counters) fill(r *Result) {
	r.Inserts = c.ops[opInsert].Load()
	r.Lookups = c.ops[opLookup].Load()
	r.Ats = c.ops[opAt].Load()
	r.GetOrInserts = c.ops[opGetOrInsert].Load()
	r.Erases = c.ops[opErase].Load()
	r.Computes = c.ops[opCompute].Load()
	r.Misses = c.misses.Load()
	for i := range c.ops {
		r.TotalOps += c.ops[i].Load()
	}
}

// Runner executes a workload.
type Runner struct {
	cfg  Config
	keys []string

	completed atomic.Uint64
}

// NewRunner validates cfg and builds its keyspace.
func NewRunner(cfg Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	keys, err := GenerateKeys(cfg.KeyMode, cfg.Keys)
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, keys: keys}, nil
}

// Keys returns the runner's keyspace.
func (r *Runner) Keys() []string {
	return r.keys
}

// Planned returns the number of operations a full run issues.
func (r *Runner) Planned() uint64 {
	return uint64(r.cfg.Workers) * uint64(r.cfg.Ops)
}

// Completed returns the operations issued so far by the current or last run.
func (r *Runner) Completed() uint64 {
	return r.completed.Load()
}

// Run drives t until every worker has issued its operations or ctx is
// done. On cancellation the partial result is returned together with the
// context error.
func (r *Runner) Run(ctx context.Context, t Table) (*Result, error) {
	runID := NewRunID()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.L(ctx)

	var limiter *rate.Limiter
	if r.cfg.Rate > 0 {
		burst := r.cfg.Workers
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(r.cfg.Rate), burst)
	}

	log.Info("workload started",
		"workers", r.cfg.Workers,
		"ops_per_worker", r.cfg.Ops,
		"keys", len(r.keys),
		"buckets", t.BucketCount(),
	)

	r.completed.Store(0)
	var (
		c       counters
		wg      sync.WaitGroup
		stopErr atomic.Pointer[error]
	)
	start := time.Now()
	for w := 0; w < r.cfg.Workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			r.work(ctx, t, limiter, uint64(id), &c, &stopErr)
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	res := &Result{
		RunID:        runID,
		Workers:      r.cfg.Workers,
		Buckets:      t.BucketCount(),
		Duration:     elapsed,
		FinalLen:     t.Len(),
		Distribution: t.Stats(),
	}
	c.fill(res)
	if elapsed > 0 {
		res.Throughput = float64(res.TotalOps) / elapsed.Seconds()
	}

	err := ctx.Err()
	if p := stopErr.Load(); err == nil && p != nil {
		// The limiter gives up before the deadline when the next token would land past it.
		err = fmt.Errorf("%w: %v", context.DeadlineExceeded, *p)
	}
	if err != nil {
		log.Warn("workload interrupted", "ops", res.TotalOps, "error", err)
		return res, err
	}
	log.Info("workload finished",
		"ops", res.TotalOps,
		"duration", elapsed,
		"ops_per_sec", int64(res.Throughput),
		"final_len", res.FinalLen,
	)
	return res, nil
}

func (r *Runner) work(ctx context.Context, t Table, limiter *rate.Limiter, id uint64, c *counters, stopErr *atomic.Pointer[error]) {
	rng := rand.New(rand.NewPCG(r.cfg.Seed, id))
	incr := func(old int64, _ bool) (int64, htable.ComputeOp) {
		return old + 1, htable.UpdateOp
	}

	for i := 0; i < r.cfg.Ops; i++ {
		if ctx.Err() != nil {
			return
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				stopErr.CompareAndSwap(nil, &err)
				return
			}
		}

		key := r.keys[rng.IntN(len(r.keys))]
		p := rng.Float64()
		switch {
		case p < r.cfg.ReadRatio:
			switch q := rng.IntN(4); {
			case q < 2:
				t.Lookup(key)
				c.ops[opLookup].Add(1)
			case q == 2:
				if _, err := t.At(key); errors.Is(err, htable.ErrKeyNotFound) {
					c.misses.Add(1)
				}
				c.ops[opAt].Add(1)
			default:
				t.GetOrInsert(key)
				c.ops[opGetOrInsert].Add(1)
			}
		case p < r.cfg.ReadRatio+r.cfg.EraseRatio:
			t.Erase(key)
			c.ops[opErase].Add(1)
		default:
			if rng.IntN(4) == 0 {
				t.Compute(key, incr)
				c.ops[opCompute].Add(1)
			} else {
				t.Insert(key, int64(i))
				c.ops[opInsert].Add(1)
			}
		}
		r.completed.Add(1)
	}
}

// Disjoint starts one goroutine per bucket. Each inserts into a key routed
// to its own bucket ops times, so no two goroutines ever contend on a
// bucket lock. Buckets no generated key hashes to are skipped.
func Disjoint(ctx context.Context, t Table, ops int) (*Result, error) {
	keys := KeysPerBucket(t, 1000)

	var (
		c  counters
		wg sync.WaitGroup
	)
	start := time.Now()
	for _, key := range keys {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			for i := 0; i < ops; i++ {
				if ctx.Err() != nil {
					return
				}
				t.Insert(key, int64(i))
				c.ops[opInsert].Add(1)
			}
		}(key)
	}
	wg.Wait()
	elapsed := time.Since(start)

	res := &Result{
		RunID:        NewRunID(),
		Workers:      len(keys),
		Buckets:      t.BucketCount(),
		Duration:     elapsed,
		FinalLen:     t.Len(),
		Distribution: t.Stats(),
	}
	c.fill(res)
	if elapsed > 0 {
		res.Throughput = float64(res.TotalOps) / elapsed.Seconds()
	}
	return res, ctx.Err()
}

// KeysPerBucket tries generated keys until every bucket has one, or
// attemptsPerBucket*BucketCount attempts were made. The i-th element of the
// result is routed to a distinct bucket.
func KeysPerBucket(t Table, attemptsPerBucket int) []string {
	n := t.BucketCount()
	found := make(map[int]string, n)
	for i := 0; len(found) < n && i < n*attemptsPerBucket; i++ {
		key := fmt.Sprintf("bkt-%d", i)
		idx := t.BucketIndex(key)
		if _, ok := found[idx]; !ok {
			found[idx] = key
		}
	}

	keys := make([]string, 0, len(found))
	for idx := 0; idx < n; idx++ {
		if key, ok := found[idx]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}
